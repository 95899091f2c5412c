package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"olympiades_backend/internal/config"
	"olympiades_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// EmailService envoie les emails transactionnels via l'API HTTP Brevo.
// L'envoi est toujours en mode meilleur effort : un échec est journalisé
// mais ne fait jamais échouer l'opération appelante.
type EmailService struct {
	cfg    *config.EmailConfig
	client *http.Client
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		cfg:    &cfg.Email,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type brevoPayload struct {
	Sender      brevoContact   `json:"sender"`
	To          []brevoContact `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

type brevoContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func (s *EmailService) Enabled() bool {
	return s.cfg.BrevoAPIKey != "" && s.cfg.SenderEmail != ""
}

// Send : envoi synchrone, à appeler depuis une goroutine si le contexte
// appelant ne doit pas attendre
func (s *EmailService) Send(toEmail, toName, subject, htmlContent string) {
	if !s.Enabled() {
		return
	}

	payload := brevoPayload{
		Sender:      brevoContact{Email: s.cfg.SenderEmail, Name: s.cfg.SenderName},
		To:          []brevoContact{{Email: toEmail, Name: toName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Error("email payload marshal failed", zap.Error(err))
		return
	}

	req, err := http.NewRequest(http.MethodPost, brevoEndpoint, bytes.NewReader(body))
	if err != nil {
		logger.Log.Error("email request build failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", s.cfg.BrevoAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Log.Warn("email send failed", zap.String("to", toEmail), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		logger.Log.Warn("email rejected by provider",
			zap.String("to", toEmail),
			zap.Int("status", resp.StatusCode))
	}
}
