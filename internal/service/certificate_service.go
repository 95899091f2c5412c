package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"olympiades_backend/internal/config"
	"olympiades_backend/internal/model"
	"olympiades_backend/internal/repository"
	"olympiades_backend/internal/util"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

const SelectionScoreThreshold = 70.0

type CertificateService struct {
	Candidates *repository.CandidateRepository
	cfg        *config.Config
}

func NewCertificateService(candidates *repository.CandidateRepository, cfg *config.Config) *CertificateService {
	return &CertificateService{Candidates: candidates, cfg: cfg}
}

type CertificateKind string

const (
	CertificateParticipation CertificateKind = "participation"
	CertificateQCM           CertificateKind = "qcm"
	CertificateSelection     CertificateKind = "selection"
)

func ValidCertificateKind(kind string) bool {
	switch CertificateKind(kind) {
	case CertificateParticipation, CertificateQCM, CertificateSelection:
		return true
	}
	return false
}

// Mention retourne la mention associée à un score QCM
func Mention(score float64) string {
	switch {
	case score >= 85:
		return "Excellent"
	case score >= 70:
		return "Très Bien"
	case score >= 50:
		return "Bien"
	default:
		return "Participation"
	}
}

// VerificationCode produit le code imprimé sur chaque document, vérifiable
// sans accès à la base via CheckVerificationCode
func VerificationCode(kind CertificateKind, candidateID uint) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("olympiades_ia_benin_%s_%d_2026", kind, candidateID)))
	return fmt.Sprintf("%s-%d-%s", strings.ToUpper(string(kind)[:3]), candidateID, hex.EncodeToString(sum[:])[:6])
}

// ParseVerificationCode retrouve le type de document et le candidat d'un
// code, ou une erreur si le code est forgé
func ParseVerificationCode(code string) (CertificateKind, uint, error) {
	parts := strings.Split(strings.TrimSpace(code), "-")
	if len(parts) != 3 {
		return "", 0, errors.New("Code de vérification invalide")
	}
	var kind CertificateKind
	switch parts[0] {
	case "PAR":
		kind = CertificateParticipation
	case "QCM":
		kind = CertificateQCM
	case "SEL":
		kind = CertificateSelection
	default:
		return "", 0, errors.New("Code de vérification invalide")
	}
	id, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return "", 0, errors.New("Code de vérification invalide")
	}
	if !strings.EqualFold(VerificationCode(kind, uint(id)), strings.TrimSpace(code)) {
		return "", 0, errors.New("Code de vérification invalide")
	}
	return kind, uint(id), nil
}

type VerificationResponse struct {
	Valid         bool     `json:"valid"`
	Kind          string   `json:"kind,omitempty"`
	CandidateName string   `json:"candidateName,omitempty"`
	Score         *float64 `json:"score,omitempty"`
	Mention       string   `json:"mention,omitempty"`
}

// Verify contrôle un code de vérification et retourne les informations du
// document correspondant
func (s *CertificateService) Verify(code string) (*VerificationResponse, error) {
	kind, candidateID, err := ParseVerificationCode(code)
	if err != nil {
		return &VerificationResponse{Valid: false}, nil
	}
	c, err := s.Candidates.FindByID(candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &VerificationResponse{Valid: false}, nil
		}
		return nil, err
	}
	if err := s.eligible(c, kind); err != nil {
		return &VerificationResponse{Valid: false}, nil
	}

	resp := &VerificationResponse{
		Valid:         true,
		Kind:          string(kind),
		CandidateName: c.User.FullName(),
	}
	if kind != CertificateParticipation && c.QCMScore != nil {
		resp.Score = c.QCMScore
		resp.Mention = Mention(*c.QCMScore)
	}
	return resp, nil
}

func (s *CertificateService) eligible(c *model.Candidate, kind CertificateKind) error {
	switch kind {
	case CertificateParticipation:
		if c.Status == model.CandidateDraft {
			return errors.New("Votre candidature doit être soumise pour obtenir cette attestation")
		}
	case CertificateQCM:
		if c.QCMScore == nil {
			return errors.New("Vous devez avoir passé le QCM pour obtenir cette attestation")
		}
	case CertificateSelection:
		if c.Status != model.CandidateValidated || c.QCMScore == nil || *c.QCMScore < SelectionScoreThreshold {
			return errors.New("Le certificat de sélection est réservé aux candidats validés ayant obtenu au moins 70% au QCM")
		}
	default:
		return errors.New("Type de document inconnu")
	}
	return nil
}

// Generate produit le PDF du document demandé pour le candidat connecté
func (s *CertificateService) Generate(userID uint, kind CertificateKind) ([]byte, string, error) {
	c, err := s.Candidates.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", util.ErrCandidateNotFound
		}
		return nil, "", err
	}
	if err := s.eligible(c, kind); err != nil {
		return nil, "", err
	}

	code := VerificationCode(kind, c.ID)
	pdf, err := s.render(c, kind, code)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%s_%s.pdf", kind, strings.ReplaceAll(strings.ToLower(c.User.LastName), " ", "_"))
	return pdf, filename, nil
}

// GenerateForCandidate est la variante admin, sans contrôle de propriétaire
func (s *CertificateService) GenerateForCandidate(candidateID uint, kind CertificateKind) ([]byte, string, error) {
	c, err := s.Candidates.FindByID(candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", util.ErrCandidateNotFound
		}
		return nil, "", err
	}
	if err := s.eligible(c, kind); err != nil {
		return nil, "", err
	}
	code := VerificationCode(kind, c.ID)
	pdf, err := s.render(c, kind, code)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%s_%s.pdf", kind, strings.ReplaceAll(strings.ToLower(c.User.LastName), " ", "_"))
	return pdf, filename, nil
}

func certificateTitle(kind CertificateKind) string {
	switch kind {
	case CertificateQCM:
		return "Attestation de réussite au QCM"
	case CertificateSelection:
		return "Certificat de sélection"
	default:
		return "Attestation de participation"
	}
}

func (s *CertificateService) render(c *model.Candidate, kind CertificateKind, code string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(certificateTitle(kind), true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := pdf.GetPageSize()

	// Cadre
	pdf.SetDrawColor(30, 64, 124)
	pdf.SetLineWidth(1.2)
	pdf.Rect(8, 8, pageWidth-16, 194, "D")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(30, 64, 124)
	pdf.CellFormat(0, 18, tr("Olympiades d'Intelligence Artificielle du Bénin"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 26)
	pdf.Ln(8)
	pdf.CellFormat(0, 14, tr(certificateTitle(kind)), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 13)
	pdf.SetTextColor(40, 40, 40)
	pdf.Ln(10)
	pdf.CellFormat(0, 8, tr("est décernée à"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Ln(2)
	pdf.CellFormat(0, 12, tr(c.User.FullName()), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Ln(4)
	switch kind {
	case CertificateQCM:
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("pour avoir obtenu un score de %.2f%% au test de présélection", *c.QCMScore)), "", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("Mention : %s", Mention(*c.QCMScore))), "", 1, "C", false, 0, "")
	case CertificateSelection:
		pdf.CellFormat(0, 8, tr("pour sa sélection à la phase nationale des Olympiades"), "", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("Score au QCM : %.2f%% — Mention : %s", *c.QCMScore, Mention(*c.QCMScore))), "", 1, "C", false, 0, "")
	default:
		pdf.CellFormat(0, 8, tr("pour sa participation au processus de sélection national"), "", 1, "C", false, 0, "")
	}

	if c.SchoolName != "" {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Ln(2)
		pdf.CellFormat(0, 7, tr(c.SchoolName), "", 1, "C", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.Ln(8)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Fait à Cotonou, le %s", time.Now().Format("02/01/2006"))), "", 1, "C", false, 0, "")

	// QR de vérification en bas à droite
	verifyURL := strings.TrimRight(s.cfg.Frontend.BaseURL, "/") + "/verification/" + code
	png, err := qrcode.Encode(verifyURL, qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr-"+code, opts, bytes.NewReader(png))
	pdf.ImageOptions("qr-"+code, pageWidth-48, 158, 32, 32, false, opts, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(pageWidth-60, 191)
	pdf.CellFormat(56, 5, tr("Code : "+code), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
