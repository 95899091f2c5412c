package service

import (
	"fmt"
	"olympiades_backend/internal/model"
	"olympiades_backend/internal/repository"
	"olympiades_backend/pkg/logger"

	"go.uber.org/zap"
)

const broadcastBatchSize = 500

type NotificationService struct {
	Repo  *repository.NotificationRepository
	Users *repository.UserRepository
	Email *EmailService
}

func NewNotificationService(repo *repository.NotificationRepository, users *repository.UserRepository, email *EmailService) *NotificationService {
	return &NotificationService{Repo: repo, Users: users, Email: email}
}

type NotificationListResponse struct {
	Notifications []model.Notification `json:"notifications"`
	Total         int64                `json:"total"`
	UnreadCount   int64                `json:"unreadCount"`
}

func (s *NotificationService) ListForUser(userID uint, page, limit int) (*NotificationListResponse, error) {
	notifications, total, err := s.Repo.ListByUser(userID, page, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.Repo.CountUnread(userID)
	if err != nil {
		return nil, err
	}
	return &NotificationListResponse{
		Notifications: notifications,
		Total:         total,
		UnreadCount:   unread,
	}, nil
}

func (s *NotificationService) MarkRead(id, userID uint) error {
	return s.Repo.MarkRead(id, userID)
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.Repo.MarkAllRead(userID)
}

// notify crée la notification interne et envoie le miroir email en
// meilleur effort
func (s *NotificationService) notify(userID uint, t model.NotificationType, title, message string) {
	n := &model.Notification{UserID: userID, Type: t, Title: title, Message: message}
	if err := s.Repo.Create(n); err != nil {
		logger.Log.Error("notification create failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}

	if s.Email != nil && s.Email.Enabled() {
		user, err := s.Users.FindByID(userID)
		if err != nil {
			return
		}
		go s.Email.Send(user.Email, user.FullName(), title, "<p>"+message+"</p>")
	}
}

func (s *NotificationService) NotifyCandidateValidated(userID uint) {
	s.notify(userID, model.NotifCandidatureValidee,
		"Candidature validée",
		"Félicitations ! Votre dossier de candidature a été validé. Vous pourrez passer le QCM de sélection dès son ouverture.")
}

func (s *NotificationService) NotifyCandidateRejected(userID uint, reason string) {
	message := "Votre dossier de candidature n'a pas été retenu."
	if reason != "" {
		message += " Motif : " + reason
	}
	s.notify(userID, model.NotifCandidatureRejetee, "Candidature non retenue", message)
}

// ExamResultMessage : le ton du message dépend du score obtenu
func ExamResultMessage(score float64) (string, string) {
	switch {
	case score >= 70:
		return "Résultat du QCM : félicitations !",
			fmt.Sprintf("Excellent résultat ! Vous avez obtenu %.2f%% au QCM de sélection.", score)
	case score >= 50:
		return "Résultat du QCM",
			fmt.Sprintf("Bon travail, vous avez obtenu %.2f%% au QCM de sélection.", score)
	default:
		return "Résultat du QCM",
			fmt.Sprintf("Vous avez obtenu %.2f%% au QCM de sélection. Merci pour votre participation.", score)
	}
}

func (s *NotificationService) NotifyExamResult(userID uint, score float64) {
	title, message := ExamResultMessage(score)
	s.notify(userID, model.NotifResultatQCM, title, message)
}

// Broadcast envoie une annonce à tous les candidats actifs, par lots de
// 500 avec un commit par lot pour ne pas tenir une transaction géante
func (s *NotificationService) Broadcast(title, message string) (int, error) {
	sent := 0
	offset := 0
	for {
		ids, err := s.Repo.ActiveCandidateUserIDs(offset, broadcastBatchSize)
		if err != nil {
			return sent, err
		}
		if len(ids) == 0 {
			break
		}

		batch := make([]model.Notification, len(ids))
		for i, id := range ids {
			batch[i] = model.Notification{
				UserID:  id,
				Type:    model.NotifAnnonce,
				Title:   title,
				Message: message,
			}
		}
		if err := s.Repo.CreateBatch(batch); err != nil {
			return sent, err
		}
		sent += len(ids)
		offset += broadcastBatchSize
	}

	logger.Log.Info("broadcast sent", zap.Int("recipients", sent), zap.String("title", title))
	return sent, nil
}
