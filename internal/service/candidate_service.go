package service

import (
	"errors"
	"fmt"
	"olympiades_backend/internal/model"
	"olympiades_backend/internal/repository"
	"olympiades_backend/internal/util"
	"olympiades_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	MinCandidateAge = 14
	MaxCandidateAge = 18
)

type CandidateService struct {
	Candidates   *repository.CandidateRepository
	Schools      *repository.SchoolRepository
	Audit        *repository.AuditRepository
	Notification *NotificationService
}

func NewCandidateService(
	candidates *repository.CandidateRepository,
	schools *repository.SchoolRepository,
	audit *repository.AuditRepository,
	notification *NotificationService,
) *CandidateService {
	return &CandidateService{
		Candidates:   candidates,
		Schools:      schools,
		Audit:        audit,
		Notification: notification,
	}
}

func (s *CandidateService) GetByUserID(userID uint) (*model.Candidate, error) {
	candidate, err := s.Candidates.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCandidateNotFound
		}
		return nil, err
	}
	return candidate, nil
}

type CandidateProfileRequest struct {
	BirthDate     string   `json:"birthDate"` // format 2006-01-02
	Gender        string   `json:"gender"`
	Region        string   `json:"region"`
	City          string   `json:"city"`
	SchoolID      *uint    `json:"schoolId"`
	SchoolName    string   `json:"schoolName"`
	ClassLevel    string   `json:"classLevel"`
	ParentName    string   `json:"parentName"`
	ParentPhone   string   `json:"parentPhone"`
	ParentEmail   string   `json:"parentEmail"`
	MathAverage   *float64 `json:"mathAverage"`
	FrenchAverage *float64 `json:"frenchAverage"`
	Motivation    string   `json:"motivation"`
}

// UpdateProfile applique les modifications du candidat. Modifier un
// dossier déjà soumis le remet en brouillon : il devra être re-soumis.
func (s *CandidateService) UpdateProfile(userID uint, req CandidateProfileRequest) (*model.Candidate, error) {
	candidate, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if candidate.Status == model.CandidateValidated || candidate.Status == model.CandidateRejected {
		return nil, util.ErrProfileLocked
	}

	if req.BirthDate != "" {
		birthDate, err := time.Parse(util.DateFormat, req.BirthDate)
		if err != nil {
			return nil, errors.New("Date de naissance invalide (format attendu : AAAA-MM-JJ)")
		}
		candidate.BirthDate = &birthDate
	}
	if req.Gender != "" {
		if req.Gender != "M" && req.Gender != "F" {
			return nil, errors.New("Genre invalide")
		}
		candidate.Gender = req.Gender
	}
	candidate.Region = req.Region
	candidate.City = req.City
	candidate.ClassLevel = req.ClassLevel
	candidate.ParentName = req.ParentName
	candidate.ParentPhone = req.ParentPhone
	candidate.ParentEmail = req.ParentEmail
	candidate.Motivation = req.Motivation

	if req.MathAverage != nil {
		if *req.MathAverage < 0 || *req.MathAverage > 20 {
			return nil, errors.New("La moyenne de mathématiques doit être comprise entre 0 et 20")
		}
		candidate.MathAverage = req.MathAverage
	}
	if req.FrenchAverage != nil {
		if *req.FrenchAverage < 0 || *req.FrenchAverage > 20 {
			return nil, errors.New("La moyenne de français doit être comprise entre 0 et 20")
		}
		candidate.FrenchAverage = req.FrenchAverage
	}

	if req.SchoolID != nil && *req.SchoolID != 0 {
		school, err := s.Schools.FindByID(*req.SchoolID)
		if err != nil {
			return nil, util.ErrSchoolNotFound
		}
		candidate.SchoolID = req.SchoolID
		candidate.SchoolName = school.Name
	} else if req.SchoolName != "" {
		candidate.SchoolID = nil
		candidate.SchoolName = req.SchoolName
	}

	if candidate.Status == model.CandidateSubmitted {
		candidate.Status = model.CandidateDraft
		candidate.SubmittedAt = nil
	}

	if err := s.Candidates.Update(candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

type DocumentKind string

const (
	DocIdentity          DocumentKind = "id_document"
	DocSchoolCertificate DocumentKind = "school_certificate"
	DocParentalConsent   DocumentKind = "parental_consent"
	DocPhoto             DocumentKind = "photo"
)

func ValidDocumentKind(k string) bool {
	switch DocumentKind(k) {
	case DocIdentity, DocSchoolCertificate, DocParentalConsent, DocPhoto:
		return true
	}
	return false
}

func (s *CandidateService) SetDocument(userID uint, kind DocumentKind, url string) (*model.Candidate, error) {
	candidate, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if candidate.Status == model.CandidateValidated || candidate.Status == model.CandidateRejected {
		return nil, util.ErrProfileLocked
	}

	switch kind {
	case DocIdentity:
		candidate.IDDocumentURL = url
	case DocSchoolCertificate:
		candidate.SchoolCertificateURL = url
	case DocParentalConsent:
		candidate.ParentalConsentURL = url
	case DocPhoto:
		candidate.PhotoURL = url
	default:
		return nil, errors.New("Type de document inconnu")
	}

	// Un nouveau document sur un dossier soumis force la re-soumission
	if candidate.Status == model.CandidateSubmitted {
		candidate.Status = model.CandidateDraft
		candidate.SubmittedAt = nil
	}

	if err := s.Candidates.Update(candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

// ValidateForSubmission retourne la liste des défauts bloquants du
// dossier. Un dossier valide retourne une liste vide.
func ValidateForSubmission(c *model.Candidate, now time.Time) []string {
	var issues []string

	if c.BirthDate == nil {
		issues = append(issues, "La date de naissance est requise")
	} else {
		age := c.AgeAt(now)
		if age < MinCandidateAge || age > MaxCandidateAge {
			issues = append(issues, fmt.Sprintf("L'âge doit être compris entre %d et %d ans", MinCandidateAge, MaxCandidateAge))
		}
	}
	if c.Gender == "" {
		issues = append(issues, "Le genre est requis")
	}
	if c.Region == "" {
		issues = append(issues, "La région est requise")
	}
	if c.SchoolName == "" {
		issues = append(issues, "L'établissement est requis")
	}
	if c.ClassLevel == "" {
		issues = append(issues, "La classe est requise")
	}
	if c.MathAverage == nil {
		issues = append(issues, "La moyenne de mathématiques est requise")
	}
	if c.FrenchAverage == nil {
		issues = append(issues, "La moyenne de français est requise")
	}
	if c.IDDocumentURL == "" {
		issues = append(issues, "La pièce d'identité est requise")
	}
	if c.SchoolCertificateURL == "" {
		issues = append(issues, "Le certificat de scolarité est requis")
	}

	if c.IsMinorAt(now) {
		if c.ParentName == "" || c.ParentPhone == "" {
			issues = append(issues, "Le contact d'un parent ou tuteur est requis pour les mineurs")
		}
		if c.ParentalConsentURL == "" {
			issues = append(issues, "L'autorisation parentale est requise pour les mineurs")
		}
	}

	return issues
}

type SubmissionError struct {
	Issues []string
}

func (e *SubmissionError) Error() string {
	return util.ErrProfileIncomplete.Error()
}

func (s *CandidateService) Submit(userID uint) (*model.Candidate, error) {
	candidate, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if candidate.Status != model.CandidateDraft {
		return nil, errors.New("Ce dossier a déjà été soumis")
	}

	now := time.Now()
	if issues := ValidateForSubmission(candidate, now); len(issues) > 0 {
		return nil, &SubmissionError{Issues: issues}
	}

	candidate.Status = model.CandidateSubmitted
	candidate.SubmittedAt = &now
	if err := s.Candidates.Update(candidate); err != nil {
		return nil, err
	}

	logger.Log.Info("candidate submitted", zap.Uint("user_id", userID))
	return candidate, nil
}

// --- Administration ---

func (s *CandidateService) List(f repository.CandidateFilter, page, limit int) ([]model.Candidate, int64, error) {
	return s.Candidates.List(f, page, limit)
}

func (s *CandidateService) Detail(id uint) (*model.Candidate, error) {
	candidate, err := s.Candidates.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCandidateNotFound
		}
		return nil, err
	}
	return candidate, nil
}

func (s *CandidateService) Validate(adminID, candidateID uint) (*model.Candidate, error) {
	candidate, err := s.Detail(candidateID)
	if err != nil {
		return nil, err
	}
	if candidate.Status != model.CandidateSubmitted {
		return nil, errors.New("Seul un dossier soumis peut être validé")
	}

	now := time.Now()
	candidate.Status = model.CandidateValidated
	candidate.ValidatedAt = &now
	candidate.RejectionReason = ""
	if err := s.Candidates.Update(candidate); err != nil {
		return nil, err
	}

	s.audit(adminID, "candidate_validated", fmt.Sprintf("Dossier %d validé", candidateID))
	if s.Notification != nil {
		s.Notification.NotifyCandidateValidated(candidate.UserID)
	}
	return candidate, nil
}

func (s *CandidateService) Reject(adminID, candidateID uint, reason string) (*model.Candidate, error) {
	if reason == "" {
		return nil, errors.New("Le motif de rejet est requis")
	}

	candidate, err := s.Detail(candidateID)
	if err != nil {
		return nil, err
	}
	if candidate.Status != model.CandidateSubmitted {
		return nil, errors.New("Seul un dossier soumis peut être rejeté")
	}

	candidate.Status = model.CandidateRejected
	candidate.RejectionReason = reason
	if err := s.Candidates.Update(candidate); err != nil {
		return nil, err
	}

	s.audit(adminID, "candidate_rejected", fmt.Sprintf("Dossier %d rejeté : %s", candidateID, reason))
	if s.Notification != nil {
		s.Notification.NotifyCandidateRejected(candidate.UserID, reason)
	}
	return candidate, nil
}

func (s *CandidateService) audit(userID uint, action, details string) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.Create(&model.AuditLog{UserID: userID, Action: action, Details: details}); err != nil {
		logger.Log.Error("audit log write failed", zap.Error(err))
	}
}
