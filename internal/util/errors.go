package util

import "errors"

var (
	ErrUserNotFound      = errors.New("Utilisateur introuvable")
	ErrEmailRegistered   = errors.New("Cet email est déjà utilisé")
	ErrInvalidCredential = errors.New("Email ou mot de passe incorrect")
	ErrAccountDisabled   = errors.New("Ce compte a été désactivé")
	ErrPermissionDenied  = errors.New("permission denied")

	ErrCandidateNotFound     = errors.New("Candidat introuvable")
	ErrCandidateNotValidated = errors.New("Votre candidature doit être validée pour passer le QCM")
	ErrProfileIncomplete     = errors.New("Le dossier de candidature est incomplet")
	ErrProfileLocked         = errors.New("Ce dossier a déjà été examiné et ne peut plus être modifié")

	ErrExamNotOpen          = errors.New("Le QCM n'est pas ouvert actuellement")
	ErrExamAlreadyTaken     = errors.New("Vous avez déjà passé le QCM")
	ErrAttemptNotFound      = errors.New("Tentative introuvable")
	ErrAttemptFinalized     = errors.New("Ce QCM a déjà été soumis")
	ErrAttemptExpired       = errors.New("Le temps imparti est écoulé")
	ErrInvalidAnswer        = errors.New("Réponse invalide")
	ErrInvalidEventType     = errors.New("Type d'événement invalide")
	ErrQuestionNotInAttempt = errors.New("Cette question ne fait pas partie de votre QCM")

	ErrSchoolNotFound   = errors.New("Établissement introuvable")
	ErrSchoolReferenced = errors.New("Des candidats sont rattachés à cet établissement")

	ErrContentNotFound  = errors.New("Contenu introuvable")
	ErrQuestionNotFound = errors.New("Question introuvable")

	ErrResetTokenInvalid = errors.New("Lien de réinitialisation invalide ou expiré")
	ErrOTPInvalid        = errors.New("Code de vérification incorrect")
	ErrOTPTooManyTries   = errors.New("Trop de tentatives, demandez un nouveau code")
)
