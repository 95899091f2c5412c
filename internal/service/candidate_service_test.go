package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"olympiades_backend/internal/model"
)

func completeCandidate(now time.Time) *model.Candidate {
	birth := now.AddDate(-16, 0, 0)
	math := 15.5
	french := 13.0
	return &model.Candidate{
		BirthDate:            &birth,
		Gender:               "F",
		Region:               "Atlantique",
		SchoolName:           "Lycée Béhanzin",
		ClassLevel:           "premiere",
		MathAverage:          &math,
		FrenchAverage:        &french,
		IDDocumentURL:        "/uploads/documents/id.pdf",
		SchoolCertificateURL: "/uploads/documents/cert.pdf",
		ParentName:           "Parent Test",
		ParentPhone:          "+22990000000",
		ParentalConsentURL:   "/uploads/documents/consent.pdf",
	}
}

func TestValidateForSubmission(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("DossierComplet", func(t *testing.T) {
		assert.Empty(t, ValidateForSubmission(completeCandidate(now), now))
	})

	t.Run("DateDeNaissanceManquante", func(t *testing.T) {
		c := completeCandidate(now)
		c.BirthDate = nil
		issues := ValidateForSubmission(c, now)
		assert.Contains(t, issues, "La date de naissance est requise")
	})

	t.Run("TropJeune", func(t *testing.T) {
		c := completeCandidate(now)
		birth := now.AddDate(-13, 0, 0)
		c.BirthDate = &birth
		issues := ValidateForSubmission(c, now)
		assert.Contains(t, issues, "L'âge doit être compris entre 14 et 18 ans")
	})

	t.Run("TropAge", func(t *testing.T) {
		c := completeCandidate(now)
		birth := now.AddDate(-19, 0, 0)
		c.BirthDate = &birth
		issues := ValidateForSubmission(c, now)
		assert.Contains(t, issues, "L'âge doit être compris entre 14 et 18 ans")
	})

	t.Run("MineurSansAutorisationParentale", func(t *testing.T) {
		c := completeCandidate(now)
		c.ParentalConsentURL = ""
		issues := ValidateForSubmission(c, now)
		assert.Contains(t, issues, "L'autorisation parentale est requise pour les mineurs")
	})

	t.Run("MineurSansContactParent", func(t *testing.T) {
		c := completeCandidate(now)
		c.ParentName = ""
		c.ParentPhone = ""
		issues := ValidateForSubmission(c, now)
		assert.Contains(t, issues, "Le contact d'un parent ou tuteur est requis pour les mineurs")
	})

	t.Run("MajeurSansExigencesParentales", func(t *testing.T) {
		c := completeCandidate(now)
		birth := now.AddDate(-18, -2, 0)
		c.BirthDate = &birth
		c.ParentName = ""
		c.ParentPhone = ""
		c.ParentalConsentURL = ""
		assert.Empty(t, ValidateForSubmission(c, now))
	})

	t.Run("CumulDesDefauts", func(t *testing.T) {
		c := &model.Candidate{}
		issues := ValidateForSubmission(c, now)
		// tous les champs requis manquent, chaque défaut est listé
		assert.GreaterOrEqual(t, len(issues), 9)
	})

	t.Run("DocumentsManquants", func(t *testing.T) {
		c := completeCandidate(now)
		c.IDDocumentURL = ""
		c.SchoolCertificateURL = ""
		issues := ValidateForSubmission(c, now)
		assert.Contains(t, issues, "La pièce d'identité est requise")
		assert.Contains(t, issues, "Le certificat de scolarité est requis")
	})
}

func TestCandidateAge(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	birth := time.Date(2010, 6, 16, 0, 0, 0, 0, time.UTC)
	c := &model.Candidate{BirthDate: &birth}
	// l'anniversaire est demain : toujours 15 ans
	assert.Equal(t, 15, c.AgeAt(now))
	assert.True(t, c.IsMinorAt(now))

	birth2 := time.Date(2010, 6, 15, 0, 0, 0, 0, time.UTC)
	c2 := &model.Candidate{BirthDate: &birth2}
	assert.Equal(t, 16, c2.AgeAt(now))
}
