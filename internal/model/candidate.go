package model

import (
	"time"
)

type CandidateStatus string

const (
	CandidateDraft     CandidateStatus = "draft"
	CandidateSubmitted CandidateStatus = "submitted"
	CandidateValidated CandidateStatus = "validated"
	CandidateRejected  CandidateStatus = "rejected"
)

// Candidate : dossier de candidature, lié 1-1 à un User
// swagger:model Candidate
type Candidate struct {
	BaseModel
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	BirthDate  *time.Time `json:"birthDate"`
	Gender     string     `gorm:"size:10" json:"gender"` // M / F
	Region     string     `gorm:"size:100;index" json:"region"`
	City       string     `gorm:"size:100" json:"city"`
	SchoolID   *uint      `gorm:"index" json:"schoolId"`
	School     *School    `gorm:"foreignKey:SchoolID" json:"-"`
	SchoolName string     `gorm:"size:200" json:"schoolName"`
	ClassLevel string     `gorm:"size:20" json:"classLevel"` // seconde, premiere, terminale

	// Contact du parent ou tuteur, obligatoire pour les mineurs
	ParentName  string `gorm:"size:200" json:"parentName"`
	ParentPhone string `gorm:"size:30" json:"parentPhone"`
	ParentEmail string `gorm:"size:120" json:"parentEmail"`

	MathAverage   *float64 `json:"mathAverage"`   // sur 20
	FrenchAverage *float64 `json:"frenchAverage"` // sur 20
	Motivation    string   `gorm:"type:text" json:"motivation"`

	IDDocumentURL        string `gorm:"size:255" json:"idDocumentUrl"`
	SchoolCertificateURL string `gorm:"size:255" json:"schoolCertificateUrl"`
	ParentalConsentURL   string `gorm:"size:255" json:"parentalConsentUrl"`
	PhotoURL             string `gorm:"size:255" json:"photoUrl"`

	Status          CandidateStatus `gorm:"type:enum('draft','submitted','validated','rejected');default:'draft';index" json:"status"`
	RejectionReason string          `gorm:"type:text" json:"rejectionReason"`
	SubmittedAt     *time.Time      `json:"submittedAt"`
	ValidatedAt     *time.Time      `json:"validatedAt"`

	// Score QCM recopié à la finalisation, pour les classements
	QCMScore *float64 `json:"qcmScore"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// Age à une date donnée. Retourne -1 si la date de naissance est absente.
func (c *Candidate) AgeAt(t time.Time) int {
	if c.BirthDate == nil {
		return -1
	}
	age := t.Year() - c.BirthDate.Year()
	if t.YearDay() < c.BirthDate.YearDay() {
		age--
	}
	return age
}

func (c *Candidate) IsMinorAt(t time.Time) bool {
	age := c.AgeAt(t)
	return age >= 0 && age < 18
}
