package model

import "time"

// ExamSettings : paramètres du QCM, enregistrement unique créé
// paresseusement avec les valeurs par défaut de la campagne
// swagger:model ExamSettings
type ExamSettings struct {
	BaseModel
	DurationMinutes int     `gorm:"default:30" json:"durationMinutes"`
	TotalQuestions  int     `gorm:"default:20" json:"totalQuestions"`
	EasyCount       int     `gorm:"default:5" json:"easyCount"`
	MediumCount     int     `gorm:"default:10" json:"mediumCount"`
	HardCount       int     `gorm:"default:5" json:"hardCount"`
	PassingScore    float64 `gorm:"default:50" json:"passingScore"`

	RandomizeQuestions   bool `gorm:"default:true" json:"randomizeQuestions"`
	RandomizeOptions     bool `gorm:"default:true" json:"randomizeOptions"`
	ShowScoreImmediately bool `gorm:"default:true" json:"showScoreImmediately"`

	IsOpen   bool       `gorm:"default:false" json:"isOpen"`
	OpensAt  *time.Time `json:"opensAt"`
	ClosesAt *time.Time `json:"closesAt"`
}

func (ExamSettings) TableName() string {
	return "exam_settings"
}

// IsOpenAt : le QCM est accessible si le drapeau est levé et que t est
// dans la fenêtre configurée (bornes absentes = pas de contrainte)
func (s *ExamSettings) IsOpenAt(t time.Time) bool {
	if !s.IsOpen {
		return false
	}
	if s.OpensAt != nil && t.Before(*s.OpensAt) {
		return false
	}
	if s.ClosesAt != nil && t.After(*s.ClosesAt) {
		return false
	}
	return true
}
