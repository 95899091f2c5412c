package model

import (
	"time"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
	AttemptExpired    AttemptStatus = "expired"
)

const AnswerUnanswered = -1

type CheatEventType string

const (
	CheatTabSwitch      CheatEventType = "tab_switch"
	CheatFullscreenExit CheatEventType = "fullscreen_exit"
	CheatCopyAttempt    CheatEventType = "copy_attempt"
	CheatRightClick     CheatEventType = "right_click"
)

type CheatEvent struct {
	Type CheatEventType `json:"type"`
	At   time.Time      `json:"at"`
}

// ExamAttempt : tentative de QCM d'un candidat. QuestionIDs fige l'ordre
// des questions servies ; Answers a la même longueur, -1 = sans réponse.
// swagger:model ExamAttempt
type ExamAttempt struct {
	BaseModel
	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	StartedAt        time.Time  `gorm:"not null" json:"startedAt"`
	FinishedAt       *time.Time `json:"finishedAt"`
	TimeLimitMinutes int        `gorm:"not null" json:"timeLimitMinutes"`

	QuestionIDs []int64 `gorm:"serializer:json;type:text" json:"questionIds"`
	Answers     []int64 `gorm:"serializer:json;type:text" json:"answers"`

	Score          *float64      `json:"score"`
	CorrectCount   int           `gorm:"default:0" json:"correctCount"`
	TotalQuestions int           `gorm:"default:0" json:"totalQuestions"`
	Status         AttemptStatus `gorm:"type:enum('in_progress','completed','expired');default:'in_progress';index" json:"status"`

	// Anticheat
	TabSwitches     int          `gorm:"default:0" json:"tabSwitches"`
	FullscreenExits int          `gorm:"default:0" json:"fullscreenExits"`
	CheatEvents     []CheatEvent `gorm:"serializer:json;type:text" json:"cheatEvents"`
	IsFlagged       bool         `gorm:"default:false;index" json:"isFlagged"`
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}

func (a *ExamAttempt) Finalized() bool {
	return a.Status == AttemptCompleted || a.Status == AttemptExpired
}
