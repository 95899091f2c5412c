package model

import "time"

type NotificationType string

const (
	NotifCandidatureValidee NotificationType = "candidature_validee"
	NotifCandidatureRejetee NotificationType = "candidature_rejetee"
	NotifResultatQCM        NotificationType = "resultat_qcm"
	NotifAnnonce            NotificationType = "annonce"
)

// swagger:model Notification
type Notification struct {
	BaseModel
	UserID  uint             `gorm:"index;not null" json:"userId"`
	Type    NotificationType `gorm:"size:40;not null" json:"type"`
	Title   string           `gorm:"size:200;not null" json:"title"`
	Message string           `gorm:"type:text" json:"message"`
	IsRead  bool             `gorm:"default:false;index" json:"isRead"`
	ReadAt  *time.Time       `json:"readAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
