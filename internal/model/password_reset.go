package model

import "time"

// PasswordReset : jeton de réinitialisation. Seuls les hachés bcrypt du
// jeton et de l'OTP sont stockés, jamais les valeurs en clair.
type PasswordReset struct {
	BaseModel
	UserID      uint       `gorm:"index;not null" json:"userId"`
	TokenHash   string     `gorm:"size:100;not null" json:"-"`
	OTPHash     string     `gorm:"size:100" json:"-"`
	OTPAttempts int        `gorm:"default:0" json:"-"`
	ExpiresAt   time.Time  `gorm:"not null" json:"expiresAt"`
	UsedAt      *time.Time `json:"usedAt"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}

func (p *PasswordReset) Usable(now time.Time) bool {
	return p.UsedAt == nil && now.Before(p.ExpiresAt)
}
