package model

// AuditLog : trace des actions sensibles (connexions, validations,
// imports, diffusions)
// swagger:model AuditLog
type AuditLog struct {
	BaseModel
	UserID    uint   `gorm:"index" json:"userId"`
	Action    string `gorm:"size:100;not null;index" json:"action"`
	Details   string `gorm:"type:text" json:"details"`
	IP        string `gorm:"size:45" json:"ip"`
	UserAgent string `gorm:"size:255" json:"userAgent"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
