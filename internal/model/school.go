package model

// swagger:model School
type School struct {
	BaseModel
	Name       string `gorm:"size:200;not null;index" json:"name"`
	Region     string `gorm:"size:100;index" json:"region"`
	City       string `gorm:"size:100" json:"city"`
	Type       string `gorm:"size:20;default:'public'" json:"type"` // public, prive
	IsVerified bool   `gorm:"default:false" json:"isVerified"`
}

func (School) TableName() string {
	return "schools"
}
