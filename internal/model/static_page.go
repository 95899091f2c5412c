package model

// StaticPage : pages statiques du site (mentions légales, CGU,
// politique de confidentialité), adressées par slug
// swagger:model StaticPage
type StaticPage struct {
	BaseModel
	Slug      string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Title     string `gorm:"size:200;not null" json:"title"`
	Content   string `gorm:"type:text;not null" json:"content"`
	UpdatedBy uint   `json:"updatedBy"`
}

func (StaticPage) TableName() string {
	return "static_pages"
}
