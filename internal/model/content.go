package model

import "time"

// Contenu éditorial du site public

// swagger:model News
type News struct {
	BaseModel
	Title       string     `gorm:"size:200;not null" json:"title"`
	Content     string     `gorm:"type:text" json:"content"`
	ImageURL    string     `gorm:"size:255" json:"imageUrl"`
	Status      string     `gorm:"size:20;default:'draft';index" json:"status"` // draft, published
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedBy   uint       `json:"createdBy"`
}

func (News) TableName() string {
	return "news"
}

// swagger:model FAQ
type FAQ struct {
	BaseModel
	Question string `gorm:"size:500;not null" json:"question"`
	Answer   string `gorm:"type:text;not null" json:"answer"`
	Category string `gorm:"size:50" json:"category"` // Inscription, Sélection, QCM, Autre
	Order    int    `gorm:"column:display_order;default:0" json:"order"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

func (FAQ) TableName() string {
	return "faqs"
}

// swagger:model TimelinePhase
type TimelinePhase struct {
	BaseModel
	PhaseNumber int        `gorm:"not null" json:"phaseNumber"`
	Title       string     `gorm:"size:100;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Status      string     `gorm:"size:20;default:'upcoming'" json:"status"` // completed, active, upcoming
}

func (TimelinePhase) TableName() string {
	return "timeline_phases"
}

// swagger:model Partner
type Partner struct {
	BaseModel
	Name       string `gorm:"size:200;not null" json:"name"`
	LogoURL    string `gorm:"size:255" json:"logoUrl"`
	WebsiteURL string `gorm:"size:255" json:"websiteUrl"`
	Type       string `gorm:"size:50" json:"type"` // institution, partner, sponsor
	Order      int    `gorm:"column:display_order;default:0" json:"order"`
	IsActive   bool   `gorm:"default:true" json:"isActive"`
}

func (Partner) TableName() string {
	return "partners"
}
