package model

type QuestionDifficulty string

const (
	DifficultyEasy   QuestionDifficulty = "easy"
	DifficultyMedium QuestionDifficulty = "medium"
	DifficultyHard   QuestionDifficulty = "hard"
)

// Catégories de questions du QCM
var QuestionCategories = []string{
	"Logique",
	"Algorithmique",
	"Mathématiques",
	"IA",
	"Culture Générale",
}

// Question : question à choix multiples, la réponse correcte est l'indice
// 0..3 dans l'ordre canonique A-D
// swagger:model Question
type Question struct {
	BaseModel
	Text          string             `gorm:"type:text;not null" json:"text"`
	OptionA       string             `gorm:"size:500;not null" json:"optionA"`
	OptionB       string             `gorm:"size:500;not null" json:"optionB"`
	OptionC       string             `gorm:"size:500;not null" json:"optionC"`
	OptionD       string             `gorm:"size:500;not null" json:"optionD"`
	CorrectAnswer int                `gorm:"not null" json:"-"`
	Category      string             `gorm:"size:50;default:'Logique';index" json:"category"`
	Difficulty    QuestionDifficulty `gorm:"type:enum('easy','medium','hard');default:'medium';index" json:"difficulty"`
	Explanation   string             `gorm:"type:text" json:"explanation"`
	IsActive      bool               `gorm:"default:true;index" json:"isActive"`

	// Statistiques d'usage, incrémentées à la finalisation des tentatives
	TimesShown   int `gorm:"default:0" json:"timesShown"`
	TimesCorrect int `gorm:"default:0" json:"timesCorrect"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) Options() []string {
	return []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
}

func ValidCategory(c string) bool {
	for _, cat := range QuestionCategories {
		if cat == c {
			return true
		}
	}
	return false
}

func ValidDifficulty(d string) bool {
	switch QuestionDifficulty(d) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
