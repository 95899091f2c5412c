package database

import (
	"fmt"
	"log"
	"olympiades_backend/internal/config"
	"olympiades_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Candidate{},
		&model.School{},
		&model.Question{},
		&model.ExamSettings{},
		&model.ExamAttempt{},
		&model.Notification{},
		&model.AuditLog{},
		&model.PasswordReset{},
		&model.News{},
		&model.FAQ{},
		&model.TimelinePhase{},
		&model.Partner{},
		&model.StaticPage{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Phases par défaut de la timeline du concours
	var phaseCount int64
	db.Model(&model.TimelinePhase{}).Count(&phaseCount)
	if phaseCount == 0 {
		defaultPhases := []model.TimelinePhase{
			{PhaseNumber: 1, Title: "Inscriptions", Description: "Ouverture des candidatures en ligne", Status: "active"},
			{PhaseNumber: 2, Title: "Validation des dossiers", Description: "Examen des dossiers par le comité", Status: "upcoming"},
			{PhaseNumber: 3, Title: "QCM de sélection", Description: "Épreuve en ligne chronométrée", Status: "upcoming"},
			{PhaseNumber: 4, Title: "Résultats", Description: "Publication des candidats retenus", Status: "upcoming"},
		}
		for _, p := range defaultPhases {
			db.Create(&p)
		}
	}

	return db, nil
}
