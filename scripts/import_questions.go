// Import en masse de questions dans la banque du QCM.
//
// Accepte un fichier JSON (tableau de questions au format de l'export)
// ou un classeur XLSX au format du modèle d'import.
//
// Usage : go run scripts/import_questions.go -file questions.xlsx [-admin 1]

package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"olympiades_backend/internal/config"
	"olympiades_backend/internal/repository"
	"olympiades_backend/internal/service"
	"olympiades_backend/pkg/database"
	"olympiades_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	file := flag.String("file", "", "Fichier de questions (.json ou .xlsx)")
	adminID := flag.Uint("admin", 0, "ID de l'administrateur à créditer dans le journal d'audit")
	flag.Parse()

	if *file == "" {
		log.Fatal("Usage : go run scripts/import_questions.go -file questions.xlsx")
	}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("Impossible de lire la configuration : %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Configuration invalide : %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Connexion à la base impossible : %v", err)
	}

	questions := service.NewQuestionService(
		repository.NewQuestionRepository(db),
		repository.NewAuditRepository(db),
	)

	payload, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Impossible de lire %s : %v", *file, err)
	}

	var report *service.QuestionImportReport
	switch {
	case strings.HasSuffix(*file, ".xlsx"):
		report, err = questions.ImportXLSX(*adminID, payload)
	case strings.HasSuffix(*file, ".json"):
		var rows []service.QuestionImportRow
		if err := json.Unmarshal(payload, &rows); err != nil {
			log.Fatalf("JSON invalide : %v", err)
		}
		report, err = questions.Import(*adminID, rows)
	default:
		log.Fatal("Format non reconnu : seuls .json et .xlsx sont acceptés")
	}
	if err != nil {
		log.Fatalf("Échec de l'import : %v", err)
	}

	log.Printf("Import terminé : %d importées, %d rejetées", report.Imported, report.Rejected)
	for _, e := range report.Errors {
		log.Printf("  %s", e)
	}
}
