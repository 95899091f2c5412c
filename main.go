// @title API Olympiades Nationales d'Intelligence Artificielle
// @version 1.0
// @description Backend de la plateforme de sélection des candidats aux Olympiades Nationales d'IA : inscriptions, dossiers, QCM de sélection, classements et attestations.

// @contact.name Équipe technique Olympiades
// @contact.email support@olympiades-ia.bj

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"olympiades_backend/internal/app"
	"olympiades_backend/internal/config"
	"olympiades_backend/pkg/configwatcher"
	"olympiades_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "Exécute uniquement les migrations puis quitte")
	migrate := flag.Bool("migrate", false, "Force les migrations au démarrage (même en mode release)")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Migrations terminées, arrêt du programme")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if reloaded, ok := newCfg.(*config.Config); ok {
			application.ApplyConfig(reloaded)
		}
	})

	application.Run()
}
