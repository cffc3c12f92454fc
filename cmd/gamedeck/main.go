package main

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/avbelov/gamedeck/internal/app"
	"github.com/avbelov/gamedeck/internal/config"
	"github.com/avbelov/gamedeck/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetConfig()
	if err != nil {
		logger.NewLogger("gamedeck").Fatal().Err(err).Msg("error getting configs")
	}

	windowID := uuid.NewString()
	log := logger.NewWindowLogger(string(cfg.Windows.Kind), windowID)

	windowApp, err := app.NewApp(windowID, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init window app error")
	}

	if err = windowApp.Run(); err != nil {
		log.Fatal().Err(err).Msg("window run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
