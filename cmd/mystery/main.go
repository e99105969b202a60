package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"mystery-copilot/internal/cli"
	"mystery-copilot/internal/config"
)

func main() {
	logLevel := flag.String("loglevel", "info", "Set logging level (debug, info, warn, error)")
	configPath := flag.String("config", "copilot_config.json", "Path to the settings file")
	flag.Parse()

	log := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, ForceColors: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ui := cli.NewCLI(log, cfg)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if err := ui.Run(flag.Args(), rng); err != nil {
		log.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
}
