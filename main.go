package main

import (
	"flag"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"zejzl/sitegen/builder"
	"zejzl/sitegen/config"
)

var (
	configPath  string
	contentPath string
	outputPath  string
	addr        string
	debug       bool
	noWatch     bool
	buildOnly   bool
)

func main() {
	// Logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Info().Msg("Starting...")

	// Command line flags
	flag.BoolVar(&debug, "debug", false, "Sets log level to debug")
	flag.StringVar(&configPath, "config", "./site.yaml", "Path to the site config file")
	flag.StringVar(&contentPath, "content", "", "Path to the content directory (overrides config)")
	flag.StringVar(&outputPath, "out", "", "Path to the artifact output directory (overrides config)")
	flag.StringVar(&addr, "addr", ":8000", "Address to serve the built artifacts on")
	flag.BoolVar(&noWatch, "no-watch", false, "Disable the content watcher")
	flag.BoolVar(&buildOnly, "build-only", false, "Build the artifacts and exit")
	flag.Parse()

	// Set the log level
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Msg("Debug logging has been enabled")

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load site config")
	}
	if contentPath != "" {
		cfg.ContentDir = contentPath
	}
	if outputPath != "" {
		cfg.OutputDir = outputPath
	}

	b := builder.New(cfg)
	if err := b.Build(); err != nil {
		log.Fatal().Err(err).Msg("Failed to build site artifacts")
	}

	// If build only flag is set, exit after the initial build
	if buildOnly {
		log.Info().Msg("Build only flag is set. Exiting...")
		return
	}

	if !noWatch {
		if err := b.Watch(); err != nil {
			log.Fatal().Err(err).Msg("Failed to watch content directory")
		}
	}

	// Serve the artifact output directory
	http.Handle("/", http.FileServer(http.Dir(cfg.OutputDir)))

	// Start the server
	log.Info().Str("addr", addr).Msg("Listening")
	err = http.ListenAndServe(addr, nil)
	log.Fatal().Err(err).Msg("Failed to start server")
}
