package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"apigallery/viewer/internal/config"
	"apigallery/viewer/internal/container"
	"apigallery/viewer/internal/service"

	log "github.com/sirupsen/logrus"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: viewer [-config path] <command> [args]

Commands:
  gallery [-page N] [-interactive]   browse the Pokémon gallery
  search [term...]                   look up a Pokémon by name or ID, or read terms from stdin
  dog                                fetch a random dog image URL
`)
}

func main() {
	flags := flag.NewFlagSet("viewer", flag.ExitOnError)
	flags.Usage = usage
	configPath := flags.String("config", "", "path to a YAML config file (default ./config.yaml)")
	_ = flags.Parse(os.Args[1:])

	args := flags.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration using viper
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var onSearch func(service.SearchView)
	if args[0] == "search" {
		onSearch = printSearchView
	}

	// Initialize container with all dependencies
	app, err := container.New(ctx, cfg, onSearch)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	log.Debug("Configuration loaded successfully")

	switch args[0] {
	case "gallery":
		err = runGallery(ctx, app, args[1:])
	case "search":
		err = runSearch(ctx, app, args[1:])
	case "dog":
		err = runDog(ctx, app)
	default:
		app.Close()
		usage()
		os.Exit(2)
	}

	if closeErr := app.Close(); closeErr != nil {
		log.Errorf("Failed to shut down cleanly: %v", closeErr)
	}

	if err != nil {
		log.Fatalf("Command %s failed: %v", args[0], err)
	}
}
