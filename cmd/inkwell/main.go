package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/okvist/inkwell"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "new":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: inkwell new <post-title>")
			os.Exit(1)
		}
		if err := runNew(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("inkwell %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := inkwell.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	app := inkwell.New(cfg, inkwell.WithLogger(log))
	defer app.Close()
	return app.Start()
}

func printUsage() {
	fmt.Println(`inkwell - a personal blog publishing engine

Usage:
  inkwell <command> [arguments]

Commands:
  serve          Run the blog server
  new <title>    Scaffold a new post in the content directory
  version        Print the inkwell version
  help           Show this help message

Examples:
  inkwell serve
  inkwell new "Highlighting lines in code blocks"`)
}
