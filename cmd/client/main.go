package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/client/api"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/client/auth"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/client/cli"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/client/iocli"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:3000", "Server URL")
	dbPath := flag.String("db", "autoninjas-client.db", "Path to local session database")
	username := flag.String("username", "", "Username")
	password := flag.String("password", "", "Password (not recommended)")
	passwordFile := flag.String("password-file", "", "Path to file containing the password")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	console := iocli.NewStdio()

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(console)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}

	apiClient := api.NewClient(*serverURL)
	session := auth.NewService(apiClient, boltStorage)

	c := cli.New(console, session, apiClient, cli.Options{
		Username:  *username,
		ServerURL: *serverURL,
		Passwords: cli.Passwords{
			FromFile: *passwordFile,
			FromArgs: *password,
		},
	})

	runErr := c.Run(ctx, args[0], args[1:])

	if err := boltStorage.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("Auto Ninjas Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
