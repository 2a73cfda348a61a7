package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harrylevesque/hellonames/internal/api"
	"github.com/harrylevesque/hellonames/internal/files"
	"github.com/harrylevesque/hellonames/internal/utils"
)

var (
	configPath string
	addrFlag   string
	storeFlag  string
	dataDir    string

	rootCmd = &cobra.Command{
		Use:          "server",
		Short:        "Serve the Hello Names list-storage API",
		SilenceUsage: true,
		RunE:         runServer,
	}
)

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "hellonames.yaml", "Path to YAML config (optional)")
	rootCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address, overrides config (e.g. :8000)")
	rootCmd.Flags().StringVar(&storeFlag, "store", "", "Storage backend: memory|json|bolt")
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory for json/bolt storage")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := utils.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if addrFlag != "" {
		cfg.Server.Addr = addrFlag
	}
	if storeFlag != "" {
		cfg.Server.Store = storeFlag
	}
	if dataDir != "" {
		cfg.Server.DataDir = dataDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := utils.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	defer logger.Close()

	store, err := files.Open(cfg.Server.Store, cfg.Server.DataDir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()
	logger.Info("store ready", "backend", cfg.Server.Store)

	r := api.NewRouter(api.NewHandlers(store, logger.Logger), api.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		WriteRate:      cfg.Server.WriteRate,
		Logger:         logger.Logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return api.ListenAndServe(ctx, cfg.Server.Addr, r, logger.Logger)
}
