package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harrylevesque/hellonames/internal/api"
	"github.com/harrylevesque/hellonames/internal/client"
	"github.com/harrylevesque/hellonames/internal/utils"
	"github.com/harrylevesque/hellonames/internal/web"
)

var (
	configPath string
	serverFlag string
	addrFlag   string

	rootCmd = &cobra.Command{
		Use:          "guiclient",
		Short:        "Serve the Hello Names form as an HTML page",
		SilenceUsage: true,
		RunE:         runGUI,
	}
)

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "hellonames.yaml", "Path to YAML config (optional)")
	rootCmd.Flags().StringVar(&serverFlag, "server", "", "Override API base URL (e.g. http://localhost:8000)")
	rootCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address, overrides config (e.g. :8081)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := utils.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if serverFlag != "" {
		cfg.API.BaseURL = serverFlag
	}
	if addrFlag != "" {
		cfg.GUI.Addr = addrFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := utils.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	defer logger.Close()

	c := client.New(cfg.API.BaseURL, client.WithLogger(logger.Logger))
	srv := web.NewServer(c, logger.Logger)
	logger.Info("[GUI] using API", "base_url", c.BaseURL())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return api.ListenAndServe(ctx, cfg.GUI.Addr, srv.Router(), logger.Logger)
}
