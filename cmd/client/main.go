package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrylevesque/hellonames/internal/client"
	"github.com/harrylevesque/hellonames/internal/tui"
	"github.com/harrylevesque/hellonames/internal/utils"
	"github.com/harrylevesque/hellonames/internal/view"
)

var (
	configPath string
	serverFlag string

	rootCmd = &cobra.Command{
		Use:          "client",
		Short:        "Submit names to and list names from a Hello Names server",
		Long:         "Without a subcommand, opens the interactive form when attached to a terminal and lists names otherwise.",
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Print every submitted name",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	addCmd = &cobra.Command{
		Use:   "add NAME",
		Short: "Submit a name and print the refreshed list",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAdd,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "hellonames.yaml", "Path to YAML config (optional)")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Override API base URL (e.g. http://localhost:8000)")
	rootCmd.AddCommand(listCmd, addCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads config once and builds a controller bound to the API.
func setup(logOut io.Writer) (*view.Controller, *utils.Logger, error) {
	cfg, err := utils.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if serverFlag != "" {
		cfg.API.BaseURL = strings.TrimRight(serverFlag, "/")
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	logger, err := utils.NewLogger(cfg.Log, logOut)
	if err != nil {
		return nil, nil, err
	}
	c := client.New(cfg.API.BaseURL, client.WithLogger(logger.Logger))
	return view.NewController(c, logger.Logger), logger, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runInteractive(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return runList(cmd, args)
	}
	// Log lines on stderr would tear the screen; only a configured log
	// file receives them.
	ctrl, logger, err := setup(nil)
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()
	return tui.Run(ctx, ctrl)
}

func runList(cmd *cobra.Command, args []string) error {
	ctrl, logger, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctrl.Mount(ctx)
	return printState(cmd.OutOrStdout(), ctrl.State())
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctrl, logger, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctrl.SetDraft(strings.Join(args, " "))
	ctrl.Submit(ctx)
	return printState(cmd.OutOrStdout(), ctrl.State())
}

// printState writes the list, or returns the state's error message.
func printState(w io.Writer, st view.State) error {
	if st.ErrorMessage != "" {
		return errors.New(st.ErrorMessage)
	}
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		_, err := io.WriteString(w, tui.RenderNames(st, ""))
		return err
	}
	for _, n := range st.Names {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}
