// Package cli wires configuration, storage, and the API client into
// the Bubble Tea program.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nvu/mailterm/internal/api"
	"github.com/nvu/mailterm/internal/app"
	"github.com/nvu/mailterm/internal/logging"
	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/session"
	"github.com/nvu/mailterm/internal/store"
)

// NewRootCmd builds the mailterm root command.
func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "mailterm",
		Short:         "Terminal client for your webmail account",
		Long:          "mailterm is a keyboard-driven terminal client for the webmail REST API:\nread, search, and triage mail, compose and schedule sends, and switch\nbetween accounts without leaving the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}

	cmd.PersistentFlags().StringVar(
		&configPath, "config", model.DefaultConfigPath(), "path to the config file")

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	// The TUI owns the terminal; refuse to start without one.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("mailterm requires an interactive terminal")
	}

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	closeLog, err := logging.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintln(os.Stderr, "closing log file:", err)
		}
	}()

	dbPath := filepath.Join(model.ConfigDir(), "mailterm.db")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	st, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	client := api.NewClient(
		cfg.Server.BaseURL,
		time.Duration(cfg.Server.TimeoutSec)*time.Second,
	)
	repo := session.NewRepository(st, session.KeyringVault{})

	log.Info().Str("server", cfg.Server.BaseURL).Msg("starting mailterm")

	p := tea.NewProgram(
		app.New(client, repo, st, *cfg),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
