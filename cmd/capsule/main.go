package main

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/drake/capsule/config"
	"github.com/drake/capsule/gemini"
	"github.com/drake/capsule/session"
	"github.com/drake/capsule/ui"
)

var (
	configPath string
	logPath    string
)

var rootCmd = &cobra.Command{
	Use:   "capsule [url]",
	Short: "A terminal browser for the Gemini protocol",
	Long: `Capsule is an interactive terminal client for Geminispace.
It opens the configured home capsule, or the address given as argument.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config.toml (default: "+config.File()+")")
	rootCmd.Flags().StringVar(&logPath, "log", "", "write a debug log to this file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.File()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if logPath != "" {
		cfg.LogFile = logPath
	}

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	startURL := cfg.StartURL
	if len(args) == 1 {
		startURL = args[0]
	}
	start, err := url.Parse(startURL)
	if err != nil {
		return fmt.Errorf("invalid start url %q: %w", startURL, err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.KnownHostsPath()), 0o700); err != nil {
		return err
	}
	pins, err := gemini.NewPinStore(cfg.KnownHostsPath(), logger)
	if err != nil {
		return err
	}

	var clientCert *tls.Certificate
	if cfg.CertFile != "" && cfg.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return fmt.Errorf("loading client certificate: %w", err)
		}
		clientCert = &cert
	}

	client := gemini.New(gemini.Options{
		AutoRedirect: cfg.AutoRedirect,
		MaxRedirects: cfg.MaxRedirects,
		Certificate:  clientCert,
		Pins:         pins,
		Logger:       logger,
	})

	sess := session.New(client, start, logger)
	program := tea.NewProgram(ui.New(sess), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// newLogger builds the application logger. The terminal belongs to the
// TUI, so logs go to a file or nowhere.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}
