package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nixai/knowledge-assistant/internal/chat"
	"github.com/nixai/knowledge-assistant/internal/config"
	"github.com/nixai/knowledge-assistant/internal/docs"
	"github.com/nixai/knowledge-assistant/internal/gateway"
	"github.com/nixai/knowledge-assistant/internal/platform/logger"
	"github.com/nixai/knowledge-assistant/internal/session"
	"github.com/nixai/knowledge-assistant/internal/session/storage"
	"github.com/nixai/knowledge-assistant/internal/upload"
)

var serviceURL string
var debug bool

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "assistant",
		Short: "Client for the Knowledge Assistant document Q&A backend",
		Long: "Upload documents, ask natural-language questions, and inspect cited\n" +
			"source passages. Requires a running backend (default port 8000).",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})

			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				_ = os.Setenv("ASSISTANT_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	defaultURL := getEnv("ASSISTANT_SERVICE_URL", "http://localhost:8000")
	rootCmd.PersistentFlags().StringVar(&serviceURL, "service-url", defaultURL, "Base URL of the assistant backend")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newUploadCmd())
	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newDocsCmd())

	return rootCmd
}

// app wires the gateway, session store, and controllers for one command
// invocation.
type app struct {
	cfg     *config.Config
	gw      *gateway.Gateway
	store   *session.Store
	chat    *chat.Controller
	upload  *upload.Controller
	docs    *docs.Controller
	timeout time.Duration
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if serviceURL != "" {
		cfg.ServiceURL = serviceURL
	}

	lg := logger.New("assistant")
	gw, err := gateway.New(cfg.ServiceURL, lg, gateway.WithHTTPTimeout(cfg.HTTPTimeout))
	if err != nil {
		return nil, err
	}

	store := session.NewStore(gw, storage.NewFileStore(cfg.SessionFile), lg)
	return &app{
		cfg:     cfg,
		gw:      gw,
		store:   store,
		chat:    chat.NewController(gw, store, lg),
		upload:  upload.NewController(gw, store, lg),
		docs:    docs.NewController(gw, store, lg),
		timeout: cfg.HTTPTimeout,
	}, nil
}

// requireLogin gates every authenticated surface behind a LoggedIn
// session.
func (a *app) requireLogin() error {
	if !a.store.LoggedIn() {
		return fmt.Errorf("not logged in: run 'assistant login' first")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
