package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	tecnifix "github.com/tecnifix/tecnifix-go"
	"github.com/tecnifix/tecnifix-go/session"
)

// app bundles the wired-up client, session service, and guard shared
// by every subcommand.
type app struct {
	log      zerolog.Logger
	client   *tecnifix.Client
	sessions *session.Service
	guard    *session.Guard
}

func newApp(cmd *cobra.Command) (*app, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !verbose {
		log = log.Level(zerolog.WarnLevel)
	}

	store, err := newStore(cmd)
	if err != nil {
		return nil, err
	}
	sessions, err := session.NewService(session.ServiceConfig{
		Store: store,
		OnReset: func() {
			log.Info().Msg("session reset; back to anonymous")
		},
	})
	if err != nil {
		return nil, err
	}

	env, _ := cmd.Flags().GetString("env")
	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		baseURL = os.Getenv("TECNIFIX_BASE_URL")
	}
	client, err := tecnifix.NewClient(tecnifix.Config{
		Environment: tecnifix.Environment(env),
		BaseURL:     baseURL,
		Credentials: sessions,
		OnAuthExpired: func(ctx context.Context, req *http.Request) {
			// Backend stopped honoring the stored credential; discard
			// it like an explicit logout would.
			log.Warn().Str("path", req.URL.Path).Msg("credential no longer honored; clearing session")
			if err := sessions.Invalidate(); err != nil {
				log.Error().Err(err).Msg("clear credential")
			}
		},
		Telemetry: telemetryHooks(log),
	})
	if err != nil {
		return nil, err
	}

	return &app{log: log, client: client, sessions: sessions, guard: session.NewGuard(sessions)}, nil
}

func newStore(cmd *cobra.Command) (session.Store, error) {
	dir, _ := cmd.Flags().GetString("session-dir")
	if dir == "" {
		dir = os.Getenv("TECNIFIX_SESSION_DIR")
	}
	if dir != "" {
		return session.NewFileStore(dir), nil
	}
	return session.DefaultFileStore()
}

func telemetryHooks(log zerolog.Logger) tecnifix.TelemetryHooks {
	return tecnifix.TelemetryHooks{
		OnHTTPResponse: func(ctx context.Context, req *http.Request, resp *http.Response, err error, latency time.Duration) {
			ev := log.Debug().Str("method", req.Method).Str("path", req.URL.Path).Dur("latency", latency)
			if err != nil {
				ev = ev.Err(err)
			} else {
				ev = ev.Int("status", resp.StatusCode)
			}
			ev.Msg("http")
		},
		OnLogEntry: func(ctx context.Context, entry tecnifix.LogEntry) {
			ev := log.Info()
			if entry.Level == tecnifix.LogLevelError {
				ev = log.Error()
			}
			ev.Fields(entry.Fields).Msg(entry.Message)
		},
	}
}

// requireRole is the console's route guard: commands touching tickets
// call it before doing anything, exactly as the dashboard route did.
func (a *app) requireRole(role string) error {
	if a.guard.CanEnter(role) != session.Allow {
		return fmt.Errorf("login required (run `tecnifix login` with an account holding %s)", role)
	}
	return nil
}
