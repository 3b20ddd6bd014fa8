// Package cli is the interactive terminal front end. It owns no domain
// state: every command calls into the session and data stores and renders
// what they hold.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	"paprikasync/internal/client/api"
	"paprikasync/internal/client/config"
	"paprikasync/internal/client/models"
	"paprikasync/internal/client/repositories/metadata"
	"paprikasync/internal/client/scroll"
	"paprikasync/internal/client/session"
	"paprikasync/internal/client/store"
	"paprikasync/internal/logging"
)

// pageSize is how many recipes one screenful shows.
const pageSize = 10

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	session *session.Store
	store   *store.Store
	scroll  *scroll.Cache
	api     api.API

	reader *bufio.Reader
	out    io.Writer

	// Current list-view navigation state. navKey changes on every entry
	// into a list view; offset is the position the scroll cache records.
	scope  models.Scope
	navKey string
	offset int
	filter string
}

// NewApp wires the stores together. The session boot state (anonymous vs
// refreshing) is decided here, synchronously, before the first prompt.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	db, err := metadata.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}

	repo := metadata.NewSQLiteRepository(db)
	apiClient := api.NewClient(&http.Client{Timeout: cfg.RequestTimeout}, cfg.ServerBaseURL)
	sess := session.New(ctx, apiClient, repo, log)
	dataStore := store.New(apiClient, sess.PartnerCode, log)

	return &App{
		config:  cfg,
		log:     log,
		db:      db,
		session: sess,
		store:   dataStore,
		scroll:  scroll.NewCache(),
		api:     apiClient,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Close releases the local database handle.
func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) status() string {
	if a.session.Refreshing() {
		return "(refreshing)"
	}
	if user := a.session.User(); user != nil {
		return fmt.Sprintf("(%s)", user.Email)
	}
	return "(anonymous)"
}

// requireLogin prints a hint and returns false unless authenticated.
func (a *App) requireLogin() bool {
	if a.session.LoggedIn() {
		return true
	}
	fmt.Fprintln(a.out, "Please login first.")
	return false
}
