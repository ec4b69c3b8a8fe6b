package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/glucotrack/glucotrack/internal/client/api"
	"github.com/glucotrack/glucotrack/internal/client/config"
	"github.com/glucotrack/glucotrack/internal/client/models"
	"github.com/glucotrack/glucotrack/internal/client/services"
	"github.com/glucotrack/glucotrack/internal/client/session"
	"github.com/glucotrack/glucotrack/internal/client/sessionstore"
	"github.com/glucotrack/glucotrack/internal/logging"

	_ "modernc.org/sqlite"
)

// authSvc is the slice of AuthService the commands need. The concrete
// services.AuthService satisfies it; tests provide stubs.
type authSvc interface {
	Login(ctx context.Context, email, password string) (models.UserProfile, error)
	Register(ctx context.Context, name, email, password string) error
	Logout(ctx context.Context)
}

type predictionSvc interface {
	Submit(ctx context.Context, req models.PredictionRequest) (models.PredictionResponse, error)
	History(ctx context.Context) ([]models.HistoryRecord, error)
	LastChecks(ctx context.Context) ([]map[string]any, error)
}

type chatSvc interface {
	Ask(ctx context.Context, question string) (string, error)
}

type dietSvc interface {
	Plans(ctx context.Context) (veg, nonVeg *models.DietPlan, err error)
}

type App struct {
	config      *config.Config
	log         logging.Logger
	manager     *session.Manager
	auth        authSvc
	predictions predictionSvc
	chat        chatSvc
	diet        dietSvc
	reader      *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	sl := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logger := logging.NewSlogLogger(sl)

	db, err := sessionstore.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}

	store := sessionstore.NewSQLiteStore(db)
	manager := session.NewManager(store, logger, session.WithErrorTTL(c.ErrorClearDelay))

	apiClient := api.New(c.BaseURL, c.RequestTimeout, logger,
		api.WithTokenFunc(tokenFromStore(store)),
		api.WithReadyFunc(manager.AwaitReady),
		api.WithOnUnauthorized(func(ctx context.Context) {
			manager.Invalidate(ctx, session.MsgExpired)
		}),
	)

	return &App{
		config:      c,
		log:         logger,
		manager:     manager,
		auth:        services.NewAuthService(apiClient, manager, logger),
		predictions: services.NewPredictionService(apiClient, store, logger),
		chat:        services.NewChatService(apiClient, logger),
		diet:        services.NewDietService(store, logger),
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

// tokenFromStore reads the bearer token fresh from persistent storage on
// every request, so a credential change takes effect on the next call.
func tokenFromStore(store sessionstore.Store) api.TokenFunc {
	return func(ctx context.Context) (string, error) {
		sess, err := store.Load(ctx)
		if errors.Is(err, sessionstore.ErrCorrupt) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		if sess == nil {
			return "", nil
		}
		return sess.Credential.Token, nil
	}
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.manager.Authenticated()
}
