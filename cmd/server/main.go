package main

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/django/v3"
	"github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	mflash "github.com/goliatone/go-router/middleware/flash"
	accounts "github.com/goliatone/go-user-accounts"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

//go:embed views
var viewsFS embed.FS

type App struct {
	config *AppConfig
	bunDB  *bun.DB
	repo   accounts.RepositoryManager
	auth   accounts.Authenticator
	auther accounts.HTTPAuthenticator
	srv    router.Server[*fiber.App]
	logger zerolog.Logger
}

func (a *App) GetLogger(name string) accounts.Logger {
	return zlog{a.logger.With().Str("component", name).Logger()}
}

// zlog adapts zerolog to the printf style logger the accounts package expects.
type zlog struct {
	log zerolog.Logger
}

func (l zlog) Debug(format string, args ...any) { l.log.Debug().Msgf(format, args...) }
func (l zlog) Info(format string, args ...any)  { l.log.Info().Msgf(format, args...) }
func (l zlog) Warn(format string, args ...any)  { l.log.Warn().Msgf(format, args...) }
func (l zlog) Error(format string, args ...any) { l.log.Error().Msgf(format, args...) }

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "unable to load .env: %v\n", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	cfg := LoadConfig()

	app := &App{
		config: cfg,
		logger: logger,
	}

	if cfg.Debug {
		fmt.Println("============")
		fmt.Println(print.MaybeHighlightJSON(cfg))
		fmt.Println("============")
	}

	ctx := context.Background()

	if err := WithPersistence(ctx, app); err != nil {
		logger.Fatal().Err(err).Msg("persistence setup failed")
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		logger.Fatal().Err(err).Msg("http server setup failed")
	}

	if err := WithAccounts(ctx, app); err != nil {
		logger.Fatal().Err(err).Msg("accounts setup failed")
	}

	app.srv.Serve(cfg.ServerAddr)

	WaitExitSignal()
}

func WithPersistence(ctx context.Context, app *App) error {
	db, err := sql.Open(sqliteshim.ShimName, app.config.GetDSN())
	if err != nil {
		return err
	}

	persistence.RegisterModel((*accounts.User)(nil))

	client, err := persistence.New(app.config, db, sqlitedialect.New())
	if err != nil {
		return err
	}

	migrationsFS, err := fs.Sub(accounts.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}

	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)

	if err := client.ValidateDialects(ctx); err != nil {
		return err
	}

	if err := client.Migrate(ctx); err != nil {
		return err
	}

	app.bunDB = client.DB()
	app.repo = accounts.NewRepositoryManager(client.DB())

	return app.repo.Validate()
}

func WithHTTPServer(ctx context.Context, app *App) error {
	templates, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return err
	}

	engine := django.NewFileSystem(http.FS(templates), ".html")
	for name, fn := range accounts.TemplateHelpers() {
		engine.AddFunc(name, fn)
	}

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:      true,
			EnablePrintRoutes: app.config.GetDebug(),
			StrictRouting:     false,
			PassLocalsToViews: true,
			Views:             engine,
		}))
	})

	srv.Router().Use(mflash.New(mflash.ConfigDefault))

	srv.Router().Get("/", func(ctx router.Context) error {
		return ctx.Redirect("/dashboard", http.StatusSeeOther)
	})

	app.srv = srv

	return nil
}

func WithAccounts(ctx context.Context, app *App) error {
	cfg := app.config

	users, ok := app.repo.Users().(accounts.UserTracker)
	if !ok {
		return fmt.Errorf("users repository does not track logins")
	}

	provider := accounts.NewUserProvider(users)
	provider.WithLogger(app.GetLogger("accounts:prv"))

	sink := accounts.ActivitySinkFunc(func(ctx context.Context, event accounts.ActivityEvent) error {
		app.logger.Info().
			Str("event", string(event.EventType)).
			Str("actor_id", event.Actor.ID).
			Msg("account activity")
		return nil
	})

	authenticator := accounts.NewAuthenticator(provider, cfg).
		WithLogger(app.GetLogger("accounts:auth")).
		WithActivitySink(sink)

	app.auth = authenticator

	auther, err := accounts.NewHTTPAuthenticator(authenticator, cfg)
	if err != nil {
		return err
	}
	auther.WithLogger(app.GetLogger("accounts:http"))

	app.auther = auther

	tokens := accounts.NewLinkTokens([]byte(cfg.GetLinkTokenKey()), cfg.GetLinkTokenTTL())

	mailer := accounts.NewSMTPMailer(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPass,
		cfg.SMTPFrom,
	)
	mailer.WithLogger(app.GetLogger("accounts:mail"))

	accountMailer := accounts.NewAccountMailer(mailer, tokens, cfg.GetBaseURL()).
		WithAppName(cfg.AppName)

	accounts.RegisterAccountRoutes(app.srv.Router(),
		accounts.WithDebug(cfg.GetDebug()),
		accounts.WithControllerLogger(app.GetLogger("accounts:ctrl")),
		accounts.WithConfig(cfg),
		accounts.WithRepositoryManager(app.repo),
		accounts.WithLinkTokens(tokens),
		accounts.WithAccountMailer(accountMailer),
		accounts.WithAuther(auther),
		accounts.WithSessions(authenticator),
		accounts.WithActivitySink(sink),
	)

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
