package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/colisroute/colis/internal/client/api"
	"github.com/colisroute/colis/internal/client/config"
	"github.com/colisroute/colis/internal/client/migrations"
	"github.com/colisroute/colis/internal/client/profilecache"
	"github.com/colisroute/colis/internal/client/repositories/kv"
	"github.com/colisroute/colis/internal/client/services"
	"github.com/colisroute/colis/internal/client/session"
	"github.com/colisroute/colis/internal/common"
	"github.com/colisroute/colis/internal/logging"

	_ "modernc.org/sqlite"
)

const dbFileName = "colis.db"

type App struct {
	config   *config.Config
	db       *sql.DB
	auth     services.AuthService
	trips    services.TripService
	profiles services.ProfileService
	bookings services.BookingService
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := migrations.InitDatabase(ctx, filepath.Join(c.DataDir, dbFileName))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	repo := kv.NewSQLiteRepository(db)

	mode, err := session.ParseMode(c.StorageMode)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	store, mode, err := session.Open(ctx, mode, repo, session.SecureOptions{
		Passphrase: c.StoragePassphrase,
		DataDir:    c.DataDir,
	}, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info(ctx, "session storage ready", "mode", mode)

	client := api.NewHTTPClient(c.BaseURL, c.Timeout,
		api.WithLogger(log),
		api.WithRateLimit(c.RequestsPerSecond),
		api.WithTokenSource(api.TokenFunc(func(ctx context.Context) (string, error) {
			s, err := store.Get(ctx)
			if err != nil || s == nil {
				return "", err
			}
			return s.Token, nil
		})),
	)
	cache := profilecache.New(repo, log)

	return &App{
		config:   c,
		db:       db,
		auth:     services.NewAuthService(client, store, cache, log),
		trips:    services.NewTripService(client, store, log),
		profiles: services.NewProfileService(client, cache, log),
		bookings: services.NewBookingService(client, store, log),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run restores the stored session and serves the REPL until exit.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.db != nil {
			_ = a.db.Close()
		}
	}()

	a.say("Welcome to Colis (type 'help' for commands)")
	a.say("Server:", a.config.BaseURL)

	st := a.auth.Bootstrap(ctx)
	a.announce(st)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) say(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// fail reports err to the user in plain words and returns it.
func (a *App) fail(ctx context.Context, what string, err error) error {
	a.log.Warn(ctx, what, "error", err)
	a.say("Error:", services.UserMessage(err))
	return err
}

func (a *App) currentPath() services.Path {
	return services.Route(a.auth.State())
}

func (a *App) isLoggedIn() bool {
	return a.auth.State().Kind == services.Authenticated
}

func (a *App) role() common.Role {
	if s := a.auth.State().Session; s != nil {
		return s.Role
	}
	return ""
}

func (a *App) userID() int64 {
	if s := a.auth.State().Session; s != nil {
		return s.UserID
	}
	return 0
}

func (a *App) getStatus() string {
	switch a.currentPath() {
	case services.PathSenderHome:
		return fmt.Sprintf("(sender #%d)", a.userID())
	case services.PathTransporterHome:
		return fmt.Sprintf("(transporter #%d)", a.userID())
	case services.PathRoleSelection:
		return "(choose role)"
	}
	return ""
}

// announce tells the user which screen the state lands on.
func (a *App) announce(st services.State) {
	switch services.Route(st) {
	case services.PathSenderHome:
		a.say("Signed in as sender. Try 'search'.")
	case services.PathTransporterHome:
		a.say("Signed in as transporter. Try 'trips' or 'addtrip'.")
	case services.PathRoleSelection:
		a.say("Welcome! Please choose your role with 'role'.")
	case services.PathLogin:
		a.say("Please 'login', 'register' or sign in with 'google'.")
	}
}
