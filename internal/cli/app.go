package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dbalogun/alumnihub/internal/avatar"
	"github.com/dbalogun/alumnihub/internal/backend"
	"github.com/dbalogun/alumnihub/internal/config"
	"github.com/dbalogun/alumnihub/internal/logging"
	"github.com/dbalogun/alumnihub/internal/profile"
	"github.com/dbalogun/alumnihub/internal/session"
	"github.com/dbalogun/alumnihub/internal/storage"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// App wires the directory backend, the object store, and one edit session
// behind a small interactive shell.
type App struct {
	config  *config.Config
	log     logging.Logger
	objects storage.ObjectStore
	store   backend.Store
	ctrl    *session.Controller
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	objects, err := storage.NewS3Store(ctx, storage.S3Config{
		Endpoint:     c.S3Endpoint,
		Region:       c.S3Region,
		Bucket:       c.S3Bucket,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
		PublicBucket: c.PublicBucket,
	})
	if err != nil {
		return nil, fmt.Errorf("object store: %w", err)
	}

	return &App{
		config:  c,
		log:     log,
		objects: objects,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.ctrl != nil && a.ctrl.View() != nil
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	s := a.ctrl.View().DisplayName()
	if a.ctrl.Editing() {
		s += " editing"
	}
	return fmt.Sprintf("(%s)", s)
}

// Run starts a read-eval-print loop over os.Stdin and dispatches commands.
// The loop exits on EOF or when the user types "exit" or "quit".
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to AlumniHub CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		printlnFn(fmt.Sprintf("ah %s> ", a.getStatus()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: show, edit, sets, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}
		case "login":
			_ = a.Login(ctx)
		case "show":
			_ = a.Show(ctx)
		case "edit":
			_ = a.Edit(ctx)
		case "sets":
			_ = a.Sets(ctx)
		case "logout":
			a.Logout()
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", parts[0])
		}
	}
}

// Login reads a session token, builds a fresh session around it, and loads
// the caller's profile.
func (a *App) Login(ctx context.Context) error {
	token, err := getToken(os.Stdout)
	if err != nil {
		return err
	}

	a.store = backend.NewRESTStore(a.config.BackendURL, a.config.APIKey, token)
	resolver := avatar.NewResolver(a.objects, a.config.SignedURLTTL, a.log)
	rec := profile.NewReconciler(a.store, a.objects, resolver, a.log)
	a.ctrl = session.NewController(rec, avatar.NewPreviews(), a.log)

	if err := a.ctrl.Load(ctx, token); err != nil {
		printlnFn(a.ctrl.Error())
		a.ctrl = nil
		a.store = nil
		return err
	}

	printlnFn("Logged in as", a.ctrl.View().DisplayName())
	if warn := a.ctrl.Error(); warn != "" {
		printlnFn("Warning:", warn)
	}
	return nil
}

// Logout drops the session. Nothing is persisted locally, so there is
// nothing else to clean up.
func (a *App) Logout() {
	a.ctrl = nil
	a.store = nil
	printlnFn("Logged out")
}
