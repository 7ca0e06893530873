// Command adminctl is a terminal front-end for the admin panel API.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"adminpanel/internal/client"
	"adminpanel/internal/session"
)

const usage = `usage: adminctl [flags] <command> [args]

commands:
  login  -email E [-password P]   sign in and store the session
  logout                          forget the stored session
  whoami                          show the signed-in user
  stats                           dashboard figures
  users list   [-page N] [-size N] [-sort F] [-order asc|desc] [-search S]
  users add    -name N -email E [-role R]
  users edit   -id ID [-name N] [-email E] [-role R]
  users delete -id ID [-yes]
  users export -o FILE [-search S] [-sort F] [-order asc|desc]

flags:
`

type app struct {
	stdin    *bufio.Reader
	stdout   io.Writer
	stderr   io.Writer
	sessions *session.Manager
	api      *client.Client
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adminctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	apiURL := fs.String("api", envOr("ADMIN_API_URL", "http://localhost:8080/api"), "API base URL")
	backend := fs.String("session", envOr("ADMIN_SESSION_BACKEND", "file"), "session store: file or keyring")
	sessionDir := fs.String("session-dir", os.Getenv("ADMIN_SESSION_DIR"), "directory of the session file")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	store, err := newStore(*backend, *sessionDir)
	if err != nil {
		return err
	}
	sessions, err := session.NewManager(store)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	a := &app{
		stdin:    bufio.NewReader(stdin),
		stdout:   stdout,
		stderr:   stderr,
		sessions: sessions,
	}
	a.api = client.New(*apiURL, sessions, client.WithUnauthorizedHandler(a.sessionExpired))

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout()
	case "whoami":
		return a.whoami()
	case "stats":
		return a.stats(ctx)
	case "users":
		return a.users(ctx, rest)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func newStore(backend, dir string) (session.Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "file":
		path := session.DefaultFilePath()
		if dir != "" {
			path = filepath.Join(dir, "session.json")
		}
		return session.FileStore{Path: path}, nil
	case "keyring":
		return session.NewKeyringStore(os.Getenv("USER")), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", backend)
	}
}

// sessionExpired clears the session on any 401 so the next run starts at login.
func (a *app) sessionExpired() {
	if err := a.sessions.Clear(); err != nil {
		fmt.Fprintln(a.stderr, "warning: failed to clear session:", err)
	}
	fmt.Fprintln(a.stderr, "session expired or invalid; run `adminctl login`")
}

func (a *app) requireLogin() error {
	if !a.sessions.IsAuthenticated() {
		return errors.New("not logged in; run `adminctl login`")
	}
	return nil
}

// prompt reads one line from stdin after printing label.
func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.stderr, label)
	line, err := a.stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
