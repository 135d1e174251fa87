// Command agenda muestra la agenda del día (comidas y medicaciones de todas
// las mascotas) y, con -watch, avisa cada entrada a su hora.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"pettrackr/internal/client"
	"pettrackr/internal/config"
	"pettrackr/internal/dashboard"
	"pettrackr/internal/platform/lifecycle"
	"pettrackr/internal/platform/logger"
	"pettrackr/internal/reminder"
	"pettrackr/internal/session"
)

const (
	exitOK             = 0
	exitError          = 1
	exitSessionExpired = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	fs := flag.NewFlagSet("agenda", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: agenda [flags]

Muestra la agenda de hoy. Credenciales por flag o por
PETTRACKR_EMAIL / PETTRACKR_PASSWORD.

Flags:
`)
		fs.PrintDefaults()
	}
	baseURL := fs.String("url", cfg.Client.BaseURL, "URL base del API")
	email := fs.String("email", os.Getenv("PETTRACKR_EMAIL"), "email del owner")
	password := fs.String("password", os.Getenv("PETTRACKR_PASSWORD"), "password del owner")
	watch := fs.Bool("watch", false, "quedarse corriendo y avisar cada entrada a su hora")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "pettrackr-agenda",
	})

	api, err := client.New(*baseURL, cfg.Client.Timeout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := session.New(api)
	if err := login(ctx, sess, *email, *password); err != nil {
		fmt.Fprintln(stderr, err)
		return exitCode(err)
	}

	agg := dashboard.NewFromBackend(api, dashboard.Options{
		MaxConcurrency: cfg.Client.MaxConcurrency,
		FetchTimeout:   cfg.Client.FetchTimeout,
		Logger:         log,
	})

	d, err := agg.LoadForSession(ctx, sess)
	if err != nil {
		fmt.Fprintln(stderr, dashboard.UserMessage(err))
		return exitCode(err)
	}
	printAgenda(stdout, d)

	if !*watch {
		return exitOK
	}

	sched := reminder.New(agg, sess, reminder.NewLogNotifier(log), reminder.Options{
		Logger: log,
	})
	if err := sched.Start(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	lc := lifecycle.New(0, log)
	registerShutdown(lc, sess, sched.Stop)
	ctx, stop := lc.Signals(ctx)
	defer stop()

	code := exitOK
	select {
	case <-ctx.Done():
	case <-sched.Done():
		if sess.State() != session.StateAuthenticated {
			fmt.Fprintln(stderr, dashboard.UserMessage(dashboard.ErrSessionExpired))
			code = exitSessionExpired
		}
	}
	if err := lc.Shutdown(context.Background()); err != nil && code == exitOK {
		code = exitError
	}
	return code
}

// registerShutdown: los hooks corren LIFO, así que logout va primero y corre
// después de frenar el cron. Al revés, un tick en curso vería un 401 y lo
// contaría como sesión vencida.
func registerShutdown(lc *lifecycle.Manager, sess *session.Session, stopReminders lifecycle.ShutdownFunc) {
	lc.Register("logout", func(ctx context.Context) error {
		if sess.State() != session.StateAuthenticated {
			return nil
		}
		return sess.Logout(ctx)
	})
	lc.Register("reminders", stopReminders)
}

// login reutiliza la sesión si el server ya la reconoce; si no, usa las credenciales.
func login(ctx context.Context, sess *session.Session, email, password string) error {
	if err := sess.Init(ctx); err != nil {
		return err
	}
	if sess.State() == session.StateAuthenticated {
		return nil
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", client.ErrUnauthorized)
	}
	return sess.Login(ctx, email, password)
}

func exitCode(err error) int {
	if dashboard.Kind(err) == dashboard.ErrorSessionExpired {
		return exitSessionExpired
	}
	return exitError
}

func printAgenda(w io.Writer, d dashboard.Dashboard) {
	if len(d.Pets) == 0 {
		fmt.Fprintln(w, "No pets registered yet.")
		return
	}
	if len(d.Agenda) == 0 {
		fmt.Fprintln(w, "Nothing scheduled for today.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tKIND\tPET\tDETAIL")
	for _, item := range d.Agenda {
		t := item.Time
		if t == "" {
			t = "--:--"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t, item.Kind, item.PetName, reminder.Describe(item))
	}
	_ = tw.Flush()
}
