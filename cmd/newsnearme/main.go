package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/newsnearme/pkg/config"
	"github.com/umputun/newsnearme/pkg/dashboard"
	"github.com/umputun/newsnearme/pkg/domain"
	"github.com/umputun/newsnearme/pkg/newsapi"
	"github.com/umputun/newsnearme/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"path to YAML config file, defaults are used if empty"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides server.listen"`
	APIURL string `long:"api-url" env:"API_URL" description:"news API base URL, overrides api.url"`

	// one-shot mode
	Call     string `long:"call" description:"call a service once, print the response and exit (news-auto, news-custom, location, categories, health)"`
	Limit    int    `long:"limit" description:"news limit for --call"`
	Category string `long:"category" description:"news category for --call"`
	City     string `long:"city" description:"city for --call=news-custom"`
	Country  string `long:"country" description:"country for --call=news-custom"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// run loads configuration and either calls one service or runs the dashboard server until ctx is done
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.APIURL != "" {
		cfg.API.URL = opts.APIURL
	}

	baseURL, err := cfg.API.BaseURL()
	if err != nil {
		return fmt.Errorf("invalid api url: %w", err)
	}

	client := newsapi.New(newsapi.Params{
		BaseURL:    baseURL,
		Timeout:    cfg.API.Timeout,
		Attempts:   cfg.API.Attempts,
		RetryDelay: cfg.API.RetryDelay,
		RateLimit:  cfg.API.RateLimit,
		Burst:      cfg.API.Burst,
		UserAgent:  cfg.API.UserAgent,
	})

	if opts.Call != "" {
		return callService(ctx, opts, cfg, client, os.Stdout)
	}

	log.Printf("[INFO] starting newsnearme version %s, news api %s", revision, client.BaseURL())
	srv := server.New(cfg, client, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	log.Print("[INFO] shutdown complete")
	return nil
}

// callService bootstraps a session, performs one service call and prints the formatted response.
// Returns error if the call failed.
func callService(ctx context.Context, opts Opts, cfg *config.Config, api dashboard.API, w io.Writer) error {
	id := domain.ServiceID(opts.Call)
	svc, ok := domain.LookupService(id)
	if !ok {
		return fmt.Errorf("%w: %q", dashboard.ErrUnknownService, opts.Call)
	}

	store := dashboard.NewStore(dashboard.NewState(cfg.UI.DefaultLimit))
	dashboard.NewLoader(api).Bootstrap(ctx, store)

	var actions []dashboard.Action
	if opts.Limit != 0 {
		actions = append(actions, dashboard.Action{Type: dashboard.ActLimitSelected, Limit: opts.Limit})
	}
	if opts.Category != "" {
		actions = append(actions, dashboard.Action{Type: dashboard.ActCategorySelected, Category: opts.Category})
	}
	if _, err := store.Apply(actions...); err != nil {
		return fmt.Errorf("invalid filters: %w", err)
	}

	st, err := dashboard.NewDispatcher(api).Dispatch(ctx, store,
		dashboard.Request{Service: id, City: opts.City, Country: opts.Country})
	if err != nil {
		return fmt.Errorf("call %s: %w", id, err)
	}
	if st.Response == nil {
		return errors.New("no response stored")
	}

	printResponse(w, svc, st)
	if st.Response.IsErr() {
		return fmt.Errorf("%s failed: %s", id, st.Response.Err)
	}
	return nil
}

// printResponse writes the status line, news cards for searches and the raw response
func printResponse(w io.Writer, svc domain.Service, st dashboard.State) {
	status := color.New(color.FgGreen).Sprint("ok")
	if st.Response.IsErr() {
		status = color.New(color.FgRed).Sprint("failed")
	}
	badge := ""
	switch st.Health {
	case domain.HealthOnline:
		badge = color.New(color.FgGreen).Sprint("API Online")
	case domain.HealthOffline:
		badge = color.New(color.FgRed).Sprint("API Offline")
	}
	_, _ = fmt.Fprintf(w, "%s %s %s %s [%s]\n", svc.Icon, svc.Name, svc.Method, svc.Endpoint, status)
	if badge != "" {
		_, _ = fmt.Fprintln(w, badge)
	}

	if svc.ID.IsNewsSearch() && !st.Response.IsErr() {
		if len(st.News) == 0 {
			_, _ = fmt.Fprintln(w, "no news found")
		}
		for _, n := range st.News {
			_, _ = fmt.Fprintf(w, "- [%s] %s (⭐ %s/10, 📍 %s)\n", n.Category, n.Title, n.Score(), n.LocationContext)
		}
	}

	_, _ = fmt.Fprintln(w, st.Response.Pretty())
}

// SetupLog configures lgr and the standard logger. Secrets are masked in the output.
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
