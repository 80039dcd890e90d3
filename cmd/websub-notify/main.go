package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/websub-notify/pkg/config"
	"github.com/umputun/websub-notify/pkg/dedup"
	"github.com/umputun/websub-notify/pkg/domain"
	"github.com/umputun/websub-notify/pkg/feed"
	"github.com/umputun/websub-notify/pkg/notify"
	"github.com/umputun/websub-notify/pkg/repository"
	"github.com/umputun/websub-notify/pkg/websub"
	"github.com/umputun/websub-notify/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`

	// Common options
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

	SetupLog(opts.Debug)

	log.Printf("[INFO] starting websub-notify version %s", revision)

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

	if err != nil && ctx.Err() == nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires all components and blocks until the context is cancelled or the
// server fails
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// re-setup logging with secrets masked
	SetupLog(opts.Debug, cfg.Discord.Token, cfg.WebSub.Secret)

	// announcement history is optional, enabled by configuring a DSN
	var store server.AnnouncementStore
	if cfg.Database.DSN != "" {
		db, dbErr := repository.Open(ctx, repository.Config{
			DSN:             cfg.Database.DSN,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		})
		if dbErr != nil {
			return fmt.Errorf("failed to open database: %w", dbErr)
		}
		defer db.Close()
		store = repository.NewAnnouncementRepository(db)
	}

	notifier := notify.NewDiscord(notify.DiscordConfig{
		Token:     cfg.Discord.Token,
		ChannelID: cfg.Discord.ChannelID,
		Timeout:   cfg.Discord.Timeout,
	})

	srv := server.New(cfg, feed.NewParser(), dedup.NewStore(), notifier, store, revision, opts.Debug)

	manager := websub.NewManager(websub.Config{
		HubURL: cfg.WebSub.HubURL,
		Subscription: domain.Subscription{
			Topic:    cfg.TopicURL(),
			Callback: cfg.CallbackURL(),
			Secret:   cfg.WebSub.Secret,
		},
		Interval: cfg.WebSub.RenewalInterval,
		Timeout:  cfg.WebSub.Timeout,
	})

	// the server and the renewal loop run side by side, neither blocks the
	// other
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error { return srv.Run(gctx) })
	group.Go(func() error { manager.Run(gctx); return nil })

	return group.Wait()
}

// SetupLog initializes logging with optional debug mode and secrets masking
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = append(logOpts, lgr.Debug, lgr.CallerFile, lgr.CallerFunc)
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

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
