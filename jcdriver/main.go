package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jochenvg/go-udev"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/riking/joycon/joycond/config"
	"github.com/riking/joycon/joycond/consoleiface"
	"github.com/riking/joycon/joycond/controller"
	"github.com/riking/joycon/joycond/ctlrmgr"
	"github.com/riking/joycon/joycond/eventloop"
	"github.com/riking/joycon/joycond/hotplug"
	"github.com/riking/joycon/joycond/jcpc"
	"github.com/riking/joycon/joycond/joycon"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML configuration file")
	logLevel := flag.String("log-level", "", "log level, overrides the configuration file")
	console := flag.Bool("console", false, "start the interactive console")
	dryRun := flag.Bool("dry-run", false, "log combined controller events instead of creating uinput devices")
	flag.Parse()

	setupLogging(zerolog.InfoLevel)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *console {
		cfg.Console = true
	}
	if *dryRun {
		cfg.Output = config.OutputConsole
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stop, cfg); err != nil {
		log.Fatal().Err(err).Msg("joycond stopped")
	}
	log.Info().Msg("exiting")
}

func setupLogging(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

func run(ctx context.Context, quit func(), cfg *config.Config) error {
	u := &udev.Udev{}
	loop := eventloop.New()

	factory := &controller.Factory{
		Output:       getOutputFactory(cfg),
		CombinedName: cfg.CombinedName,
	}
	opts := []ctlrmgr.Option{ctlrmgr.WithSettleDelay(cfg.SettleDelay)}
	if cfg.TrustPaired {
		hook, err := getPairedHook()
		if err != nil {
			log.Warn().Err(err).Msg("bluetooth pairing info will not be saved")
		} else if hook != nil {
			opts = append(opts, ctlrmgr.WithPairedHook(hook))
		}
	}
	openPhys := func(devpath, name string) (jcpc.Physical, error) {
		return joycon.Open(u, devpath, name)
	}
	mgr := ctlrmgr.New(loop, openPhys, factory, opts...)

	watcher := hotplug.New(u, loop, mgr)
	go func() {
		if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("device watcher stopped")
			quit()
		}
	}()

	if cfg.Console {
		c := consoleiface.New(loop, mgr, quit)
		go func() {
			if err := c.Run(ctx); err != nil {
				log.Error().Err(err).Msg("console stopped")
			}
			quit()
		}()
	}

	log.Info().Str("output", cfg.Output).Msg("waiting for controllers")
	err := loop.Run(ctx)
	mgr.Close()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
