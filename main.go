package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/steplock/internal/commands"
	"github.com/hay-kot/steplock/internal/core/config"
	"github.com/hay-kot/steplock/internal/core/eventbus"
	"github.com/hay-kot/steplock/internal/core/styles"
	"github.com/hay-kot/steplock/internal/core/taskgen"
	"github.com/hay-kot/steplock/internal/data/stores"
	"github.com/hay-kot/steplock/internal/steplock"
	"github.com/hay-kot/steplock/internal/store/jsonfile"
	"github.com/hay-kot/steplock/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		app       = &steplock.App{}
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "steplock",
		Usage:     "A checklist where items unlock as their prerequisites complete",
		UsageText: "steplock [global options] command [command options]",
		Description: `Steplock manages dependency-gated checklists: items can name other items
as prerequisites, and stay hidden until every prerequisite is checked off.

Run 'steplock' with no arguments to open the interactive runner.
Run 'steplock new' to add items, 'steplock doc' for the dependencies guide.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("STEPLOCK_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/steplock.log)",
				Sources:     cli.EnvVars("STEPLOCK_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("STEPLOCK_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("STEPLOCK_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; TUI and stdout output must stay clean.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "steplock.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			cfg.DataDir = flags.DataDir
			flags.Config = cfg

			// Apply configured theme (validation ensures the name is valid)
			palette, _ := styles.GetPalette(cfg.Theme)
			styles.SetTheme(palette)

			snapshotPath := cfg.Checklist.File
			if snapshotPath == "" {
				snapshotPath = filepath.Join(cfg.DataDir, "checklist.json")
			}
			port := jsonfile.NewSnapshotStore(snapshotPath)

			bus := eventbus.New()
			eventbus.RegisterDebugLogger(bus, log.Logger)

			items, err := stores.NewItemStore(port, bus, log.With().Str("component", "itemstore").Logger())
			if err != nil {
				return ctx, fmt.Errorf("open checklist: %w", err)
			}

			// The generator is optional; without a key, gen commands explain
			// how to enable it and everything else works normally.
			var gen taskgen.Generator
			if key := cfg.Generator.APIKey(); key != "" {
				gen = taskgen.NewClient(taskgen.ClientOptions{
					BaseURL:    cfg.Generator.BaseURL,
					Model:      cfg.Generator.Model,
					APIKey:     key,
					Timeout:    cfg.Generator.Timeout(),
					MaxRetries: cfg.Generator.MaxRetries,
				}, log.With().Str("component", "taskgen").Logger())
			}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*app = *steplock.NewApp(items, gen, cfg, bus)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, app)

	root = commands.NewNewCmd(flags, app).Register(root)
	root = commands.NewLsCmd(flags, app).Register(root)
	root = commands.NewDoneCmd(flags, app).Register(root)
	root = commands.NewEditCmd(flags, app).Register(root)
	root = commands.NewMoveCmd(flags, app).Register(root)
	root = commands.NewRmCmd(flags, app).Register(root)
	root = commands.NewResetCmd(flags, app).Register(root)
	root = commands.NewGenCmd(flags, app).Register(root)
	root = commands.NewExportCmd(flags, app).Register(root)
	root = commands.NewImportCmd(flags, app).Register(root)
	root = commands.NewDocCmd(flags).Register(root)

	// Open the runner when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'steplock --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Println()
		fmt.Println(err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
