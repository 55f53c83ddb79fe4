package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"textmerger/pkg/config"
	"textmerger/pkg/extract"
	"textmerger/pkg/ignore"
	"textmerger/pkg/ingest"
	"textmerger/pkg/logging"
	"textmerger/pkg/version"
)

// configEnv overrides the default configuration path when --config is not given.
const configEnv = "TEXTMERGER_CONFIG"

// app carries the state shared by all commands of one invocation.
type app struct {
	cfgFile     string
	debug       bool
	workers     int
	ignoreFiles []string

	logger *zap.Logger
	cfg    *config.Config
}

// RootCmd is the base command when called without any subcommands.
var RootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "textmerger",
		Short: "textmerger merges files and folders into one text document",
		Long: `textmerger reads files and directories, extracts readable text from source code,
Jupyter notebooks and PDFs, and merges everything into a single document.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", config.DefaultPath, "Configuration file (env "+configEnv+")")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging")
	flags.IntVarP(&a.workers, "workers", "w", 0, "Number of concurrent workers (0 = number of CPUs)")
	flags.StringArrayVar(&a.ignoreFiles, "ignore-file", nil, "Additional gitignore-style file with exclude patterns (repeatable)")

	root.AddCommand(
		newMergeCmd(a),
		newLoadCmd(a),
		newFormatsCmd(),
		newVersionCmd(),
	)
	return root
}

// setup builds the logger and loads the configuration before any command runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(a.debug, version.AppName, version.Version)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	currentLogger = logger

	path := a.cfgFile
	if !cmd.Flags().Changed("config") {
		if env := os.Getenv(configEnv); env != "" {
			path = env
		}
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = a.workers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	a.cfg = cfg

	a.logger.Debug("Loaded configuration",
		zap.String("path", path),
		zap.Int("workers", cfg.Workers),
		zap.Strings("exclude", cfg.Exclude))
	return nil
}

// ingestOptions translates the configuration into ingestion options.
func (a *app) ingestOptions() (ingest.Options, error) {
	matcher := ignore.New(a.logger, a.cfg.Exclude...)
	for _, path := range a.ignoreFiles {
		if err := matcher.CompileFile(path); err != nil {
			return ingest.Options{}, fmt.Errorf("failed to load ignore file: %w", err)
		}
	}

	return ingest.Options{
		Workers: a.cfg.Workers,
		Matcher: matcher,
		Logger:  a.logger,
		Extract: extract.Options{
			HideNotebookOutputs: !a.cfg.NotebookOutputs,
			DisablePDF:          !a.cfg.PDF,
			DetectBinary:        a.cfg.DetectBinary,
			MaxFileSizeKB:       a.cfg.MaxFileSizeKB,
		},
	}, nil
}

// currentLogger is the logger built for the running command, for main to sync.
var currentLogger = zap.NewNop()

// Logger returns the logger of the last executed command.
func Logger() *zap.Logger {
	return currentLogger
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
