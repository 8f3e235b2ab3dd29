package app

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/bibliodash/internal/api"
	"github.com/blackwell-systems/bibliodash/internal/config"
	"github.com/blackwell-systems/bibliodash/internal/operations"
	"github.com/blackwell-systems/bibliodash/internal/tui"
	"github.com/blackwell-systems/bibliodash/internal/util"
)

var (
	cfg    *config.Config
	logger *zap.Logger
	client *api.Client
	svc    *operations.Service

	flagNoColor       bool
	flagNoInteractive bool
	flagDebug         bool
	flagLogFile       string
	flagAPIURL        string

	appVersion = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "bibliodash",
	Short: "Dashboard and CLI for a library management API",
	Long: `bibliodash manages the books, authors, users, loans, categories and
reviews of a library through its REST API.

Run 'bibliodash' with no arguments to launch the interactive dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tui.ShouldUseTUI(cmd) {
			return runDashboard(cmd.Context())
		}
		return cmd.Help()
	},
}

// SetVersion records the build version shown by the version command.
func SetVersion(v string) {
	if v != "" {
		appVersion = v
	}
}

// Execute is the entry point called from main.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file path (default: log.file from config)")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "API base URL (default: api.base_url from config)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		// version and completion need neither config nor network.
		switch cmd.Name() {
		case "version", "completion", "help":
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagLogFile != "" {
			cfg.Log.File = util.ExpandHome(flagLogFile)
		}
		if flagDebug {
			cfg.Log.Level = "debug"
		}
		if flagAPIURL != "" {
			cfg.API.BaseURL = flagAPIURL
		}

		logger, err = newFileLogger(cfg.Log.File, cfg.Log.Level)
		if err != nil {
			warn("logging disabled: %v", err)
			logger = zap.NewNop()
		}

		client = api.New(cfg.API.BaseURL, cfg.API.Timeout, logger)
		svc = operations.New(client, logger)
		return nil
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newListCmd(),
		newStatsCmd(),
		newReturnCmd(),
		newDeleteCmd(),
		newExportCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
