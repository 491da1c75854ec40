package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/docsearch/internal/config"
	"github.com/mvp-joe/docsearch/internal/embed"
	"github.com/mvp-joe/docsearch/internal/manager"
)

var (
	rootDir string
	verbose bool

	mgr *manager.Manager
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "docsearch",
	Short: "docsearch - local documentation retrieval service",
	Long: `docsearch indexes a registry of local documentation collections
and answers search queries with ranked passage results.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		return setupManager()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It is called by main.main() exactly once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "project root containing .docsearch/")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

func initLogging() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(os.Stderr).With().Timestamp().Logger()
}

func setupManager() error {
	initLogging()

	loaded, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	cfg = loaded

	provider, err := embed.NewProvider(embed.Config{
		Provider: cfg.Embedding.Provider,
		Endpoint: cfg.Embedding.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("construct embedding provider: %w", err)
	}

	m, err := manager.New(cfg, provider)
	if err != nil {
		return fmt.Errorf("construct index manager: %w", err)
	}
	mgr = m

	return nil
}
