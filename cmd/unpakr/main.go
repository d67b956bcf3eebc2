package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/quantmind-br/unpakr/internal/app"
	"github.com/quantmind-br/unpakr/internal/config"
	"github.com/quantmind-br/unpakr/internal/utils"
	"github.com/quantmind-br/unpakr/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile    string
	verbose    bool
	noProgress bool
	log        *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "unpakr [file]",
	Short: "Unpack tar and gzip archives, nested ones included",
	Long: `Unpakr extracts tar-family archives (.tar, .tgz, .tbz, .tb2) and gzip
files, then optionally walks the extracted tree and unpacks every archive
found inside, however deeply nested.

Extraction never overwrites an existing directory: colliding destination
names get a numeric suffix ("docs", "docs 1", "docs 2", ...).`,
	Version: version.Short(),
	Args:    cobra.MaximumNArgs(1),
	RunE:    run,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.unpakr/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Destination directory (default: next to the source file)")
	rootCmd.PersistentFlags().BoolP("recursive", "r", true, "Unpack archives nested inside extracted content")
	rootCmd.PersistentFlags().Bool("delete", false, "Delete nested source archives after extraction")
	rootCmd.PersistentFlags().Bool("create-dir", true, "Give each nested tar archive its own directory")
	rootCmd.PersistentFlags().Bool("gz-create-dir", false, "Give each nested gzip file its own directory")
	rootCmd.PersistentFlags().Int("max-depth", config.DefaultMaxDepth, "Max nesting depth for recursive extraction")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.directory", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("extract.recursive", rootCmd.PersistentFlags().Lookup("recursive"))
	_ = viper.BindPFlag("extract.delete", rootCmd.PersistentFlags().Lookup("delete"))
	_ = viper.BindPFlag("extract.create_dir", rootCmd.PersistentFlags().Lookup("create-dir"))
	_ = viper.BindPFlag("extract.gz_create_dir", rootCmd.PersistentFlags().Lookup("gz-create-dir"))
	_ = viper.BindPFlag("extract.max_depth", rootCmd.PersistentFlags().Lookup("max-depth"))

	// Add subcommands
	rootCmd.AddCommand(walkCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	orch, cfg, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	stats, err := orch.ExtractFile(ctx, args[0])
	if err != nil {
		return err
	}

	log.Info().
		Int("extracted", stats.Extracted).
		Int("failed", stats.Failed).
		Bool("recursive", cfg.Extract.Recursive).
		Msg("Done")
	return nil
}

var walkCmd = &cobra.Command{
	Use:   "walk [dir]",
	Short: "Extract every archive found under a directory tree",
	Long: `Walk enumerates every file under the given directory once, extracts each
recognized archive, and recurses into whatever the extraction produced.
Archives created mid-walk are only reached through that recursion, never by
re-scanning the tree.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, _, err := setup()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		stats, err := orch.WalkDir(ctx, args[0])
		if err != nil {
			return err
		}

		log.Info().
			Int("extracted", stats.Extracted).
			Int("failed", stats.Failed).
			Int("skipped", stats.Skipped).
			Msg("Walk done")
		return nil
	},
}

// setup loads configuration and builds the orchestrator shared by the
// root and walk commands.
func setup() (*app.Orchestrator, *config.Config, error) {
	logLevel := "info"
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  "pretty",
		Verbose: verbose,
	})

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	orch, err := app.NewOrchestrator(app.OrchestratorOptions{
		Config:   cfg,
		Verbose:  verbose,
		Progress: !noProgress,
	})
	if err != nil {
		return nil, nil, err
	}
	return orch, cfg, nil
}

// signalContext returns a context cancelled on SIGINT/SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		if log != nil {
			log.Info().Msg("Shutting down gracefully...")
		}
		cancel()
	}()

	return ctx, cancel
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the unpakr configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file to ~/.unpakr/config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := config.ConfigFilePath()

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}

		if err := utils.EnsureDir(config.ConfigDir()); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		data, err := yaml.Marshal(config.Default())
		if err != nil {
			return fmt.Errorf("failed to marshal default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		fmt.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the local environment",
	Long:  "Verifies write permissions and configuration before extracting anything.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Checking environment...")
		allPassed := true

		// Check 1: Write permissions for the current directory
		fmt.Print("  Write permissions: ")
		if checkWritePermissions() {
			fmt.Println("OK")
		} else {
			fmt.Println("FAILED")
			allPassed = false
		}

		// Check 2: Config file
		fmt.Print("  Config file: ")
		if _, err := config.Load(); err != nil {
			fmt.Printf("WARN (%v)\n", err)
		} else {
			fmt.Println("OK")
		}

		// Check 3: Config directory
		fmt.Print("  Config directory: ")
		if utils.IsDir(config.ConfigDir()) {
			fmt.Printf("OK (%s)\n", config.ConfigDir())
		} else {
			fmt.Println("WARN (will be created by 'config init')")
		}

		fmt.Println()
		if allPassed {
			fmt.Println("All critical checks passed!")
		} else {
			fmt.Println("Some checks failed. Please resolve the issues above.")
		}
		return nil
	},
}

// checkWritePermissions checks if we can write to the current directory
func checkWritePermissions() bool {
	tmpFile := ".unpakr_test_write"
	f, err := os.Create(tmpFile)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(tmpFile)
	return true
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
