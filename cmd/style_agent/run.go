package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/style-transfer/internal/config"
	"github.com/jonathan/style-transfer/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full style transfer pipeline end-to-end",
	Long: `Orchestrates the entire style transfer process: request validation -> document hydration -> style enrichment -> generation -> evaluation.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath  string
	runRequest     string
	runOutput      string
	runModel       string
	runEvaluate    bool
	runAPIKey      string
	runUseBrowser  bool
	runVerbose     bool
	runDatabaseURL string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runRequest, "request", "r", "", "Path to style transfer request JSON file")
	runCommand.Flags().StringVarP(&runOutput, "output", "o", "", "Path to write responses JSON to (optional)")
	runCommand.Flags().StringVarP(&runModel, "model", "m", "", "Model tier for evaluation: lite, standard, advanced")
	runCommand.Flags().BoolVar(&runEvaluate, "evaluate", false, "Run evaluation after generation")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for artifact persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

// runDefaults are the values applied after config-file loading and flag
// overrides, for fields still unset.
func runDefaults() config.Config {
	return config.Config{
		Model: "standard",
	}
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("request") {
		cfg.Request = runRequest
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = runOutput
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = runModel
	}
	if cmd.Flags().Changed("evaluate") {
		cfg.Evaluate = runEvaluate
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(runDefaults())

	// Step 4: Validate required fields
	if cfg.Request == "" {
		return fmt.Errorf("--request must be provided (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 5: API Key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	// Step 6: Database URL handling (optional)
	cfg.DatabaseURL = resolveDatabaseURL(cfg.DatabaseURL)

	opts := pipeline.RunOptions{
		RequestPath: cfg.Request,
		OutputPath:  cfg.Output,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Evaluate:    cfg.Evaluate,
		UseBrowser:  cfg.UseBrowser,
		Verbose:     cfg.Verbose,
		DatabaseURL: cfg.DatabaseURL,
	}

	_, err := pipeline.RunPipeline(ctx, opts)
	return err
}
