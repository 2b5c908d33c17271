package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/style-transfer/internal/db"
	"github.com/jonathan/style-transfer/internal/observability"
)

var runsCommand = &cobra.Command{
	Use:   "runs",
	Short: "Inspect and manage stored pipeline runs",
}

var runsListCommand = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE:  runsListCmd,
}

var runsShowCommand = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a stored run with its artifacts",
	Args:  cobra.ExactArgs(1),
	RunE:  runsShowCmd,
}

var runsDeleteCommand = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a run and all its artifacts",
	Args:  cobra.ExactArgs(1),
	RunE:  runsDeleteCmd,
}

var (
	runsDBURL string
	runsLimit int
)

func init() {
	runsCommand.PersistentFlags().StringVar(&runsDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	runsListCommand.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to list")

	runsCommand.AddCommand(runsListCommand)
	runsCommand.AddCommand(runsShowCommand)
	runsCommand.AddCommand(runsDeleteCommand)
	rootCmd.AddCommand(runsCommand)
}

// resolveDatabaseURL falls back to the DATABASE_URL env var when the flag is
// unset.
func resolveDatabaseURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("DATABASE_URL")
}

func connectRunsDB(ctx context.Context) (*db.DB, error) {
	dbURL := resolveDatabaseURL(runsDBURL)
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}
	return db.Connect(ctx, dbURL)
}

func runsListCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	database, err := connectRunsDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(ctx, runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs found.")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %-10s  %s\n", "ID", "STYLE", "STATUS", "CREATED")
	for _, run := range runs {
		fmt.Printf("%-36s  %-20s  %-10s  %s\n",
			run.ID, run.StyleName, run.Status, run.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

func runsShowCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	runID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid run ID format: %w", err)
	}

	database, err := connectRunsDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	run, err := database.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run not found: %s", runID)
	}

	fmt.Printf("Run:     %s\n", run.ID)
	fmt.Printf("Style:   %s\n", run.StyleName)
	fmt.Printf("Focus:   %s\n", run.Focus)
	fmt.Printf("Status:  %s\n", run.Status)
	fmt.Printf("Created: %s\n", run.CreatedAt.Format(time.RFC3339))
	if run.CompletedAt != nil {
		fmt.Printf("Completed: %s\n", run.CompletedAt.Format(time.RFC3339))
	}

	printer := observability.NewPrinter(os.Stdout)

	styles, err := database.GetEnrichedStylesByRunID(ctx, runID)
	if err != nil {
		return err
	}
	if len(styles) > 0 {
		printer.PrintEnrichedStyles(styles)
	}

	rendered, err := database.GetTextArtifact(ctx, runID, db.StepRenderedText)
	if err != nil {
		return err
	}
	if rendered != "" {
		fmt.Printf("\n%s\n", rendered)
	}

	scores, err := database.GetEvaluationByRunID(ctx, runID)
	if err != nil {
		return err
	}
	if len(scores) > 0 {
		responses, err := database.GetResponsesByRunID(ctx, runID)
		if err != nil {
			return err
		}
		for i, results := range scores {
			schemaName := ""
			if i < len(responses) && responses[i].OutputSchema != nil {
				schemaName = responses[i].OutputSchema.Name
			}
			printer.PrintEvaluation(schemaName, results)
		}
	}
	return nil
}

func runsDeleteCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	runID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid run ID format: %w", err)
	}

	database, err := connectRunsDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.DeleteRun(ctx, runID); err != nil {
		return err
	}
	fmt.Printf("Deleted run %s\n", runID)
	return nil
}
