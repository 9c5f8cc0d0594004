package db

import (
	"fmt"
	"strings"

	dbpkg "github.com/dtnitsch/listing-optimizer/pkg/db"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/listing-optimizer/internal/app"
)

// HistoryAction lists recorded runs, newest first.
func HistoryAction(c *cli.Context) error {
	env, err := app.Load(c)
	if err != nil {
		return err
	}
	database, err := env.OpenHistory()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if id := c.Args().First(); id != "" {
		return showRun(database, id)
	}

	runs, err := database.ListRuns(c.Int("limit"), c.Bool("failed"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-36s %-20s %-9s %-8s %-10s %-40s\n",
		"ID", "Created", "Kind", "Status", "Suggested", "Input")
	fmt.Println(strings.Repeat("-", 128))
	for _, r := range runs {
		status := r.Status
		if r.FailedStage != "" {
			status += "@" + r.FailedStage
		}
		fmt.Printf("%-36s %-20s %-9s %-8s %-10s %-40s\n",
			r.RunID,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Kind,
			status,
			fmt.Sprintf("$%.2f", r.SuggestedPrice),
			truncate(r.Input, 40),
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'lo history <id>' to see details\n")
	return nil
}

func showRun(database *dbpkg.DB, id string) error {
	r, err := database.GetRun(id)
	if err != nil {
		return err
	}
	fmt.Printf("Run:         %s\n", r.RunID)
	fmt.Printf("Created:     %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Kind:        %s\n", r.Kind)
	fmt.Printf("Input:       %s\n", r.Input)
	fmt.Printf("Status:      %s\n", r.Status)
	if r.FailedStage != "" {
		fmt.Printf("Stage:       %s\n", r.FailedStage)
		fmt.Printf("Error:       %s\n", r.ErrorMessage)
		return nil
	}
	fmt.Printf("Title:       %s\n", r.Title)
	fmt.Printf("Price:       $%.2f -> $%.2f (confidence %.0f%%)\n", r.OriginalPrice, r.SuggestedPrice, r.Confidence*100)
	if r.OutputPath != "" {
		fmt.Printf("Output:      %s\n", r.OutputPath)
	}
	fmt.Printf("Duration:    %s\n", r.Duration)
	return nil
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}
