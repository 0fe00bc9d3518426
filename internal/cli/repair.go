package cli

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/mrlokans/sleeptracker/internal/database"
)

// RepairCommand deletes tag links and comments whose sleep or tag is gone.
type RepairCommand struct {
	DatabasePath string
	Out          io.Writer
	Log          *zap.Logger
}

func NewRepairCommand(dbPath string, out io.Writer, log *zap.Logger) *RepairCommand {
	return &RepairCommand{DatabasePath: dbPath, Out: out, Log: log}
}

func (cmd *RepairCommand) Run(ctx context.Context) error {
	exists, err := fileExists(cmd.DatabasePath)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("database not found: %s", cmd.DatabasePath)
	}

	db, err := database.NewDatabase(ctx, cmd.DatabasePath, database.Options{}, cmd.Log)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	report, err := db.RepairDanglingRows(ctx)
	if err != nil {
		return fmt.Errorf("repair failed: %w", err)
	}

	fmt.Fprintln(cmd.Out, "Dangling row repair")
	fmt.Fprintln(cmd.Out, "===================")
	fmt.Fprintf(cmd.Out, "  Tag links removed: %d\n", report.SleepTags)
	fmt.Fprintf(cmd.Out, "  Comments removed:  %d\n", report.Comments)
	if report.Total() == 0 {
		fmt.Fprintln(cmd.Out, "Nothing to repair")
	}
	return nil
}
