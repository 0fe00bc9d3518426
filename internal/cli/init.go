package cli

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/mrlokans/sleeptracker/internal/database"
)

// InitCommand creates the sleep store, or reports on an existing one.
type InitCommand struct {
	DatabasePath string
	Out          io.Writer
	Log          *zap.Logger
}

func NewInitCommand(dbPath string, out io.Writer, log *zap.Logger) *InitCommand {
	return &InitCommand{DatabasePath: dbPath, Out: out, Log: log}
}

func (cmd *InitCommand) Run(ctx context.Context) error {
	db, err := database.NewDatabase(ctx, cmd.DatabasePath, database.Options{}, cmd.Log)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if db.Created() {
		fmt.Fprintf(cmd.Out, "Created sleep store at %s (schema version %d)\n", db.Path(), database.SchemaVersion)
	} else {
		fmt.Fprintf(cmd.Out, "Sleep store at %s is already initialized (schema version %d)\n", db.Path(), database.SchemaVersion)
	}

	if !db.ForeignKeysEnabled() {
		fmt.Fprintln(cmd.Out, "Warning: foreign keys are not enforced by this SQLite build")
	}
	return nil
}
