package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/chronicler/internal/history"
	"github.com/talgya/chronicler/internal/persistence"
	"github.com/talgya/chronicler/internal/world"
)

func newSeedCmd(a *app) *cobra.Command {
	var (
		civs  int
		seed  int64
		years int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate demo civilizations and store their histories",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := world.DefaultGenConfig()
			gen.Seed = a.cfg.DemoSeed
			gen.Civilizations = a.cfg.DemoCivilizations
			if cmd.Flags().Changed("seed") {
				gen.Seed = seed
			}
			if cmd.Flags().Changed("civs") {
				gen.Civilizations = civs
			}
			if years > 0 {
				gen.Years = years
			}

			ctx := cmd.Context()
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			records := world.GenerateHistory(gen)
			n, err := importRecords(ctx, db, records)
			if err != nil {
				return err
			}
			if err := db.SaveMeta("demo_seed", strconv.FormatInt(gen.Seed, 10)); err != nil {
				return fmt.Errorf("save seed: %w", err)
			}

			for _, rec := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-14s founded year %d, %s events\n",
					rec.Civilization.Name, rec.Civilization.ID, rec.Civilization.FoundedYear,
					humanize.Comma(int64(len(rec.Events))))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d civilizations with %s events.\n", len(records), humanize.Comma(int64(n)))
			return nil
		},
	}

	cmd.Flags().IntVar(&civs, "civs", 0, "number of civilizations (default from config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "generation seed (default from config; 0 = random)")
	cmd.Flags().IntVar(&years, "years", 0, "years of history per civilization")
	return cmd
}

// importRecords validates and stores each record, returning the number of
// events written.
func importRecords(ctx context.Context, db *persistence.DB, records []history.Record) (int, error) {
	total := 0
	for _, rec := range records {
		if rec.Civilization.ID == "" {
			return total, fmt.Errorf("civilization %q has no id", rec.Civilization.Name)
		}
		rec.Events = history.Normalize(rec.Events)
		if err := history.Validate(rec.Civilization.Name, rec.Events); err != nil {
			return total, fmt.Errorf("civilization %s: %w", rec.Civilization.ID, err)
		}
		ids, err := db.Import(ctx, rec)
		if err != nil {
			return total, err
		}
		total += len(ids)
	}
	slog.Debug("records imported", "civilizations", len(records), "events", total)
	return total, nil
}
