package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/talgya/chronicler/internal/chronicle"
)

var formatExt = map[string]string{
	"text": ".txt",
	"json": ".json",
	"yaml": ".yaml",
}

func newCompileCmd(a *app) *cobra.Command {
	var (
		all     bool
		format  string
		outDir  string
		archive bool
	)

	cmd := &cobra.Command{
		Use:   "compile [civID...]",
		Short: "Compile chronicles for one or more civilizations",
		Example: `  chronicler compile valdoria
  chronicler compile --all --format json --out chronicles/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := formatExt[format]; !ok {
				return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
			}
			if !all && len(args) == 0 {
				return fmt.Errorf("name at least one civilization or pass --all")
			}

			ctx := cmd.Context()
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ids := args
			if all {
				civs, err := db.Civilizations(ctx)
				if err != nil {
					return fmt.Errorf("list civilizations: %w", err)
				}
				ids = ids[:0:0]
				for _, c := range civs {
					ids = append(ids, c.ID)
				}
			}
			if len(ids) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No civilizations stored. Try `chronicler seed` first.")
				return nil
			}

			results, err := a.newService(db, nil).CompileAll(ctx, ids)
			if err != nil {
				return err
			}

			for _, cc := range results {
				if archive {
					if err := db.SaveChronicle(ctx, cc); err != nil {
						return err
					}
				}
				if err := emit(cmd.OutOrStdout(), outDir, format, cc); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s entries in %s chapters\n",
					cc.CivilizationName, humanize.Comma(int64(cc.TotalEntries)), humanize.Comma(int64(len(cc.Chapters))))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "compile every stored civilization")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write one file per civilization into this directory instead of stdout")
	cmd.Flags().BoolVar(&archive, "archive", false, "archive compiled chronicles in the database")
	return cmd
}

// emit writes a chronicle to stdout, or to <outDir>/<civID><ext> when outDir is set.
func emit(stdout io.Writer, outDir, format string, cc *chronicle.CompiledChronicle) (err error) {
	w := stdout
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		path := filepath.Join(outDir, cc.CivilizationID+formatExt[format])
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close %s: %w", path, closeErr)
			}
		}()
		w = f
		slog.Debug("writing chronicle", "civ", cc.CivilizationID, "path", path)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		_, err := io.WriteString(w, cc.Text+"\n")
		return err
	}
}
