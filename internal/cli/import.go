package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/talgya/chronicler/internal/history"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>...",
		Short: "Import civilization histories from YAML or JSON files",
		Long: `Import civilization histories. Each file holds either one record or a
list of records, where a record is:

  civilization: {id, name, founded_year, description}
  events: [{id, year, title, description, type, category, significance, ...}]

Events without an id are assigned one. Type and category are matched
case-insensitively.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var records []history.Record
			for _, path := range args {
				recs, err := readRecords(path)
				if err != nil {
					return err
				}
				records = append(records, recs...)
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := importRecords(cmd.Context(), db, records)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d civilizations with %s events.\n", len(records), humanize.Comma(int64(n)))
			return nil
		},
	}
}

// readRecords decodes a file holding one record or a list of records.
// JSON is chosen by extension; everything else is read as YAML, which also
// accepts JSON documents.
func readRecords(path string) ([]history.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	unmarshal := yaml.Unmarshal
	if strings.EqualFold(filepath.Ext(path), ".json") {
		unmarshal = json.Unmarshal
	}

	var recs []history.Record
	if err := unmarshal(data, &recs); err == nil {
		return recs, nil
	}

	var rec history.Record
	if err := unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return []history.Record{rec}, nil
}
