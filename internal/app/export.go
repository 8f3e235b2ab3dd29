package app

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/bibliodash/internal/catalog"
	"github.com/blackwell-systems/bibliodash/internal/export"
	"github.com/blackwell-systems/bibliodash/internal/util"
)

func newExportCmd() *cobra.Command {
	var (
		format string
		out    string
		title  string
		from   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a static snapshot of the library",
		Long: `Load every collection and write them, with the totals, as a
standalone HTML page or a YAML document.

With --from, the collections come from a YAML snapshot written by an
earlier export instead of the API.`,
		Example: `  bibliodash export --format html --out ~/library.html
  bibliodash export --format yaml > library.yml
  bibliodash export --from library.yml --out ~/library.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot(cmd, from)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			switch format {
			case "html":
				err = export.HTML(&buf, export.Page{
					Title:      title,
					BaseURL:    client.BaseURL(),
					Generated:  time.Now(),
					DateLayout: cfg.UI.DateLayout,
					Snapshot:   snap,
				})
			case "yaml":
				err = export.YAML(&buf, snap)
			default:
				return fmt.Errorf("unknown format %q (want html or yaml)", format)
			}
			if err != nil {
				return err
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			path := util.ExpandHome(out)
			if err := util.WriteFile(path, buf.Bytes()); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			ok("Exported %d books to %s", len(snap.Books), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "html", "Output format: html or yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&title, "title", "Library", "Page title for HTML output")
	cmd.Flags().StringVar(&from, "from", "", "Read a YAML snapshot instead of the API")
	return cmd
}

func snapshot(cmd *cobra.Command, from string) (catalog.Snapshot, error) {
	if from == "" {
		st, err := load(cmd.Context(), catalog.Kinds...)
		if err != nil {
			return catalog.Snapshot{}, err
		}
		return st.Snapshot(), nil
	}
	path := util.ExpandHome(from)
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return catalog.Parse(data)
}
