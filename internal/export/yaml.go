package export

import (
	"fmt"
	"io"

	"github.com/blackwell-systems/bibliodash/internal/catalog"
)

// YAML writes s as a YAML document.
func YAML(w io.Writer, s catalog.Snapshot) error {
	data, err := catalog.Marshal(s)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing yaml: %w", err)
	}
	return nil
}
