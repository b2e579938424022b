package copyedit

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes the result indented by two spaces, without HTML escaping.
func WriteJSON(w io.Writer, res Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
