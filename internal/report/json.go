package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/verte-zerg/readscore/internal/model"
)

// WriteJSON writes the report indented by two spaces, without HTML escaping.
func WriteJSON(w io.Writer, rep model.Report) error {
	if rep.Sections == nil {
		rep.Sections = map[string]model.Metrics{}
	}
	if rep.Flags == nil {
		rep.Flags = []model.Flag{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteError writes a single-line {"error": "..."} payload.
func WriteError(w io.Writer, message string) error {
	var encoded bytes.Buffer
	enc := json.NewEncoder(&encoded)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(message); err != nil {
		return fmt.Errorf("failed to encode error: %w", err)
	}
	if _, err := fmt.Fprintf(w, "{\"error\": %s}\n", bytes.TrimRight(encoded.Bytes(), "\n")); err != nil {
		return fmt.Errorf("failed to write error: %w", err)
	}
	return nil
}
