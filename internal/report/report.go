// Package report assembles readability reports for markdown files.
package report

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/readscore/internal/flags"
	"github.com/verte-zerg/readscore/internal/lexical"
	"github.com/verte-zerg/readscore/internal/markup"
	"github.com/verte-zerg/readscore/internal/model"
	"github.com/verte-zerg/readscore/internal/sections"
	"github.com/verte-zerg/readscore/internal/stats"
)

// MinSectionWords is the plain word count a section needs to be scored.
const MinSectionWords = 10

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ReadDocument reads a UTF-8 text file and translates CRLF and CR line
// endings to LF. The file is closed before returning.
func ReadDocument(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only document.
			_ = cerr
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("failed to decode %s: invalid UTF-8", path)
	}
	return newlineReplacer.Replace(string(data)), nil
}

// Build analyses raw markdown. The path is only recorded in the report.
func Build(path, raw string) model.Report {
	scored := map[string]model.Metrics{}
	for heading, content := range sections.Split(raw) {
		clean := markup.Normalize(content)
		if len(lexical.Words(clean)) < MinSectionWords {
			continue
		}
		scored[heading] = stats.Compute(clean)
	}

	return model.Report{
		File:     path,
		Title:    markup.Title(raw),
		Overall:  stats.Compute(markup.Normalize(raw)),
		Sections: scored,
		Flags:    flags.Detect(raw),
	}
}

// AnalyzeFile reads and analyses the markdown file at path.
func AnalyzeFile(path string) (model.Report, error) {
	raw, err := ReadDocument(path)
	if err != nil {
		return model.Report{}, err
	}
	return Build(path, raw), nil
}

// ErrorMessage is the text reported for a failed analysis of path.
func ErrorMessage(path string, err error) string {
	if errors.Is(err, fs.ErrNotExist) {
		return "File not found: " + path
	}
	return err.Error()
}
