// Package exportsvc renders generated materials for download: a simple
// paginated PDF, raw markdown bytes, and a JSON dump of the history mapping.
package exportsvc

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/trezcool/prepclass/core/material"
)

const (
	bodyFontSize    = 12
	headingFontSize = 14
	lineHeight      = 8
	headingHeight   = 10
)

// ToPDF renders plain text as a paginated PDF. A line whose trimmed form ends
// with a colon or starts with a hash mark is treated as a heading and set in
// bold; all other lines wrap as body text. Characters outside Latin-1 are
// replaced with "?" — this is a lossy, best-effort export.
func ToPDF(text string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", bodyFontSize)

	for _, line := range strings.Split(text, "\n") {
		line = toLatin1(line)
		if isHeading(line) {
			pdf.SetFont("Arial", "B", headingFontSize)
			pdf.CellFormat(0, headingHeight, line, "", 1, "", false, 0, "")
			pdf.SetFont("Arial", "", bodyFontSize)
		} else {
			pdf.MultiCell(0, lineHeight, line, "", "", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "writing PDF")
	}
	return buf.Bytes(), nil
}

// ToMarkdown is the lossless identity encode.
func ToMarkdown(text string) []byte {
	return []byte(text)
}

// HistoryJSON serializes the full topic-keyed history mapping.
func HistoryJSON(history map[string]material.Record) ([]byte, error) {
	data, err := json.MarshalIndent(history, "", "  ")
	return data, errors.Wrap(err, "marshalling history")
}

func isHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasSuffix(trimmed, ":") || strings.HasPrefix(trimmed, "#")
}

// toLatin1 replaces any rune outside the Latin-1 range with "?".
func toLatin1(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r > 0xFF {
			b.WriteByte('?')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
