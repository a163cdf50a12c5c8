package exportsvc

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/prepclass/core/material"
)

func TestToPDF(t *testing.T) {
	text := "Overview:\nBinary trees are everywhere.\n# Key Concepts\nNodes, edges, café ☕"

	data, err := ToPDF(text)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"), "output is not a PDF")
	assert.NotEmpty(t, data)
}

func TestToMarkdown(t *testing.T) {
	// lossless, UTF-8 kept intact
	text := "# Résumé\ncafé ☕"
	assert.Equal(t, []byte(text), ToMarkdown(text))
}

func TestHistoryJSON(t *testing.T) {
	history := map[string]material.Record{
		"Graphs": {
			Topic:      "Graphs",
			Difficulty: material.Beginner,
			Timestamp:  "2026-08-28 10:30",
			ContentSet: material.ContentSet{PreClass: "pre", InClass: "in", PostClass: "post"},
		},
	}

	data, err := HistoryJSON(history)
	require.NoError(t, err)

	var decoded map[string]material.Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, history["Graphs"].Topic, decoded["Graphs"].Topic)
	assert.Equal(t, history["Graphs"].PreClass, decoded["Graphs"].PreClass)
}

func Test_isHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Overview:", true},
		{"  Overview:  ", true},
		{"# Key Concepts", true},
		{"### Sub-section", true},
		{"Just a paragraph.", false},
		{"colon: in the middle", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isHeading(tt.line), tt.line)
	}
}

func Test_toLatin1(t *testing.T) {
	assert.Equal(t, "cafe?", toLatin1("cafe☕"))
	assert.Equal(t, "café", toLatin1("café")) // é is Latin-1
	assert.Equal(t, "plain", toLatin1("plain"))
}
