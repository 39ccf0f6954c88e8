package fsvisit

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	file := Entry{Path: filepath.FromSlash("/data/docs/report.txt"), Kind: KindFile}
	dir := Entry{Path: filepath.FromSlash("/data/docs"), Kind: KindDirectory}

	tests := []struct {
		name     string
		template string
		entry    Entry
		expected string
	}{
		{name: "Path", template: "{}", entry: file, expected: file.Path},
		{name: "Base and dir", template: "{base} in {dir}", entry: file, expected: "report.txt in " + filepath.FromSlash("/data/docs")},
		{name: "Kind", template: "{kind}: {base}", entry: dir, expected: "directory: docs"},
		{name: "Quoted", template: `mv {""} {"base"}.bak`, entry: file, expected: `mv "` + file.Path + `" "report.txt".bak`},
		{name: "Unknown placeholder kept", template: "{size}", entry: file, expected: "{size}"},
		{name: "No placeholders", template: "plain", entry: file, expected: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.template, tt.entry))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "file", KindFile.String())
	assert.Equal(t, "directory", KindDirectory.String())
	assert.Equal(t, "unknown", Kind(7).String())
}
