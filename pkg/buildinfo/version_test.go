package buildinfo

import (
	"strings"
	"testing"
)

func TestFileFormat(t *testing.T) {
	if got := FileFormat(); got != "1.1" {
		t.Errorf("FileFormat() = %q, want %q", got, "1.1")
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	for _, want := range []string{"{{.Name}} version " + Version, "commit: " + Commit, "file format: 1.1"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() = %q, missing %q", tmpl, want)
		}
	}
}
