package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/flowtower/pkg/errors"
	"github.com/matzehuels/flowtower/pkg/flow"
)

const sampleJSON = `{
  "title": "Welcome",
  "root": {
    "id": "welcome",
    "kind": "sequence",
    "steps": [
      {"id": "greet", "label": "Say hello"},
      {"kind": "loop", "detail": {"label": "each item"}, "body": {"kind": "sequence"}}
    ]
  }
}`

const sampleTOML = `
[root]
id = "welcome"
kind = "sequence"

[[root.steps]]
id = "greet"
label = "Say hello"
`

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"flow.json", FormatJSON, false},
		{"dir/flow.TOML", FormatTOML, false},
		{"flow.yaml", "", true},
		{"flow", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadAssignsIDs(t *testing.T) {
	doc, err := Read(strings.NewReader(sampleJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if doc.Title != "Welcome" {
		t.Errorf("Title = %q, want Welcome", doc.Title)
	}
	flow.Walk(doc.Root, func(n *flow.Node) bool {
		if n.ID == "" {
			t.Errorf("node %v has no id", n.Kind)
		}
		return true
	})
	if got := flow.Count(doc.Root); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
		code   errors.Code
	}{
		{"unknown format", "{}", "yaml", errors.ErrCodeInvalidFormat},
		{"malformed json", `{"root": `, FormatJSON, errors.ErrCodeInvalidDocument},
		{"malformed toml", `[root`, FormatTOML, errors.ErrCodeInvalidDocument},
		{"duplicate ids", `{"root": {"kind": "sequence", "steps": [{"id": "a"}, {"id": "a"}]}}`, FormatJSON, errors.ErrCodeInvalidDocument},
		{"bad id", `{"root": {"id": "a/b"}}`, FormatJSON, errors.ErrCodeInvalidDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.data), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("Read() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestWriteRead(t *testing.T) {
	doc, err := Read(strings.NewReader(sampleJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	for _, format := range []string{FormatJSON, FormatTOML} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(doc, &buf, format); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			back, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if flow.Count(back.Root) != flow.Count(doc.Root) {
				t.Errorf("round trip changed node count: %d != %d", flow.Count(back.Root), flow.Count(doc.Root))
			}
			if back.Root.Steps[1].ID != doc.Root.Steps[1].ID {
				t.Errorf("round trip changed generated id")
			}
		})
	}

	if err := Write(doc, &bytes.Buffer{}, "xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Write(xml) error = %v, want INVALID_FORMAT", err)
	}
}

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "onboarding.toml")
	if err := os.WriteFile(tomlPath, []byte(sampleTOML), 0644); err != nil {
		t.Fatal(err)
	}
	doc, err := ReadDocument(tomlPath)
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	if doc.Title != "onboarding" {
		t.Errorf("Title = %q, want file name", doc.Title)
	}
	if doc.Root.Kind != flow.KindSequence || len(doc.Root.Steps) != 1 {
		t.Errorf("Root = %+v", doc.Root)
	}

	if _, err := ReadDocument(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadDocument(missing) error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := ReadDocument(filepath.Join(dir, "flow.txt")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadDocument(txt) error = %v, want INVALID_FORMAT", err)
	}
	if _, err := ReadDocument(filepath.Join(dir, ".hidden.json")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadDocument(hidden) error = %v, want INVALID_FORMAT", err)
	}
}

func TestWriteDocument(t *testing.T) {
	dir := t.TempDir()
	doc := &flow.Document{Title: "t", Root: flow.Sequence("s", flow.Element("a", "A"))}

	path := filepath.Join(dir, "out.json")
	if err := WriteDocument(doc, path); err != nil {
		t.Fatalf("WriteDocument() error = %v", err)
	}
	back, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	if back.Title != "t" || back.Root.Steps[0].Label != "A" {
		t.Errorf("ReadDocument() = %+v", back)
	}

	if err := WriteDocument(doc, filepath.Join(dir, "out.xml")); err == nil {
		t.Error("WriteDocument(xml) expected error")
	}
}
