package io

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/flowtower/pkg/errors"
	"github.com/matzehuels/flowtower/pkg/flow"
)

// Document encodings.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// FormatFromPath returns the document encoding implied by the file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported document extension %q (use .json or .toml)", filepath.Ext(path))
}

// Read decodes a flow document from r in the given format, assigns ids to
// nodes that lack one and validates the result.
//
// The returned document is independent of r. Read does not close r.
func Read(r io.Reader, format string) (*flow.Document, error) {
	var (
		doc *flow.Document
		err error
	)
	switch format {
	case FormatJSON:
		doc, err = flow.DecodeJSON(r)
	case FormatTOML:
		doc, err = flow.DecodeTOML(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", format)
	}
	if err != nil {
		return nil, err
	}

	flow.AssignIDs(doc.Root)
	if err := flow.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Write encodes d to w in the given format.
func Write(d *flow.Document, w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		return flow.EncodeJSON(d, w)
	case FormatTOML:
		return flow.EncodeTOML(d, w)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", format)
}

// ReadDocument reads the flow document at path. The encoding is chosen by
// file extension. A document without a title takes the file name.
func ReadDocument(path string) (*flow.Document, error) {
	if err := errors.ValidateDocumentFilename(filepath.Base(path)); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// WriteDocument writes d to path, choosing the encoding by file extension.
func WriteDocument(d *flow.Document, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(d, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
