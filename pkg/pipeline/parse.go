package pipeline

import (
	"bytes"

	"github.com/matzehuels/flowtower/pkg/cache"
	"github.com/matzehuels/flowtower/pkg/flow"
	flowio "github.com/matzehuels/flowtower/pkg/io"
)

// Parse reads the flow document named by opts. The title override, if set,
// replaces the document's title.
func Parse(opts Options) (*flow.Document, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}

	var (
		doc *flow.Document
		err error
	)
	if opts.Path != "" {
		doc, err = flowio.ReadDocument(opts.Path)
	} else {
		doc, err = flowio.Read(bytes.NewReader(opts.Data), opts.Format)
	}
	if err != nil {
		return nil, err
	}
	if opts.Title != "" {
		doc.Title = opts.Title
	}
	return doc, nil
}

// DocumentHash returns the content hash of the canonical JSON encoding of
// doc. Two documents that differ only in formatting or encoding hash alike.
func DocumentHash(doc *flow.Document) (string, error) {
	data, err := flow.MarshalJSON(doc)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
