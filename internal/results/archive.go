package results

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path"

	"github.com/mind-engage/mindengage-practice/internal/session"
	"github.com/mind-engage/mindengage-practice/internal/storage"
)

// ArchiveSink writes each result's Report as a JSON document to a BlobStore.
type ArchiveSink struct {
	blobs  storage.BlobStore
	prefix string
}

func NewArchiveSink(blobs storage.BlobStore, prefix string) *ArchiveSink {
	if prefix == "" {
		prefix = "results"
	}
	return &ArchiveSink{blobs: blobs, prefix: prefix}
}

// Key is where the report for r is stored.
func (a *ArchiveSink) Key(r session.Result) string {
	return path.Join(a.prefix, r.TestID, r.SessionID+".json")
}

func (a *ArchiveSink) Consume(ctx context.Context, r session.Result) error {
	b, err := json.MarshalIndent(NewReport(r), "", "  ")
	if err != nil {
		return err
	}
	_, err = a.blobs.Put(ctx, a.Key(r), bytes.NewReader(b))
	return err
}

// Open reads back the archived report for r.
func (a *ArchiveSink) Open(ctx context.Context, r session.Result) (io.ReadCloser, error) {
	return a.blobs.Get(ctx, a.Key(r))
}
