package s3blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// SnapshotArchiver uploads one JSONL file per completed scan, partitioned by
// day. Archives are append-only history for offline analysis; nothing on the
// scan path reads them back.
type SnapshotArchiver struct {
	writer domain.BlobWriter
}

// NewSnapshotArchiver creates a SnapshotArchiver over the given writer.
func NewSnapshotArchiver(writer domain.BlobWriter) *SnapshotArchiver {
	return &SnapshotArchiver{writer: writer}
}

// ArchiveScan serializes a scan's opportunity set to JSONL and uploads it at
// archive/scans/YYYY-MM-DD/scan-{unix}.jsonl. Empty scans are skipped.
func (a *SnapshotArchiver) ArchiveScan(ctx context.Context, at time.Time, opps []domain.Opportunity) (string, error) {
	if len(opps) == 0 {
		return "", nil
	}

	buf, err := marshalJSONL(opps)
	if err != nil {
		return "", fmt.Errorf("s3blob: archive scan marshal: %w", err)
	}

	path := snapshotPath(at)
	if err := a.writer.Put(ctx, path, buf, "application/x-ndjson"); err != nil {
		return "", fmt.Errorf("s3blob: archive scan upload: %w", err)
	}
	return path, nil
}

func snapshotPath(at time.Time) string {
	return fmt.Sprintf("archive/scans/%s/scan-%d.jsonl", at.UTC().Format("2006-01-02"), at.Unix())
}

// marshalJSONL serialises a slice of values as newline-delimited JSON, one
// compact line per element.
func marshalJSONL[T any](records []T) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("jsonl encode record %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}
