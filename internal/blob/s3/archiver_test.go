package s3blob

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

type fakeWriter struct {
	path        string
	contentType string
	data        []byte
}

func (f *fakeWriter) Put(ctx context.Context, path string, data []byte, contentType string) error {
	f.path = path
	f.contentType = contentType
	f.data = data
	return nil
}

func TestArchiveScan(t *testing.T) {
	w := &fakeWriter{}
	a := NewSnapshotArchiver(w)
	at := time.Date(2025, 9, 25, 18, 30, 0, 0, time.UTC)

	opps := []domain.Opportunity{
		{ID: "a", Title: "Ravens vs Packers"},
		{ID: "b", Title: "Chiefs vs Bills"},
	}
	path, err := a.ArchiveScan(context.Background(), at, opps)
	if err != nil {
		t.Fatalf("ArchiveScan: %v", err)
	}
	if !strings.HasPrefix(path, "archive/scans/2025-09-25/scan-") || !strings.HasSuffix(path, ".jsonl") {
		t.Errorf("path = %q", path)
	}
	if w.contentType != "application/x-ndjson" {
		t.Errorf("content type = %q", w.contentType)
	}
	lines := strings.Split(strings.TrimRight(string(w.data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want one per opportunity", len(lines))
	}
	if !strings.Contains(lines[1], "Chiefs vs Bills") {
		t.Errorf("line 2 = %q", lines[1])
	}
}

func TestArchiveScanSkipsEmpty(t *testing.T) {
	w := &fakeWriter{}
	a := NewSnapshotArchiver(w)

	path, err := a.ArchiveScan(context.Background(), time.Now(), nil)
	if err != nil {
		t.Fatalf("ArchiveScan: %v", err)
	}
	if path != "" || w.path != "" {
		t.Error("empty scan should not upload")
	}
}

func TestWithScheme(t *testing.T) {
	tests := []struct {
		endpoint string
		useSSL   bool
		want     string
	}{
		{"https://e2.example.com", false, "https://e2.example.com"},
		{"minio.internal:9000", true, "https://minio.internal:9000"},
		{"minio.internal:9000", false, "http://minio.internal:9000"},
	}
	for _, tt := range tests {
		if got := withScheme(tt.endpoint, tt.useSSL); got != tt.want {
			t.Errorf("withScheme(%q, %v) = %q, want %q", tt.endpoint, tt.useSSL, got, tt.want)
		}
	}
}
