package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveOpenDeleteRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key, size, mimeType, err := store.Save(ctx, "user-1", "tabular_finance_3samples.json", strings.NewReader(`[{"a":1}]`))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len(`[{"a":1}]`)) {
		t.Fatalf("expected size %d, got %d", len(`[{"a":1}]`), size)
	}
	if mimeType == "" {
		t.Fatalf("expected a sniffed mime type")
	}

	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	content, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(content, []byte(`[{"a":1}]`)) {
		t.Fatalf("content mismatch: %s", content)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, key); err == nil {
		t.Fatalf("expected error opening deleted object")
	}

	// Deleting again is a no-op.
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("repeat Delete: %v", err)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())

	if _, err := store.Open(context.Background(), "../../etc/passwd"); err == nil {
		t.Fatalf("expected error for traversal key")
	}
}

func TestKeysDifferPerSave(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key1, _, _, err := store.Save(ctx, "user-1", "same.json", strings.NewReader("one"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	key2, _, _, err := store.Save(ctx, "user-1", "same.json", strings.NewReader("two"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if key1 == key2 {
		t.Fatalf("expected distinct keys for repeated saves")
	}
}
