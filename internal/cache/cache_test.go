package cache

import (
	"bytes"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestRead_Absent(t *testing.T) {
	c := openTemp(t)

	data, ok, err := c.Read("missing")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if ok {
		t.Errorf("expected absent, got %q", data)
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	c := openTemp(t)

	blob := []byte(`{"tasks":[{"id":"1","description":"Buy milk","completed":false}]}`)
	if err := c.Write(SnapshotKey, blob); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, ok, err := c.Read(SnapshotKey)
	if err != nil || !ok {
		t.Fatalf("Read failed: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, blob) {
		t.Errorf("round-trip mismatch: got %q, want %q", got, blob)
	}
}

func TestWrite_Replaces(t *testing.T) {
	c := openTemp(t)

	if err := c.Write(SnapshotKey, []byte("first")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := c.Write(SnapshotKey, []byte("second")); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	got, ok, err := c.Read(SnapshotKey)
	if err != nil || !ok {
		t.Fatalf("Read failed: ok=%v err=%v", ok, err)
	}
	if string(got) != "second" {
		t.Errorf("expected latest value, got %q", got)
	}
}

func TestReopen_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := c.Write(SnapshotKey, []byte("durable")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	c2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer c2.Close()

	got, ok, err := c2.Read(SnapshotKey)
	if err != nil || !ok {
		t.Fatalf("Read after reopen failed: ok=%v err=%v", ok, err)
	}
	if string(got) != "durable" {
		t.Errorf("expected persisted value, got %q", got)
	}
}
