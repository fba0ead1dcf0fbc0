package batchlog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestNewCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	if _, err := New(dir); err != nil {
		t.Fatalf("New: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("log dir not created: %v", err)
	}

	// second construction over an existing dir must be a no-op
	if _, err := New(dir); err != nil {
		t.Fatalf("New on existing dir: %v", err)
	}
}

func TestSaveAndOverwrite(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path, err := st.Save(context.Background(), "batch_dev-1_t1.json", []byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("readback: %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("file content = %s", got)
	}

	// same name: last writer wins, no merge
	if _, err := st.Save(context.Background(), "batch_dev-1_t1.json", []byte(`{"b":2}`)); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	got, _ = os.ReadFile(path)
	if string(got) != `{"b":2}` {
		t.Errorf("overwritten content = %s", got)
	}
}
