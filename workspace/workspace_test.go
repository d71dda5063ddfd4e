package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestAcquireRemovesStaleState(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tmp")
	if err := os.MkdirAll(filepath.Join(dir, "old"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "old", "hello.ll"), []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	ws, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer ws.Release()

	entries, err := os.ReadDir(ws.Dir)
	if err != nil {
		t.Fatalf("reading workspace: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("fresh workspace has %d entries, want 0", len(entries))
	}
}

func TestAcquireCreatesParents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "install", "tmp")

	ws, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer ws.Release()

	if !exists(dir) {
		t.Error("workspace directory was not created")
	}
	if got, want := ws.Path("a.out.ll"), filepath.Join(dir, "a.out.ll"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tmp")

	ws, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if err := os.WriteFile(ws.Path("hello.s"), []byte("ret"), 0644); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := ws.Release(); err != nil {
			t.Fatalf("Release() #%d error = %v", i+1, err)
		}
	}

	if exists(dir) {
		t.Error("workspace still exists after Release")
	}
	if err := Release(dir); err != nil {
		t.Errorf("Release() on a missing directory = %v", err)
	}
}

func TestAcquireSerializesRuns(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tmp")

	first, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	acquired := make(chan *Workspace)
	go func() {
		second, err := Acquire(dir)
		if err != nil {
			t.Errorf("second Acquire() error = %v", err)
		}
		acquired <- second
	}()

	select {
	case <-acquired:
		t.Fatal("second run acquired the workspace while the first still held it")
	case <-time.After(100 * time.Millisecond):
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	second := <-acquired
	if second == nil {
		t.FailNow()
	}
	if !exists(dir) {
		t.Error("second run does not own a fresh workspace")
	}
	second.Release()
}
