package filestore

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestStoredName(t *testing.T) {
	now := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)
	name := storedName("Lab Report", "results.pdf", now)
	pattern := regexp.MustCompile(`^Lab_Report_20240301_153000_[0-9a-f]{8}\.pdf$`)
	if !pattern.MatchString(name) {
		t.Errorf("stored name %q does not match expected pattern", name)
	}
}

func TestSaveAndOpen(t *testing.T) {
	s := newTestStore(t)

	path, name, size, err := s.Save("P001", "Lab Report", "results.pdf", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != 5 {
		t.Errorf("size = %d, want 5", size)
	}
	if filepath.Base(filepath.Dir(path)) != "patient_P001" {
		t.Errorf("file not under patient directory: %s", path)
	}
	if filepath.Base(path) != name {
		t.Errorf("returned name %q does not match path %q", name, path)
	}

	f, err := s.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	buf := make([]byte, 16)
	n, _ := f.Read(buf)
	if string(buf[:n]) != "hello" {
		t.Errorf("content = %q", buf[:n])
	}
}

func TestOpen_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Open(filepath.Join(s.root, "nope.pdf")); err != ErrFileNotFound {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	path, _, _, err := s.Save("P001", "Note", "n.txt", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(path); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(path); err != ErrFileNotFound {
		t.Errorf("second delete: expected ErrFileNotFound, got %v", err)
	}
}

func TestMove(t *testing.T) {
	s := newTestStore(t)
	path, name, _, err := s.Save("P001", "Note", "n.txt", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	dst, err := s.Move(path, "P002")
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if filepath.Base(filepath.Dir(dst)) != "patient_P002" {
		t.Errorf("moved file not under new patient directory: %s", dst)
	}
	if filepath.Base(dst) != name {
		t.Errorf("stored name changed on move: %s", dst)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("source still exists after move")
	}
}

func TestCopy(t *testing.T) {
	s := newTestStore(t)
	path, _, _, err := s.Save("P001", "Note", "n.txt", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	dst, err := s.Copy(path, "P002")
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	for _, p := range []string{path, dst} {
		b, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		if string(b) != "data" {
			t.Errorf("content of %s = %q", p, b)
		}
	}
}

func TestListAndCleanup(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 3; i++ {
		if _, _, _, err := s.Save("P001", "Note", "n.txt", strings.NewReader("x")); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	files, err := s.ListPatientFiles("P001")
	if err != nil {
		t.Fatalf("ListPatientFiles: %v", err)
	}
	if len(files) != 3 {
		t.Errorf("expected 3 files, got %d", len(files))
	}

	none, err := s.ListPatientFiles("unseen")
	if err != nil || none != nil {
		t.Errorf("unseen patient: files=%v err=%v", none, err)
	}

	if err := s.CleanupPatient("P001"); err != nil {
		t.Fatalf("CleanupPatient: %v", err)
	}
	files, err = s.ListPatientFiles("P001")
	if err != nil || len(files) != 0 {
		t.Errorf("after cleanup: files=%v err=%v", files, err)
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	if _, _, _, err := s.Save("P001", "A", "a.txt", strings.NewReader("1234")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, _, _, err := s.Save("P002", "B", "b.txt", strings.NewReader("56")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	st, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.FileCount != 2 {
		t.Errorf("FileCount = %d, want 2", st.FileCount)
	}
	if st.TotalBytes != 6 {
		t.Errorf("TotalBytes = %d, want 6", st.TotalBytes)
	}
	if st.PerPatient["P001"] != 1 || st.PerPatient["P002"] != 1 {
		t.Errorf("PerPatient = %v", st.PerPatient)
	}
}
