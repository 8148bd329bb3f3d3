package terminal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMapWidth(t *testing.T) {
	tests := []struct {
		cells int
		want  int
	}{
		{1, 5},
		{5, 21},
		{19, 77},
	}
	for _, tt := range tests {
		if got := MapWidth(tt.cells); got != tt.want {
			t.Errorf("MapWidth(%d) = %d, want %d", tt.cells, got, tt.want)
		}
	}
}

func TestRegularFileIsNotATerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatalf("os.Create: %v", err)
	}
	defer f.Close()

	if IsTerminal(f) {
		t.Error("IsTerminal(regular file) = true, want false")
	}
	if w, h := GetSize(f); w != DefaultWidth || h != DefaultHeight {
		t.Errorf("GetSize(regular file) = %d,%d, want defaults", w, h)
	}
	if !FitsWidth(f, 19) || FitsWidth(f, 20) {
		t.Error("FitsWidth does not agree with the default width")
	}
}
