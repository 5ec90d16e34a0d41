package library

import (
	"context"
	"path/filepath"
	"testing"
)

func TestHealMissingFile(t *testing.T) {
	_, err := Heal(context.Background(), filepath.Join(t.TempDir(), "nope.py"), "some error")
	if err == nil {
		t.Error("expected error for missing file")
	}
}
