package library

import (
	"context"
	"fmt"
	"os"

	"github.com/eriksjaastad/analyze-youtube-videos/internal/engine"
)

// Heal sends a broken script plus its error log to the model and overwrites
// the file with the corrected version. The original is kept next to it as
// <path>.bak. errInput may be the error text itself or a path to a log file.
func Heal(ctx context.Context, path, errInput string) (*engine.HealSkillOutput, error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("heal: read %s: %w", path, err)
	}

	errLog := errInput
	if raw, err := os.ReadFile(errInput); err == nil {
		errLog = string(raw)
	}

	healed, err := engine.HealCode(ctx, path, string(original), errLog)
	if err != nil {
		return nil, err
	}
	if healed == "" {
		return nil, fmt.Errorf("heal: empty response for %s", path)
	}

	backup := path + ".bak"
	if err := os.WriteFile(backup, original, 0o644); err != nil {
		return nil, fmt.Errorf("heal: backup %s: %w", backup, err)
	}
	if err := atomicWrite(path, healed); err != nil {
		return nil, fmt.Errorf("heal: write %s: %w", path, err)
	}

	return &engine.HealSkillOutput{
		File:    path,
		Backup:  backup,
		Message: fmt.Sprintf("Healed %s (backup at %s)", path, backup),
	}, nil
}
