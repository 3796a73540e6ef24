package inkwell

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// Export builds the site and writes site.json and theme.json under dir.
// Each file lands atomically: it is fsynced under a temporary name and
// renamed into place, so a consumer never sees a half-written descriptor.
func (s *Site) Export(ctx context.Context, dir string) error {
	desc, err := s.Build(ctx)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("inkwell: create export dir: %w", err)
	}
	if err := s.writeJSON(filepath.Join(dir, "site.json"), desc); err != nil {
		return err
	}
	if err := s.writeJSON(filepath.Join(dir, "theme.json"), desc.Theme); err != nil {
		return err
	}
	s.logger.Info().Str("dir", dir).Str("build_id", desc.BuildID).Msg("site exported")
	return nil
}

func (s *Site) writeJSON(path string, v any) error {
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("inkwell: create pending %s: %w", filepath.Base(path), err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			s.logger.Debug().Err(err).Str("path", path).Msg("cleanup pending file")
		}
	}()

	enc := json.NewEncoder(pending)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("inkwell: encode %s: %w", filepath.Base(path), err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("inkwell: replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
