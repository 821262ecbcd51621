package pg

import (
	"context"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/dropDatabas3/coursegate/internal/observability/logger"
)

// Migrate aplica en orden todos los *_up.sql del filesystem embebido.
// Los scripts son idempotentes (IF NOT EXISTS), así que re-aplicar es seguro.
func (s *Store) Migrate(ctx context.Context, fsys fs.FS, dir string) error {
	return s.applySQL(ctx, fsys, dir, "_up.sql")
}

// MigrateDown aplica los *_down.sql en orden inverso.
func (s *Store) MigrateDown(ctx context.Context, fsys fs.FS, dir string) error {
	return s.applySQL(ctx, fsys, dir, "_down.sql")
}

func (s *Store) applySQL(ctx context.Context, fsys fs.FS, dir, suffix string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), suffix) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	if suffix == "_down.sql" {
		// Reverso para deshacer en orden inverso al de aplicación.
		for i, j := 0, len(files)-1; i < j; i, j = i+1, j-1 {
			files[i], files[j] = files[j], files[i]
		}
	}

	for _, name := range files {
		b, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return err
		}
		if _, err := s.pool.Exec(ctx, string(b)); err != nil {
			return err
		}
		logger.L().Info("migration applied", logger.Key(name))
	}
	return nil
}
