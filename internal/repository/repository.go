package repository

import (
	"fmt"
	"path/filepath"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/config"
)

// Repository хранит по одному JSON-документу на период (год, месяц) в
// каталоге данных, с резервными копиями перед перезаписью.
type Repository struct {
	cfg *config.Config
}

func NewRepository(cfg *config.Config) *Repository {
	return &Repository{
		cfg: cfg,
	}
}

// SchedulePath derives the document path from the numeric month form. The
// display name must never reach this function.
func (r *Repository) SchedulePath(year, month int) string {
	return filepath.Join(r.cfg.Storage.DataDir, fmt.Sprintf("schedule_%d_%02d.json", year, month))
}

func (r *Repository) backupDir() string {
	return filepath.Join(r.cfg.Storage.DataDir, "backups")
}
