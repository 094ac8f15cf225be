package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/domain"
)

// Save validates the whole aggregate, backs up any existing document for the
// period and then writes the new document atomically (temp file + rename).
// A failed save leaves the previous document and its backups intact.
func (r *Repository) Save(schedule *domain.Schedule) (string, error) {
	if err := schedule.Validate(); err != nil {
		return "", err
	}

	path := r.SchedulePath(schedule.Metadata.Year, schedule.Metadata.Month.Number())

	if err := os.MkdirAll(r.cfg.Storage.DataDir, 0o755); err != nil {
		return "", &domain.FileSystemError{Op: "mkdir", Path: r.cfg.Storage.DataDir, Err: err}
	}

	if r.cfg.Storage.EnableBackup {
		if _, err := os.Stat(path); err == nil {
			if err := r.backup(path); err != nil {
				return "", err
			}
		}
	}

	data, err := r.marshal(schedule)
	if err != nil {
		return "", &domain.DataError{Kind: domain.ErrKindSerialization, Path: path, Err: err}
	}

	// сначала пишем во временный файл, чтобы сбой записи не испортил документ
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return "", &domain.FileSystemError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", &domain.FileSystemError{Op: "rename", Path: path, Err: err}
	}

	return path, nil
}

// Load reads, deserializes and re-validates the document for the period. A
// corrupted or hand-edited file fails the same way a bad construction request
// would.
func (r *Repository) Load(year, month int) (*domain.Schedule, error) {
	path := r.SchedulePath(year, month)

	data, err := os.ReadFile(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, &domain.NotFoundError{Identifier: fmt.Sprintf("%d-%02d", year, month)}
		case errors.Is(err, fs.ErrPermission):
			return nil, &domain.FileSystemError{Op: "read", Path: path, Err: err}
		default:
			return nil, &domain.FileSystemError{Op: "read", Path: path, Err: err}
		}
	}

	schedule := &domain.Schedule{}
	if err := json.Unmarshal(data, schedule); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			// документ разобран как JSON, но значения не проходят доменную проверку
			return nil, &domain.DataError{Kind: domain.ErrKindIntegrity, Path: path, Err: ve}
		}
		return nil, &domain.DataError{Kind: domain.ErrKindSerialization, Path: path, Err: err}
	}

	if err := schedule.Validate(); err != nil {
		return nil, &domain.DataError{Kind: domain.ErrKindIntegrity, Path: path, Err: err}
	}

	return schedule, nil
}

func (r *Repository) Exists(year, month int) bool {
	info, err := os.Stat(r.SchedulePath(year, month))
	return err == nil && !info.IsDir()
}

// Delete removes the stored document; backups are left untouched.
func (r *Repository) Delete(year, month int) error {
	path := r.SchedulePath(year, month)
	if err := os.Remove(path); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return &domain.NotFoundError{Identifier: fmt.Sprintf("%d-%02d", year, month)}
		default:
			return &domain.FileSystemError{Op: "delete", Path: path, Err: err}
		}
	}
	return nil
}

// listDocument covers only what the summary needs; shift bodies stay raw so
// listing does not pay for full deserialization.
type listDocument struct {
	Metadata struct {
		Month     string    `json:"month"`
		Year      int       `json:"year"`
		CreatedAt time.Time `json:"createdAt"`
	} `json:"metadata"`
	Units []struct {
		Shifts []json.RawMessage `json:"shifts"`
	} `json:"schedule"`
}

// List enumerates stored schedules, newest period first. Unreadable files are
// skipped: one corrupted document must not make the whole listing fail.
func (r *Repository) List() ([]domain.ScheduleSummary, error) {
	paths, err := filepath.Glob(filepath.Join(r.cfg.Storage.DataDir, "schedule_*.json"))
	if err != nil {
		return nil, &domain.FileSystemError{Op: "list", Path: r.cfg.Storage.DataDir, Err: err}
	}

	summaries := make([]domain.ScheduleSummary, 0, len(paths))
	for _, path := range paths {
		summary, err := r.readSummary(path)
		if err != nil {
			continue
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Year != summaries[j].Year {
			return summaries[i].Year > summaries[j].Year
		}
		return summaries[i].MonthNumber > summaries[j].MonthNumber
	})

	return summaries, nil
}

func (r *Repository) readSummary(path string) (domain.ScheduleSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ScheduleSummary{}, &domain.FileSystemError{Op: "read", Path: path, Err: err}
	}

	doc := listDocument{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.ScheduleSummary{}, &domain.DataError{Kind: domain.ErrKindSerialization, Path: path, Err: err}
	}

	month, err := domain.ParseMonthName(doc.Metadata.Month)
	if err != nil {
		return domain.ScheduleSummary{}, &domain.DataError{Kind: domain.ErrKindIntegrity, Path: path, Err: err}
	}

	totalShifts := 0
	for _, unit := range doc.Units {
		totalShifts += len(unit.Shifts)
	}

	return domain.ScheduleSummary{
		Filename:    filepath.Base(path),
		Month:       month.DisplayName(),
		MonthNumber: month.Number(),
		Year:        doc.Metadata.Year,
		CreatedAt:   doc.Metadata.CreatedAt,
		UnitCount:   len(doc.Units),
		TotalShifts: totalShifts,
	}, nil
}

// backup copies the current document into the backups directory with a
// timestamp suffix and prunes the oldest copies beyond the retention limit.
func (r *Repository) backup(path string) error {
	backupDir := r.backupDir()
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return &domain.FileSystemError{Op: "mkdir", Path: backupDir, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &domain.FileSystemError{Op: "read", Path: path, Err: err}
	}

	stem := filepath.Base(path)
	stem = stem[:len(stem)-len(filepath.Ext(stem))]
	backupPath := filepath.Join(backupDir, fmt.Sprintf("%s_backup_%s.json", stem, time.Now().Format("20060102T150405.000")))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return &domain.FileSystemError{Op: "write", Path: backupPath, Err: err}
	}

	return r.pruneBackups(stem)
}

func (r *Repository) pruneBackups(stem string) error {
	if r.cfg.Storage.MaxBackups <= 0 {
		return nil
	}

	backups, err := filepath.Glob(filepath.Join(r.backupDir(), stem+"_backup_*.json"))
	if err != nil {
		return &domain.FileSystemError{Op: "list", Path: r.backupDir(), Err: err}
	}

	// имена содержат отметку времени, поэтому сортировка по имени — это
	// сортировка от старых к новым
	sort.Strings(backups)
	for len(backups) > r.cfg.Storage.MaxBackups {
		oldest := backups[0]
		backups = backups[1:]
		if err := os.Remove(oldest); err != nil {
			return &domain.FileSystemError{Op: "delete", Path: oldest, Err: err}
		}
	}
	return nil
}

func (r *Repository) marshal(schedule *domain.Schedule) ([]byte, error) {
	if r.cfg.Storage.PrettyJSON {
		return json.MarshalIndent(schedule, "", "  ")
	}
	return json.Marshal(schedule)
}
