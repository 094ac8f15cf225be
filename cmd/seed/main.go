package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/config"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/repository"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/seed"
)

func main() {
	var month int
	var year int
	var shiftsPerUnit int

	flag.IntVar(&month, "month", 0, "месяц графика (1-12, по умолчанию следующий месяц)")
	flag.IntVar(&year, "year", 0, "год графика (по умолчанию год следующего месяца)")
	flag.IntVar(&shiftsPerUnit, "shifts", 4, "количество дежурств на подразделение")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// читаем конфигурацию
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("не удалось загрузить конфигурацию", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if month == 0 || year == 0 {
		defaultMonth, defaultYear := seed.NextPeriod()
		if month == 0 {
			month = defaultMonth
		}
		if year == 0 {
			year = defaultYear
		}
	}

	repo := repository.NewRepository(cfg)

	schedule, err := seed.GenerateRandomSchedule(cfg, month, year, shiftsPerUnit)
	if err != nil {
		logger.Error("не удалось сгенерировать график", slog.String("error", err.Error()))
		os.Exit(1)
	}

	path, err := repo.Save(schedule)
	if err != nil {
		logger.Error("не удалось сохранить график", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("график сохранён",
		slog.String("period", schedule.Metadata.PeriodString()),
		slog.Int("units", len(schedule.Units)),
		slog.Int("shifts", schedule.TotalShifts()),
		slog.String("path", path),
	)
}
