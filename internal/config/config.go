package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"production"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Storage struct {
		DataDir        string `env:"DATA_DIR" envDefault:"data"`
		OutputDir      string `env:"OUTPUT_DIR" envDefault:"output"`
		EnableBackup   bool   `env:"ENABLE_BACKUP" envDefault:"true"`
		MaxBackups     int    `env:"MAX_BACKUPS" envDefault:"5"`
		PrettyJSON     bool   `env:"PRETTY_JSON" envDefault:"true"`
		AllowPastDates bool   `env:"ALLOW_PAST_DATES" envDefault:"false"`
	} `envPrefix:"STORAGE_"`
	Document struct {
		CreatedBy string `env:"CREATED_BY" envDefault:"manual_input"`
		Source    string `env:"SOURCE" envDefault:"УМВД России по Всеволожскому району ЛО"`
		Signatory string `env:"SIGNATORY" envDefault:"Начальник УМВД, полковник полиции С.В. Колонистов"`
		Note      string `env:"NOTE" envDefault:"На основе поступающей информации об оперативной обстановке могут быть внесены корректировки в график выхода народных дружин."`
	} `envPrefix:"DOCUMENT_"`
	Export struct {
		ExcelAuthor     string `env:"EXCEL_AUTHOR" envDefault:"Schedule DND"`
		IncludeMetadata bool   `env:"INCLUDE_METADATA" envDefault:"true"`
	} `envPrefix:"EXPORT_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// возвращаем только первую ошибку, чтобы лог оставался читаемым
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}
