package commands

import (
	"fmt"
	"os"

	"github.com/frontandrew/sales/internal/pkg/config"
	"github.com/spf13/cobra"
)

var (
	// Глобальные флаги
	dbURL      string
	jsonOutput bool
)

// rootCmd - базовая команда
var rootCmd = &cobra.Command{
	Use:   "salesctl",
	Short: "Служебные команды сервиса продаж",
	Long: `salesctl обслуживает базу сервиса продаж.

Команды:
  migrate  - миграции схемы (up, down, status, version)
  token    - выпуск JWT для локальной отладки`,
	SilenceUsage: true,
}

// Execute запускает корневую команду
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "строка подключения к PostgreSQL (по умолчанию из DB_* переменных)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в JSON")
}

// loadConfig читает конфигурацию сервиса из окружения и .env
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// resolveDBURL возвращает --db или строку, собранную из конфигурации
func resolveDBURL() (string, error) {
	if dbURL != "" {
		return dbURL, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.Database.URL(), nil
}
