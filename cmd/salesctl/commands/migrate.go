package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/frontandrew/sales/internal/pkg/database"
	"github.com/spf13/cobra"
)

// migrateCmd - группа команд миграций
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Миграции схемы базы данных",
	Long: `Миграции встроены в бинарник.

Подкоманды:
  up       - применить все ожидающие миграции
  down     - откатить последнюю миграцию
  status   - показать состояние миграций
  version  - показать текущую версию схемы`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Применить все ожидающие миграции",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(ctx context.Context, m *database.Migrator) error {
			versions, err := m.Up(ctx)
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Нет ожидающих миграций")
				return nil
			}
			for _, v := range versions {
				fmt.Fprintf(cmd.OutOrStdout(), "Применена миграция %05d\n", v)
			}
			return nil
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Откатить последнюю миграцию",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(ctx context.Context, m *database.Migrator) error {
			version, err := m.Down(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Откачена миграция %05d\n", version)
			return nil
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Показать состояние миграций",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(ctx context.Context, m *database.Migrator) error {
			states, err := m.Status(ctx)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(states)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tSTATE\tFILE")
			for _, st := range states {
				state := "pending"
				if st.Applied {
					state = "applied"
				}
				fmt.Fprintf(w, "%05d\t%s\t%s\n", st.Version, state, st.Path)
			}
			return w.Flush()
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Показать текущую версию схемы",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(ctx context.Context, m *database.Migrator) error {
			version, err := m.Version(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd, migrateVersionCmd)
}

// withMigrator подключается к базе и передает мигратор в fn
func withMigrator(ctx context.Context, fn func(context.Context, *database.Migrator) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	url, err := resolveDBURL()
	if err != nil {
		return err
	}

	pool, err := database.ConnectURL(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	migrator, err := database.NewMigrator(pool)
	if err != nil {
		return err
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close migrator: %v\n", err)
		}
	}()

	return fn(ctx, migrator)
}
