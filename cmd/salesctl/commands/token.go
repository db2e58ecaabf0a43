package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/frontandrew/sales/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

var (
	tokenUserID int64
	tokenRole   string
	tokenTTL    time.Duration
)

// tokenCmd выпускает токен тем же ключом, которым API проверяет запросы
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Выпустить JWT для локальной отладки",
	Long: `Выпускает HS256 токен с ключом JWT_SECRET и издателем JWT_ISSUER.

Пример:
  salesctl token --user 7 --role admin --ttl 1h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenUserID <= 0 {
			return fmt.Errorf("--user must be a positive user ID")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		tokens := jwt.NewTokenService(cfg.Auth.SecretKey, cfg.Auth.Issuer)
		token, expiresAt, err := tokens.GenerateToken(tokenUserID, tokenRole, tokenTTL)
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
				"token":      token,
				"expires_at": expiresAt,
			})
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().Int64Var(&tokenUserID, "user", 0, "ID пользователя")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "", "роль пользователя")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "время жизни токена")
}
