package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/frontandrew/sales/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("JWT_ISSUER", "users-service")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"token", "--user", "7", "--role", "admin"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		tokenUserID, tokenRole, jsonOutput = 0, "", false
	})

	require.NoError(t, rootCmd.Execute())

	claims, err := jwt.NewTokenService("cli-secret", "users-service").ValidateToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenCommand_RequiresUser(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"token"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	assert.Error(t, rootCmd.Execute())
}

func TestResolveDBURL_Flag(t *testing.T) {
	dbURL = "postgres://u:p@db:5432/sales?sslmode=disable"
	t.Cleanup(func() { dbURL = "" })

	url, err := resolveDBURL()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/sales?sslmode=disable", url)
}

func TestResolveDBURL_FromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "pg")
	t.Setenv("DB_NAME", "shop")

	url, err := resolveDBURL()
	require.NoError(t, err)
	assert.Contains(t, url, "@pg:5432/shop")
}
