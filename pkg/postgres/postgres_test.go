package postgres

import (
	"testing"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/require"
)

func TestDB_DSN(t *testing.T) {
	cfg := DB{
		Host:     "db",
		Port:     5433,
		Username: "catalog",
		Password: "secret",
		NameDB:   "books",
		SSLMode:  "require",
	}
	require.Equal(t, "postgres://catalog:secret@db:5433/books?sslmode=require", cfg.DSN())
}

func TestDB_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "pg")

	var cfg DB
	require.NoError(t, envconfig.Process("", &cfg))
	require.Equal(t, "pg", cfg.Host)
	require.Equal(t, 5432, cfg.Port)
	require.Equal(t, "postgres", cfg.Username)
	require.Equal(t, "catalog", cfg.NameDB)
	require.Equal(t, "disable", cfg.SSLMode)
	require.Equal(t, 20, cfg.MaxOpenConns)
}
