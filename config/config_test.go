package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_MODE", "")
	t.Setenv("PORT", "")
	t.Setenv("DB_MAX_CONNS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, "pool", cfg.Database.Mode)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
	assert.Equal(t, "/uploads", cfg.Uploads.URLPrefix)
}

func TestLoadCredentialsInFixedOrder(t *testing.T) {
	t.Setenv("USER_AA1832", "curazao")
	t.Setenv("PASS_AA1832", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Len(t, cfg.Login, 4)

	assert.Equal(t, "AA1681", cfg.Login[0].Codigo)
	assert.Equal(t, "ZZ2006", cfg.Login[3].Codigo)
	assert.Equal(t, "Administrador", cfg.Login[3].Nombre)
	assert.Equal(t, "curazao", cfg.Login[1].User)
	assert.Equal(t, "secret", cfg.Login[1].Password)
}

func TestLoadRejectsUnknownDBMode(t *testing.T) {
	t.Setenv("DB_MODE", "cluster")

	_, err := Load()
	require.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{User: "u", Password: "p", Host: "db", Port: "5432", DBName: "intranet", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/intranet?sslmode=disable", c.DSN())

	c.URL = "postgres://override"
	assert.Equal(t, "postgres://override", c.DSN())
}

func TestSplitTrim(t *testing.T) {
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, SplitTrim(" a@x.com, ,b@x.com ", ","))
	assert.Nil(t, SplitTrim("", ","))
}
