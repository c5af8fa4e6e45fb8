package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseConfig_FillsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
version: "1"
database:
  host: db
  user: loans
  password: secret
  dbname: loans
auth:
  jwt_secret: s3cr3t
`))

	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Mode)
	assert.Equal(t, ":8443", cfg.Server.Addr)
	assert.Equal(t, 3306, cfg.DB.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowOrigins)
}

func Test_ParseConfig_Rejects(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{name: "bad mode", yaml: "mode: staging\nauth:\n  jwt_secret: x\n"},
		{name: "missing secret", yaml: "mode: dev\n"},
		{name: "not yaml", yaml: "mode: [dev"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func Test_DatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 3307, Username: "u", Password: "p", DBName: "loans"}

	dsn := c.DSN()

	assert.Contains(t, dsn, "u:p@tcp(db:3307)/loans")
	assert.Contains(t, dsn, "parseTime=true")
}
