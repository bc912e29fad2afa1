package postgres_test

import (
	"hostmaster/config"
	"hostmaster/infras/postgres"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "ci_"

	endpoint := config.PostgresEndpoint{
		Host:     "db.internal",
		Port:     "5432",
		Username: "hostmaster",
		Password: "p@ss/word?",
		Name:     "hostmaster",
		Timezone: "Europe/Lisbon",
		SSLMode:  "require",
	}

	dsn := postgres.DSN(cfg, endpoint, url.Values{"x-migrations-table": {"schema_migrations"}})

	parsed, err := url.Parse(dsn)
	require.NoError(t, err)

	password, _ := parsed.User.Password()

	assert.Equal(t, "postgres", parsed.Scheme)
	assert.Equal(t, "hostmaster", parsed.User.Username())
	assert.Equal(t, "p@ss/word?", password)
	assert.Equal(t, "db.internal:5432", parsed.Host)
	assert.Equal(t, "/ci_hostmaster", parsed.Path)
	assert.Equal(t, "require", parsed.Query().Get("sslmode"))
	assert.Equal(t, "Europe/Lisbon", parsed.Query().Get("timezone"))
	assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
}

func TestDatabaseName(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, "hostmaster", postgres.DatabaseName(cfg, "hostmaster"))

	cfg.DB.Postgres.Prefix = "test_"
	assert.Equal(t, "test_hostmaster", postgres.DatabaseName(cfg, "hostmaster"))
}
