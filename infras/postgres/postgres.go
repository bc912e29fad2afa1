package postgres

//nolint:revive
import (
	"hostmaster/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection splits reads from writes. Reservation writes and their overlap checks
// always run on Write so they observe committed rows.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	return &Connection{
		Read:  connect("read", config, config.DB.Postgres.Read),
		Write: connect("write", config, config.DB.Postgres.Write),
	}
}

// DSN builds a lib/pq connection URL for endpoint. extra is appended to the query string.
func DSN(config *config.Config, endpoint config.PostgresEndpoint, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", endpoint.SSLMode)

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + DatabaseName(config, endpoint.Name),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// DatabaseName applies DB_POSTGRES_PREFIX, used to isolate tenants or test runs.
func DatabaseName(config *config.Config, baseName string) string {
	return config.DB.Postgres.Prefix + baseName
}

func connect(name string, config *config.Config, endpoint config.PostgresEndpoint) *sqlx.DB {
	pool := config.DB.Postgres
	dsn := DSN(config, endpoint, nil)

	logger := log.With().
		Str("name", name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", DatabaseName(config, endpoint.Name)).
		Logger()

	attempts := max(pool.MaxRetry, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxOpenConns(pool.MaxOpenConns)
			db.SetMaxIdleConns(pool.MaxIdleConns)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pool.RetryWaitTime) * time.Second)
	}

	logger.Fatal().Int("attempts", attempts).Msg("Could not connect to database")

	return nil
}
