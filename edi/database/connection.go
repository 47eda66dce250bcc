package database

import (
	"database/sql"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"

	"github.com/clinicalforecast/edi-loader/conf"
	"github.com/clinicalforecast/edi-loader/edi/utils"
)

// Variable substitution to support testing.
var LogFatal = log.Fatal

// GetDbConnection opens the loader's Postgres connection. The database may
// still be coming up when an import run starts, so the initial ping is
// retried with a bounded backoff before giving up.
func GetDbConnection() *sql.DB {
	databaseURL := conf.GetEnv("DATABASE_URL")
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		LogFatal(err)
	}

	db.SetMaxOpenConns(utils.GetEnvInt("EDI_DB_MAX_OPEN_CONNS", 20))
	db.SetMaxIdleConns(utils.GetEnvInt("EDI_DB_MAX_IDLE_CONNS", 10))
	db.SetConnMaxLifetime(time.Duration(utils.GetEnvInt("EDI_DB_CONN_MAX_LIFETIME_MIN", 5)) * time.Minute)

	interval := time.Duration(utils.GetEnvInt("EDI_DB_PING_INTERVAL_SEC", 2)) * time.Second
	retries := uint64(utils.GetEnvInt("EDI_DB_PING_RETRIES", 5))
	pingErr := backoff.Retry(db.Ping, backoff.WithMaxRetries(backoff.NewConstantBackOff(interval), retries))
	if pingErr != nil {
		LogFatal(pingErr)
	}

	return db
}
