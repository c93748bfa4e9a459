package config

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
)

func GetDatabaseURL() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_DATABASE"))
	return dsn
}

// GetQueryTimeout bounds every use-case call; repositories inherit it
// through the request context.
func GetQueryTimeout() time.Duration {
	if v, err := strconv.Atoi(os.Getenv("QUERY_TIMEOUT_SECONDS")); err == nil && v > 0 {
		return time.Duration(v) * time.Second
	}
	return 10 * time.Second
}

// BootDB verifies connectivity and runs the schema migration. The
// database/sql handle is only used at boot; queries go through the pool.
func BootDB() (*sql.DB, error) {
	url := GetDatabaseURL()
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return db, err
	}

	return db, nil
}

// BootPool opens the pgx pool the repositories run their queries on.
func BootPool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

func autoMigrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS salesmen (
		id UUID PRIMARY KEY,
		first_name VARCHAR(50) NOT NULL,
		last_name VARCHAR(50) NOT NULL,
		titles_before JSONB,
		titles_after JSONB,
		prosight_id VARCHAR(5) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(20),
		gender VARCHAR(1) NOT NULL,
		marital_status VARCHAR(10),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT salesmen_prosight_id_unique UNIQUE (prosight_id),
		CONSTRAINT salesmen_email_unique UNIQUE (email)
	);
	CREATE INDEX IF NOT EXISTS salesmen_first_name_last_name_index ON salesmen (first_name, last_name);
	CREATE INDEX IF NOT EXISTS salesmen_gender_index ON salesmen (gender);
	CREATE INDEX IF NOT EXISTS salesmen_marital_status_index ON salesmen (marital_status);
	CREATE INDEX IF NOT EXISTS salesmen_created_at_index ON salesmen (created_at);
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
