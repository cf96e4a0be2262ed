// Package postgresstore provides a PostgreSQL-based session store.
// It runs schema migrations on startup and keeps one row per live session;
// expired rows are filtered on read and reaped opportunistically on write.
package postgresstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/patric-chuzhbe/homesite/internal/store"
)

// PostgresStore is a session store backed by a PostgreSQL database.
type PostgresStore struct {
	database          *sql.DB
	connectionTimeout time.Duration
}

// New establishes a connection to the PostgreSQL database,
// runs schema migrations, and returns a configured PostgresStore instance.
func New(
	ctx context.Context,
	databaseDSN string,
	connectionTimeout time.Duration,
	migrationsDir string,
) (*PostgresStore, error) {
	database, err := sql.Open("pgx", databaseDSN)
	if err != nil {
		return nil, err
	}

	result := &PostgresStore{
		database:          database,
		connectionTimeout: connectionTimeout,
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return nil,
			fmt.Errorf(
				"in internal/store/postgresstore/postgresstore.go/New(): error while `goose.SetDialect()` calling: %w",
				err,
			)
	}

	if err := goose.Up(result.database, migrationsDir); err != nil {
		return nil,
			fmt.Errorf(
				"in internal/store/postgresstore/postgresstore.go/New(): error while `goose.Up()` calling: %w",
				err,
			)
	}

	return result, nil
}

// Get returns the live record for id. Rows past their expiry are treated
// as absent; the reaper will remove them later.
func (s *PostgresStore) Get(ctx context.Context, id string) (store.Data, bool, error) {
	var raw []byte
	err := s.database.QueryRowContext(
		ctx,
		`
			SELECT data
				FROM sessions
				WHERE id = $1
					AND expires_at > now()
		`,
		id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	data := store.Data{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, false, fmt.Errorf(
			"in internal/store/postgresstore/postgresstore.go/Get(): error while `json.Unmarshal()` calling: %w",
			err,
		)
	}

	return data, true, nil
}

// Save upserts the record for id and refreshes its expiry. Expired rows
// are reaped in the same statement batch.
func (s *PostgresStore) Save(ctx context.Context, id string, data store.Data, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = s.database.ExecContext(
		ctx,
		`
			INSERT INTO sessions (id, data, expires_at)
				VALUES ($1, $2, now() + $3 * interval '1 second')
				ON CONFLICT (id) DO UPDATE
				SET
					data = EXCLUDED.data,
					expires_at = EXCLUDED.expires_at;
		`,
		id,
		raw,
		int64(ttl.Seconds()),
	)
	if err != nil {
		return err
	}

	_, err = s.database.ExecContext(
		ctx,
		`DELETE FROM sessions WHERE expires_at <= now()`,
	)

	return err
}

// Delete destroys the record for id.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.database.ExecContext(
		ctx,
		`DELETE FROM sessions WHERE id = $1`,
		id,
	)

	return err
}

// Ping checks database connectivity within the configured timeout.
func (s *PostgresStore) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, s.connectionTimeout)
	defer cancel()

	return s.database.PingContext(pingCtx)
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.database.Close()
}
