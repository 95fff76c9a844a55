package database

import (
	"database/sql"
	"fmt"
)

type PostgresStore struct {
	DB *sql.DB
}

func (s *PostgresStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.DB.QueryRow(`SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return value, nil
}

func (s *PostgresStore) Set(key string, value []byte) error {
	// Upsert keeps the original seq so a rewritten record keeps its
	// first-write position in prefix scans.
	query := `INSERT INTO kv_store (key, value) VALUES ($1, $2)
			  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := s.DB.Exec(query, key, value); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) GetByPrefix(prefix string) ([][]byte, error) {
	rows, err := s.DB.Query(`SELECT value FROM kv_store WHERE key LIKE $1 || '%' ORDER BY seq`, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var values [][]byte
	for rows.Next() {
		var v []byte
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return values, nil
}
