package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"contractScope/internal/model"
)

// Store provides Postgres persistence for the audit-report archive.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the audit_reports table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS audit_reports (
			id           BIGSERIAL PRIMARY KEY,
			address      TEXT NOT NULL,
			chain        TEXT NOT NULL,
			is_contract  BOOLEAN NOT NULL,
			is_verified  BOOLEAN NOT NULL,
			error_note   TEXT,
			report       JSONB NOT NULL,
			generated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure audit_reports schema: %w", err)
	}
	return nil
}

// PutReport inserts one finished report into the archive.
func (s *Store) PutReport(ctx context.Context, report model.ContractReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO audit_reports (address, chain, is_contract, is_verified, error_note, report)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
	`,
		report.Address,
		report.Chain,
		report.IsContract,
		report.IsVerified,
		report.ErrorNote,
		payload,
	)
	if err != nil {
		return fmt.Errorf("insert audit report: %w", err)
	}
	return nil
}
