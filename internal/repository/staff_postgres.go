package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type staffPostgres struct {
	pool *pgxpool.Pool
}

// NewStaffPostgres returns the hosted-backend implementation.
func NewStaffPostgres(pool *pgxpool.Pool) StaffRepository {
	return &staffPostgres{pool: pool}
}

func (r *staffPostgres) Create(ctx context.Context, account *domain.StaffAccount) error {
	const query = `
        INSERT INTO staff (name, email, password_hash, external_id, role)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		account.Name,
		account.Email,
		nullIfEmpty(account.PasswordHash),
		account.ExternalID,
		account.Role,
	).Scan(&account.ID, &account.CreatedAt)
	return mapPgError(err)
}

func (r *staffPostgres) GetByID(ctx context.Context, id int64) (*domain.StaffAccount, error) {
	return r.getBy(ctx, "id=$1", id)
}

func (r *staffPostgres) GetByEmail(ctx context.Context, email string) (*domain.StaffAccount, error) {
	return r.getBy(ctx, "email=$1", email)
}

func (r *staffPostgres) GetByExternalID(ctx context.Context, externalID string) (*domain.StaffAccount, error) {
	return r.getBy(ctx, "external_id=$1", externalID)
}

func (r *staffPostgres) getBy(ctx context.Context, clause string, arg any) (*domain.StaffAccount, error) {
	query := `
        SELECT id, name, email, COALESCE(password_hash, ''), external_id, role, created_at
        FROM staff WHERE ` + clause

	var account domain.StaffAccount
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.ExternalID,
		&account.Role,
		&account.CreatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}
	return &account, nil
}

func (r *staffPostgres) LinkExternalID(ctx context.Context, id int64, externalID string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE staff SET external_id=$1 WHERE id=$2`, externalID, id)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *staffPostgres) List(ctx context.Context) ([]domain.StaffAccount, error) {
	const query = `
        SELECT id, name, email, COALESCE(password_hash, ''), external_id, role, created_at
        FROM staff ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var result []domain.StaffAccount
	for rows.Next() {
		var account domain.StaffAccount
		if err := rows.Scan(
			&account.ID,
			&account.Name,
			&account.Email,
			&account.PasswordHash,
			&account.ExternalID,
			&account.Role,
			&account.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, account)
	}
	return result, rows.Err()
}

func (r *staffPostgres) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM staff WHERE id=$1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicateEmail
		case pgForeignKeyViolation:
			return ErrNotFound
		}
	}
	return err
}
