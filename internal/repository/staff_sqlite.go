package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

type staffSQLite struct {
	db *sql.DB
}

// NewStaffSQLite returns the embedded-backend implementation.
func NewStaffSQLite(db *sql.DB) StaffRepository {
	return &staffSQLite{db: db}
}

func (r *staffSQLite) Create(ctx context.Context, account *domain.StaffAccount) error {
	account.CreatedAt = time.Now().UTC()
	const query = `
        INSERT INTO staff (name, email, password_hash, external_id, role, created_at)
        VALUES (?,?,?,?,?,?)`

	res, err := r.db.ExecContext(ctx, query,
		account.Name,
		account.Email,
		nullIfEmpty(account.PasswordHash),
		account.ExternalID,
		string(account.Role),
		account.CreatedAt,
	)
	if err != nil {
		return mapSQLiteError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	account.ID = id
	return nil
}

func (r *staffSQLite) GetByID(ctx context.Context, id int64) (*domain.StaffAccount, error) {
	return r.getBy(ctx, "id=?", id)
}

func (r *staffSQLite) GetByEmail(ctx context.Context, email string) (*domain.StaffAccount, error) {
	return r.getBy(ctx, "email=?", email)
}

func (r *staffSQLite) GetByExternalID(ctx context.Context, externalID string) (*domain.StaffAccount, error) {
	return r.getBy(ctx, "external_id=?", externalID)
}

func (r *staffSQLite) getBy(ctx context.Context, clause string, arg any) (*domain.StaffAccount, error) {
	query := `
        SELECT id, name, email, COALESCE(password_hash, ''), external_id, role, created_at
        FROM staff WHERE ` + clause

	var account domain.StaffAccount
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.ExternalID,
		&account.Role,
		&account.CreatedAt,
	); err != nil {
		return nil, mapSQLiteError(err)
	}
	return &account, nil
}

func (r *staffSQLite) LinkExternalID(ctx context.Context, id int64, externalID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE staff SET external_id=? WHERE id=?`, externalID, id)
	if err != nil {
		return mapSQLiteError(err)
	}
	return requireRows(res)
}

func (r *staffSQLite) List(ctx context.Context) ([]domain.StaffAccount, error) {
	const query = `
        SELECT id, name, email, COALESCE(password_hash, ''), external_id, role, created_at
        FROM staff ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapSQLiteError(err)
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

func (r *staffSQLite) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id=?`, id)
	if err != nil {
		return mapSQLiteError(err)
	}
	return requireRows(res)
}

func requireRows(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return ErrDuplicateEmail
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return ErrNotFound
	}
	return err
}
