package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

const scheduleSelectPg = `
    SELECT s.id, s.staff_id, s.title, s.description, s.date, s.start_time,
           s.end_time, s.location, s.status, s.created_at,
           st.name AS staff_name, st.email AS staff_email
    FROM schedules s
    JOIN staff st ON s.staff_id = st.id`

type schedulePostgres struct {
	pool *pgxpool.Pool
}

// NewSchedulePostgres returns the hosted-backend implementation.
func NewSchedulePostgres(pool *pgxpool.Pool) ScheduleRepository {
	return &schedulePostgres{pool: pool}
}

func (r *schedulePostgres) Create(ctx context.Context, entry *domain.ScheduleEntry) error {
	const query = `
        INSERT INTO schedules (staff_id, title, description, date, start_time, end_time, location, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		entry.StaffID,
		entry.Title,
		entry.Description,
		entry.Date,
		entry.StartTime,
		entry.EndTime,
		entry.Location,
		entry.Status,
	).Scan(&entry.ID, &entry.CreatedAt)
	return mapPgError(err)
}

func (r *schedulePostgres) Update(ctx context.Context, entry *domain.ScheduleEntry) error {
	const query = `
        UPDATE schedules
        SET staff_id=$1, title=$2, description=$3, date=$4, start_time=$5,
            end_time=$6, location=$7, status=$8
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		entry.StaffID,
		entry.Title,
		entry.Description,
		entry.Date,
		entry.StartTime,
		entry.EndTime,
		entry.Location,
		entry.Status,
		entry.ID,
	)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *schedulePostgres) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM schedules WHERE id=$1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *schedulePostgres) ListByStaff(ctx context.Context, staffID int64) ([]domain.ScheduleEntry, error) {
	query := scheduleSelectPg + `
    WHERE s.staff_id = $1
    ORDER BY s.date ASC, s.start_time ASC`

	rows, err := r.pool.Query(ctx, query, staffID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()
	return scanPgSchedules(rows)
}

func (r *schedulePostgres) ListAll(ctx context.Context) ([]domain.ScheduleEntry, error) {
	query := scheduleSelectPg + `
    ORDER BY s.date ASC, s.start_time ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()
	return scanPgSchedules(rows)
}

type pgRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanPgSchedules(rows pgRows) ([]domain.ScheduleEntry, error) {
	var result []domain.ScheduleEntry
	for rows.Next() {
		var entry domain.ScheduleEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.StaffID,
			&entry.Title,
			&entry.Description,
			&entry.Date,
			&entry.StartTime,
			&entry.EndTime,
			&entry.Location,
			&entry.Status,
			&entry.CreatedAt,
			&entry.StaffName,
			&entry.StaffEmail,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
