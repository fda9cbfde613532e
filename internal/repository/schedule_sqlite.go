package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

const scheduleSelectLite = `
    SELECT s.id, s.staff_id, s.title, s.description, s.date, s.start_time,
           s.end_time, s.location, s.status, s.created_at,
           st.name AS staff_name, st.email AS staff_email
    FROM schedules s
    JOIN staff st ON s.staff_id = st.id`

type scheduleSQLite struct {
	db *sql.DB
}

// NewScheduleSQLite returns the embedded-backend implementation.
func NewScheduleSQLite(db *sql.DB) ScheduleRepository {
	return &scheduleSQLite{db: db}
}

func (r *scheduleSQLite) Create(ctx context.Context, entry *domain.ScheduleEntry) error {
	entry.CreatedAt = time.Now().UTC()
	const query = `
        INSERT INTO schedules (staff_id, title, description, date, start_time, end_time, location, status, created_at)
        VALUES (?,?,?,?,?,?,?,?,?)`

	res, err := r.db.ExecContext(ctx, query,
		entry.StaffID,
		entry.Title,
		entry.Description,
		entry.Date,
		entry.StartTime,
		entry.EndTime,
		entry.Location,
		string(entry.Status),
		entry.CreatedAt,
	)
	if err != nil {
		return mapSQLiteError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = id
	return nil
}

func (r *scheduleSQLite) Update(ctx context.Context, entry *domain.ScheduleEntry) error {
	const query = `
        UPDATE schedules
        SET staff_id=?, title=?, description=?, date=?, start_time=?,
            end_time=?, location=?, status=?
        WHERE id=?`

	res, err := r.db.ExecContext(ctx, query,
		entry.StaffID,
		entry.Title,
		entry.Description,
		entry.Date,
		entry.StartTime,
		entry.EndTime,
		entry.Location,
		string(entry.Status),
		entry.ID,
	)
	if err != nil {
		return mapSQLiteError(err)
	}
	return requireRows(res)
}

func (r *scheduleSQLite) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id=?`, id)
	if err != nil {
		return mapSQLiteError(err)
	}
	return requireRows(res)
}

func (r *scheduleSQLite) ListByStaff(ctx context.Context, staffID int64) ([]domain.ScheduleEntry, error) {
	query := scheduleSelectLite + `
    WHERE s.staff_id = ?
    ORDER BY s.date ASC, s.start_time ASC`

	rows, err := r.db.QueryContext(ctx, query, staffID)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()
	return scanLiteSchedules(rows)
}

func (r *scheduleSQLite) ListAll(ctx context.Context) ([]domain.ScheduleEntry, error) {
	query := scheduleSelectLite + `
    ORDER BY s.date ASC, s.start_time ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()
	return scanLiteSchedules(rows)
}

func scanLiteSchedules(rows *sql.Rows) ([]domain.ScheduleEntry, error) {
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
