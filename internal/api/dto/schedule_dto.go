package dto

import "time"

// ScheduleRequest payload for create and full-row update.
type ScheduleRequest struct {
	StaffID     int64  `json:"staff_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Location    string `json:"location"`
	Status      string `json:"status"`
}

// ScheduleResponse is a shift entry joined with its owner.
type ScheduleResponse struct {
	ID          int64     `json:"id"`
	StaffID     int64     `json:"staff_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	StaffName   string    `json:"staff_name"`
	StaffEmail  string    `json:"staff_email"`
}
