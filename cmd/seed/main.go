package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-scheduler/internal/auth"
	"github.com/spec-kit/shift-scheduler/internal/config"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/observability"
	"github.com/spec-kit/shift-scheduler/internal/persistence"
	"github.com/spec-kit/shift-scheduler/internal/repository"
)

// Seeds the configured store with a default admin, two staff accounts
// and sample shifts for local development. Safe to re-run: it exits
// when any staff account exists.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	var (
		staffRepo    repository.StaffRepository
		scheduleRepo repository.ScheduleRepository
	)

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Store, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()
		if err := persistence.BootstrapPostgres(ctx, pg.Pool, logger); err != nil {
			logger.Fatal("failed to bootstrap schema", zap.Error(err))
		}
		staffRepo = repository.NewStaffPostgres(pg.Pool)
		scheduleRepo = repository.NewSchedulePostgres(pg.Pool)
	default:
		db, err := persistence.NewSQLite(cfg.Store.SQLitePath)
		if err != nil {
			logger.Fatal("failed to open sqlite", zap.Error(err))
		}
		defer db.Close()
		if err := persistence.BootstrapSQLite(ctx, db, logger); err != nil {
			logger.Fatal("failed to bootstrap schema", zap.Error(err))
		}
		staffRepo = repository.NewStaffSQLite(db)
		scheduleRepo = repository.NewScheduleSQLite(db)
	}

	existing, err := staffRepo.List(ctx)
	if err != nil {
		logger.Fatal("failed to check existing staff", zap.Error(err))
	}
	if len(existing) > 0 {
		logger.Info("staff already present, skipping seed", zap.Int("count", len(existing)))
		return
	}

	createAccount := func(name, email, password string, role domain.Role) *domain.StaffAccount {
		hash, err := auth.HashPassword(password, cfg.Auth.BcryptCost)
		if err != nil {
			logger.Fatal("failed to hash password", zap.Error(err))
		}
		account := &domain.StaffAccount{Name: name, Email: email, PasswordHash: hash, Role: role}
		if err := staffRepo.Create(ctx, account); err != nil {
			logger.Fatal("failed to create account", zap.String("email", email), zap.Error(err))
		}
		return account
	}

	createAccount("Admin User", "admin@schedule.com", "admin123", domain.RoleAdmin)
	john := createAccount("John Doe", "john@schedule.com", "staff123", domain.RoleStaff)
	jane := createAccount("Jane Smith", "jane@schedule.com", "staff123", domain.RoleStaff)

	shifts := []domain.ScheduleEntry{
		{StaffID: john.ID, Title: "Morning Shift", Description: "Front desk duty", Date: "2025-12-06", StartTime: "08:00", EndTime: "16:00", Location: "Main Office", Status: domain.ScheduleStatusScheduled},
		{StaffID: john.ID, Title: "Safety Training", Description: "Annual safety certification", Date: "2025-12-08", StartTime: "10:00", EndTime: "12:00", Location: "Training Room B", Status: domain.ScheduleStatusScheduled},
		{StaffID: jane.ID, Title: "Delivery Route A", Description: "North district deliveries", Date: "2025-12-06", StartTime: "09:00", EndTime: "17:00", Location: "Warehouse", Status: domain.ScheduleStatusScheduled},
		{StaffID: jane.ID, Title: "Evening Shift", Description: "Customer service", Date: "2025-12-07", StartTime: "16:00", EndTime: "00:00", Location: "Main Office", Status: domain.ScheduleStatusScheduled},
	}
	for i := range shifts {
		if err := scheduleRepo.Create(ctx, &shifts[i]); err != nil {
			logger.Fatal("failed to create shift", zap.String("title", shifts[i].Title), zap.Error(err))
		}
	}

	logger.Info("seeded store", zap.Int("accounts", 3), zap.Int("shifts", len(shifts)))
}
