// Command seed loads demo accounts and job postings. Rows that already exist
// are left untouched, so it is safe to run repeatedly.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"
)

type seedUser struct {
	name, email, password, role string
}

var users = []seedUser{
	{"Admin User", "admin@example.com", "admin123", domain.RoleAdmin},
	{"John Doe", "john@example.com", "password123", domain.RoleUser},
	{"Bilawal", "bilawal@example.com", "password123", domain.RoleUser},
	{"Tech Corp", "hr@techcorp.com", "employer123", domain.RoleEmployer},
}

const employerEmail = "hr@techcorp.com"

func strPtr(s string) *string { return &s }

var jobs = []domain.Job{
	{
		Title:          "Senior Full-Stack Developer",
		Description:    "Build and maintain our job board platform across the API and the React frontend.",
		Location:       "Remote",
		SalaryRange:    strPtr("$80k - $120k"),
		EmploymentType: domain.EmploymentFullTime,
		Requirements:   strPtr("5+ years of web development experience"),
	},
	{
		Title:          "Junior Data Analyst",
		Description:    "Turn hiring funnel data into weekly reports for the recruiting team.",
		Location:       "New York",
		SalaryRange:    strPtr("$50k - $70k"),
		EmploymentType: domain.EmploymentContract,
		Requirements:   strPtr("SQL and spreadsheet skills"),
	},
	{
		Title:          "UX Designer",
		Description:    "Design candidate and employer flows for web and mobile.",
		Location:       "London",
		SalaryRange:    strPtr("£45k - £65k"),
		EmploymentType: domain.EmploymentPartTime,
		Requirements:   strPtr("A portfolio of shipped product work"),
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(slog.LevelInfo)

	ctx := context.Background()
	pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Log.Error("Failed to apply schema", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)

	if err := seedUsers(ctx, userRepo, security.BcryptHasher{}); err != nil {
		logger.Log.Error("Seeding users failed", "error", err)
		os.Exit(1)
	}
	if err := seedJobs(ctx, userRepo, jobRepo); err != nil {
		logger.Log.Error("Seeding jobs failed", "error", err)
		os.Exit(1)
	}
	logger.Log.Info("Seed complete")
}

func seedUsers(ctx context.Context, repo domain.UserRepository, hasher security.PasswordHasher) error {
	for _, u := range users {
		_, err := repo.GetByEmail(ctx, u.email)
		if err == nil {
			logger.Log.Info("User exists, skipping", "email", u.email)
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		hash, err := hasher.Hash(u.password)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, &domain.User{Name: u.name, Email: u.email, PasswordHash: hash, Role: u.role}); err != nil {
			return err
		}
		logger.Log.Info("User created", "email", u.email, "role", u.role)
	}
	return nil
}

func seedJobs(ctx context.Context, userRepo domain.UserRepository, jobRepo domain.JobRepository) error {
	employer, err := userRepo.GetByEmail(ctx, employerEmail)
	if err != nil {
		return err
	}

	existing, err := jobRepo.ListWithEmployer(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, j := range existing {
		if j.EmployerID == employer.ID {
			seen[j.Title] = true
		}
	}

	for _, j := range jobs {
		if seen[j.Title] {
			logger.Log.Info("Job exists, skipping", "title", j.Title)
			continue
		}
		job := j
		job.EmployerID = employer.ID
		if err := jobRepo.Create(ctx, &job); err != nil {
			return err
		}
		logger.Log.Info("Job created", "title", job.Title)
	}
	return nil
}
