package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskify/internal/config"
	"taskify/internal/db"
	"taskify/internal/model"
	"taskify/internal/pagination"
	"taskify/internal/repository"
)

const (
	demoEmail    = "demo@taskify.local"
	demoName     = "Demo User"
	demoPassword = "password123"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.RefreshToken{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	user, err := ensureDemoUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}
	log.Printf("Demo user ready: %s (login %s / %s)", user.Name, demoEmail, demoPassword)

	created, skipped, err := seedTasks(ctx, taskRepo, user.ID)
	if err != nil {
		log.Fatalf("Failed to seed tasks: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Tasks created: %d", created)
	log.Printf("  - Tasks already present: %d", skipped)
}

// ensureDemoUser fetches the demo user, creating it on first run.
func ensureDemoUser(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	user, err := repo.FindByEmail(ctx, demoEmail)
	if err == nil {
		return user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user = &model.User{
		Name:         demoName,
		Email:        demoEmail,
		PasswordHash: string(hash),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// seedTasks spreads sample tasks over today and the surrounding days so the
// list filters and the today view have data to show.
func seedTasks(ctx context.Context, repo repository.TaskRepository, userID uint) (created, skipped int, err error) {
	today := time.Now()
	date := func(offsetDays int) string {
		return today.AddDate(0, 0, offsetDays).Format("2006-01-02")
	}

	samples := []model.Task{
		{Title: "Buy groceries", Description: "Milk, eggs, bread", Date: date(0), Priority: model.PriorityMedium},
		{Title: "Pay rent", Date: date(0), Priority: model.PriorityHigh},
		{Title: "Team standup notes", Description: "Summarize blockers", Date: date(-1), Priority: model.PriorityLow, Completed: true},
		{Title: "Renew gym membership", Date: date(3), Priority: model.PriorityLow},
		{Title: "Dentist appointment", Date: date(7), Priority: model.PriorityHigh},
		{Title: "Weekly review", Date: date(1), Priority: model.PriorityMedium,
			RepeatDays: []string{"MONDAY"}, ExcludedDates: []string{date(8)}},
	}

	existing, _, err := repo.FindByUser(ctx, userID, pagination.Params{})
	if err != nil {
		return 0, 0, err
	}
	have := make(map[string]bool, len(existing))
	for _, t := range existing {
		have[t.Title+"|"+t.Date] = true
	}

	for i := range samples {
		task := samples[i]
		if have[task.Title+"|"+task.Date] {
			skipped++
			continue
		}
		task.UserID = userID
		if err := repo.Create(ctx, &task); err != nil {
			return created, skipped, err
		}
		created++
	}
	return created, skipped, nil
}
