package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/secureexam/portal-backend/internal/config"
	"github.com/secureexam/portal-backend/internal/database"
	"github.com/secureexam/portal-backend/internal/logger"
	"github.com/secureexam/portal-backend/internal/model"
	"github.com/secureexam/portal-backend/internal/repository"
	"github.com/secureexam/portal-backend/internal/service"
)

// Seeds a demo dataset: one admin, three students, two exams with
// questions, and assignments for every student.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	resultRepo := repository.NewResultRepository(pool)

	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, authService)
	examService := service.NewExamService(examRepo, questionRepo)
	assignmentService := service.NewAssignmentService(resultRepo, examRepo, userRepo, rdb)

	fmt.Println("=== Seeding Sample Data ===")

	admin := seedUser(ctx, userService, "admin", "admin@examportal.local", "admin123", true)

	studentSeeds := []struct{ username, email string }{
		{"student1", "student1@examportal.local"},
		{"student2", "student2@examportal.local"},
		{"student3", "student3@examportal.local"},
	}
	students := make([]*model.User, 0, len(studentSeeds))
	for _, s := range studentSeeds {
		students = append(students, seedUser(ctx, userService, s.username, s.email, "student123", false))
	}

	examSeeds := []struct {
		req       model.CreateExamRequest
		questions []model.AddQuestionRequest
	}{
		{
			req: model.CreateExamRequest{
				Title:           "Mathematics Basics",
				Description:     "Arithmetic and basic algebra",
				DurationMinutes: 30,
				TotalMarks:      10,
				PassingMarks:    6,
			},
			questions: []model.AddQuestionRequest{
				{QuestionText: "What is 5 + 3?", OptionA: "6", OptionB: "7", OptionC: "8", OptionD: "9", CorrectOption: "C", Marks: 5},
				{QuestionText: "What is 12 / 4?", OptionA: "3", OptionB: "4", OptionC: "6", OptionD: "2", CorrectOption: "A", Marks: 5},
			},
		},
		{
			req: model.CreateExamRequest{
				Title:           "General Science",
				Description:     "Physics and chemistry fundamentals",
				DurationMinutes: 20,
				TotalMarks:      10,
				PassingMarks:    5,
			},
			questions: []model.AddQuestionRequest{
				{QuestionText: "Water boils at what temperature (°C) at sea level?", OptionA: "90", OptionB: "100", OptionC: "110", OptionD: "120", CorrectOption: "B", Marks: 5},
				{QuestionText: "What is the chemical symbol for gold?", OptionA: "Ag", OptionB: "Go", OptionC: "Au", OptionD: "Gd", CorrectOption: "C", Marks: 5},
			},
		},
	}

	for _, seed := range examSeeds {
		exam, err := examService.Create(ctx, admin.ID, &seed.req)
		if err != nil {
			log.Fatal().Err(err).Str("title", seed.req.Title).Msg("Failed to create exam")
		}
		fmt.Printf("Created exam %q (%s)\n", exam.Title, exam.ID)

		for i := range seed.questions {
			if _, err := examService.AddQuestion(ctx, exam.ID, &seed.questions[i]); err != nil {
				log.Fatal().Err(err).Msg("Failed to add question")
			}
		}

		for _, student := range students {
			_, err := assignmentService.Assign(ctx, exam.ID, student.ID)
			if err != nil && !errors.Is(err, service.ErrAlreadyAssigned) {
				log.Fatal().Err(err).Int("user_id", student.ID).Msg("Failed to assign exam")
			}
		}
	}

	fmt.Println("\nDone. Credentials:")
	fmt.Println("  admin / admin123")
	fmt.Println("  student1..3 / student123")
}

func seedUser(ctx context.Context, userService *service.UserService, username, email, password string, isAdmin bool) *model.User {
	user, err := userService.Create(ctx, &model.CreateUserRequest{
		Username: username,
		Email:    email,
		Password: password,
		IsAdmin:  isAdmin,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUser) {
			existing, err := userService.GetByUsername(ctx, username)
			if err == nil {
				fmt.Printf("User %q already exists (id %d)\n", username, existing.ID)
				return existing
			}
		}
		fmt.Printf("Failed to seed user %s: %v\n", username, err)
		os.Exit(1)
	}
	fmt.Printf("Created user %q (id %d)\n", user.Username, user.ID)
	return user
}
