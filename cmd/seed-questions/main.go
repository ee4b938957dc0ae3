package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/prepiq/prepiq-backend/internal/config"
	"github.com/prepiq/prepiq-backend/internal/database"
	"github.com/prepiq/prepiq-backend/internal/logger"
	"github.com/prepiq/prepiq-backend/internal/model"
	"github.com/prepiq/prepiq-backend/internal/repository"
)

// seedFile is the on-disk format consumed by this tool: a subject catalog
// with nested questions, one file per exam series.
type seedFile struct {
	Subjects []struct {
		Name      string `json:"name"`
		Icon      string `json:"icon"`
		Questions []struct {
			Topic            string   `json:"topic"`
			Text             string   `json:"text"`
			TextHindi        string   `json:"text_hindi"`
			Options          []string `json:"options"`
			CorrectAnswer    string   `json:"correct_answer"`
			Explanation      string   `json:"explanation"`
			ExplanationHindi string   `json:"explanation_hindi"`
			Difficulty       string   `json:"difficulty"`
			ExamReference    string   `json:"exam_reference"`
		} `json:"questions"`
	} `json:"subjects"`
}

func main() {
	var path string
	flag.StringVar(&path, "file", "seed/questions.json", "Path to the seed file")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to read seed file")
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		log.Fatal().Err(err).Msg("Invalid seed file")
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	subjectRepo := repository.NewSubjectRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)

	fmt.Printf("=== Seeding %d Subjects ===\n", len(seed.Subjects))

	totalQuestions := 0
	for _, sub := range seed.Subjects {
		existing, err := subjectRepo.GetByName(ctx, sub.Name)
		switch {
		case err == nil:
			fmt.Printf("Subject %q exists (ID: %d)\n", existing.Name, existing.ID)
		case err == pgx.ErrNoRows:
			s := &model.Subject{Name: sub.Name, Icon: sub.Icon}
			if err := subjectRepo.Create(ctx, s); err != nil {
				log.Fatal().Err(err).Str("subject", sub.Name).Msg("Failed to create subject")
			}
			fmt.Printf("Created subject %q (ID: %d)\n", s.Name, s.ID)
		default:
			log.Fatal().Err(err).Str("subject", sub.Name).Msg("Failed to check subject")
		}

		for i, q := range sub.Questions {
			question := &model.Question{
				Subject:          sub.Name,
				Topic:            q.Topic,
				Text:             q.Text,
				TextHindi:        q.TextHindi,
				Options:          q.Options,
				CorrectAnswer:    q.CorrectAnswer,
				Explanation:      q.Explanation,
				ExplanationHindi: q.ExplanationHindi,
				Difficulty:       q.Difficulty,
				ExamReference:    q.ExamReference,
				OrderNum:         i + 1,
			}
			if err := questionRepo.Create(ctx, question); err != nil {
				fmt.Printf("Error creating question %d in %q: %v\n", i+1, sub.Name, err)
				continue
			}
			totalQuestions++
		}
		fmt.Printf("Seeded %d questions into %q\n", len(sub.Questions), sub.Name)
	}

	fmt.Printf("\nSeed completed! %d questions across %d subjects.\n", totalQuestions, len(seed.Subjects))
}
