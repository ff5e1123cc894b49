// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

// Command seed loads the initial coaching curriculum and the default
// affirmation templates into the database.
//
// It is idempotent: rows are keyed by title, and existing titles are left
// untouched, so the command can run on every deploy.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/parityhq/parity-api/internal/platform/config"
	"github.com/parityhq/parity-api/internal/platform/constants"
	"github.com/parityhq/parity-api/internal/platform/migration"
	pgstore "github.com/parityhq/parity-api/internal/platform/postgres"
	"github.com/parityhq/parity-api/pkg/uuid"
)

// seedModule is one curriculum entry. Content is raw JSON exactly as the
// mobile client renders it.
type seedModule struct {
	Title       string
	Description string
	Category    string
	Order       int
	Content     string
}

// seedTemplate is one default affirmation template.
type seedTemplate struct {
	Title    string
	Content  string
	Category string
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", constants.AppName+"-seed"))

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fatal(log, "load configuration", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		fatal(log, "connect to postgres", err)
	}
	defer pool.Close()

	// Seeding into an un-migrated database is a common first-run mistake;
	// running the migrations here makes the command self-sufficient.
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		fatal(log, "run migrations", err)
	}

	inserted, err := seedModules(ctx, pool)
	if err != nil {
		fatal(log, "seed coaching modules", err)
	}
	log.Info("coaching_modules_seeded", slog.Int("inserted", inserted))

	inserted, err = seedTemplates(ctx, pool)
	if err != nil {
		fatal(log, "seed affirmation templates", err)
	}
	log.Info("affirmation_templates_seeded", slog.Int("inserted", inserted))

	log.Info("seeding_complete")
}

// seedModules inserts any curriculum modules not already present.
func seedModules(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	const query = `
		INSERT INTO modules (id, title, description, content, category, "order", created_at)
		SELECT $1, $2, $3, $4, $5, $6, now()
		WHERE NOT EXISTS (SELECT 1 FROM modules WHERE title = $2)`

	inserted := 0
	for _, module := range coachingModules() {
		tag, err := pool.Exec(ctx, query,
			uuid.New(),
			module.Title,
			module.Description,
			module.Content,
			module.Category,
			module.Order,
		)
		if err != nil {
			return inserted, fmt.Errorf("seed_module_insert_failed (%s): %w", module.Title, err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// seedTemplates inserts any default affirmation templates not already present.
func seedTemplates(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	const query = `
		INSERT INTO affirmation_templates (id, title, content, category, is_default, created_at)
		SELECT $1, $2, $3, $4, TRUE, now()
		WHERE NOT EXISTS (SELECT 1 FROM affirmation_templates WHERE title = $2)`

	inserted := 0
	for _, template := range affirmationTemplates() {
		tag, err := pool.Exec(ctx, query,
			uuid.New(),
			template.Title,
			template.Content,
			template.Category,
		)
		if err != nil {
			return inserted, fmt.Errorf("seed_template_insert_failed (%s): %w", template.Title, err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

func coachingModules() []seedModule {
	return []seedModule{
		{
			Title:       "Active Listening Fundamentals",
			Description: "Learn the art of truly hearing and understanding your partner",
			Category:    "active_listening",
			Order:       1,
			Content: `{
				"sections": [
					{"title": "What is Active Listening?", "text": "Active listening is more than just hearing words. It's about fully concentrating, understanding, responding, and remembering what is being said."},
					{"title": "Key Techniques", "text": "Use reflective statements, ask clarifying questions, and provide verbal and non-verbal feedback."}
				],
				"exercises": [
					{"title": "Practice Reflection", "instructions": "Next time your partner shares something, try repeating back what you heard in your own words."}
				]
			}`,
		},
		{
			Title:       "Conflict Resolution Basics",
			Description: "Transform disagreements into opportunities for growth",
			Category:    "conflict_resolution",
			Order:       2,
			Content: `{
				"sections": [
					{"title": "Understanding Conflict", "text": "Conflict is natural in relationships. What matters is how we handle it."},
					{"title": "The 5-Step Approach", "text": "1. Stay calm 2. Listen actively 3. Express feelings 4. Find common ground 5. Collaborate on solutions"}
				],
				"exercises": [
					{"title": "Emotion Check-In", "instructions": "Before responding in a disagreement, pause and identify your emotions."}
				]
			}`,
		},
		{
			Title:       "Building Empathy",
			Description: "Strengthen your emotional connection through empathy",
			Category:    "empathy",
			Order:       3,
			Content: `{
				"sections": [
					{"title": "What is Empathy?", "text": "Empathy is the ability to understand and share the feelings of another person."},
					{"title": "Empathy vs Sympathy", "text": "Empathy is feeling with someone, while sympathy is feeling for someone."}
				],
				"exercises": [
					{"title": "Perspective Taking", "instructions": "When your partner is upset, imagine the situation from their perspective before responding."}
				]
			}`,
		},
		{
			Title:       "Expressing Appreciation",
			Description: "Learn to recognize and celebrate the good in your relationship",
			Category:    "appreciation",
			Order:       4,
			Content: `{
				"sections": [
					{"title": "Why Appreciation Matters", "text": "Regular expressions of gratitude strengthen bonds and increase relationship satisfaction."},
					{"title": "How to Show Appreciation", "text": "Be specific, be genuine, and make it regular - not just on special occasions."}
				],
				"exercises": [
					{"title": "Daily Gratitude", "instructions": "Share one thing you appreciate about your partner each day this week."}
				]
			}`,
		},
	}
}

func affirmationTemplates() []seedTemplate {
	return []seedTemplate{
		{Title: "Daily Gratitude", Content: "I'm grateful for you and all the ways you make my life better.", Category: "gratitude"},
		{Title: "Words of Encouragement", Content: "I believe in you and I'm here to support you no matter what.", Category: "encouragement"},
		{Title: "Love Reminder", Content: "Just wanted to remind you how much I love and appreciate you.", Category: "love"},
		{Title: "Strength Acknowledgment", Content: "I see how hard you're working and I'm so proud of your strength.", Category: "encouragement"},
		{Title: "Comfort in Difficulty", Content: "I know things are tough right now. I'm here for you, always.", Category: "support"},
		{Title: "Celebrating You", Content: "You are amazing just as you are. Thank you for being you.", Category: "love"},
		{Title: "Partnership Pride", Content: "I'm so lucky to have you as my partner. We make a great team!", Category: "gratitude"},
		{Title: "Daily Check-in", Content: "Thinking of you today. How are you feeling?", Category: "support"},
	}
}

func fatal(log *slog.Logger, context string, err error) {
	log.Error("seed failure", slog.String("context", context), slog.Any("error", err))
	os.Exit(1)
}
