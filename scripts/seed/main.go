// seed/main.go
//
// Creates the schema and seeds the life-problem taxonomy, chapters, a
// starter set of verses, and weighted verse-problem associations.
//
// Usage:
//   go run scripts/seed/main.go            # schema + data
//   go run scripts/seed/main.go -embed     # also backfill verse embeddings
//
// Environment variables:
//   POSTGRES_URI          - PostgreSQL connection string (required)
//   EMBEDDING_PROVIDER    - "custom" or "vertex" (for -embed)
//   EMBEDDING_SERVICE_URL - custom embedding service URL (for -embed)
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pgvector/pgvector-go"

	"github.com/gita-guidance-search-api/internal/taxonomy"
	pkgconfig "github.com/gita-guidance-search-api/pkg/schema/config"
	"github.com/gita-guidance-search-api/pkg/schema/db"
	pkgservices "github.com/gita-guidance-search-api/pkg/schema/services"
)

type problemSeed struct {
	Slug         taxonomy.Slug
	Name         string
	Icon         string
	Color        string
	DisplayOrder int
}

var problems = []problemSeed{
	{taxonomy.Anxiety, "Anxiety", "wind", "#7c9fd6", 1},
	{taxonomy.Fear, "Fear", "shield", "#b07cd6", 2},
	{taxonomy.Confusion, "Confusion", "fog", "#9aa5b1", 3},
	{taxonomy.Leadership, "Leadership", "flag", "#d6a57c", 4},
	{taxonomy.Relationships, "Relationships", "heart", "#d67c8e", 5},
	{taxonomy.SelfDoubt, "Self-Doubt", "mirror", "#7cd6b8", 6},
	{taxonomy.Anger, "Anger", "flame", "#d6807c", 7},
	{taxonomy.DecisionMaking, "Decision-Making", "signpost", "#c9d67c", 8},
}

type verseSeed struct {
	Chapter         int
	Verse           int
	EnglishMeaning  string
	LifeApplication string
	// problem slug -> relevance score
	Associations map[taxonomy.Slug]float64
}

var verses = []verseSeed{
	{
		Chapter: 2, Verse: 47,
		EnglishMeaning:  "You have a right to your actions alone, never to their fruits. Let not the fruits of action be your motive, nor let your attachment be to inaction.",
		LifeApplication: "Pour yourself into the work in front of you and release your grip on the outcome.",
		Associations:    map[taxonomy.Slug]float64{taxonomy.DecisionMaking: 0.95, taxonomy.Leadership: 0.9, taxonomy.Anxiety: 0.75},
	},
	{
		Chapter: 2, Verse: 14,
		EnglishMeaning:  "Contacts of the senses with their objects give rise to cold and heat, pleasure and pain. They come and go and are impermanent; bear them patiently.",
		LifeApplication: "Discomfort passes. You do not have to act on every wave of feeling.",
		Associations:    map[taxonomy.Slug]float64{taxonomy.Anxiety: 0.85, taxonomy.Fear: 0.6},
	},
	{
		Chapter: 18, Verse: 66,
		EnglishMeaning:  "Abandon all varieties of duty and take refuge in me alone. I shall liberate you from all faults; do not grieve.",
		LifeApplication: "When every path looks wrong, set down the burden of having to be faultless.",
		Associations:    map[taxonomy.Slug]float64{taxonomy.Fear: 0.95, taxonomy.Anxiety: 0.9, taxonomy.Confusion: 0.6},
	},
	{
		Chapter: 2, Verse: 62,
		EnglishMeaning:  "Dwelling on sense objects breeds attachment; from attachment springs desire, and from desire, anger.",
		LifeApplication: "Trace your anger back to the wish underneath it before you act on it.",
		Associations:    map[taxonomy.Slug]float64{taxonomy.Anger: 0.95},
	},
	{
		Chapter: 6, Verse: 5,
		EnglishMeaning:  "Let a man lift himself by his own self; let him not degrade himself. The self alone is the friend of the self, and the self alone its enemy.",
		LifeApplication: "The voice that doubts you is yours, which means it can also be retrained by you.",
		Associations:    map[taxonomy.Slug]float64{taxonomy.SelfDoubt: 0.95},
	},
	{
		Chapter: 2, Verse: 3,
		EnglishMeaning:  "Yield not to this unmanliness; it does not become you. Cast off this petty faintheartedness and arise.",
		LifeApplication: "Weakness of heart is a mood, not a verdict. Stand up anyway.",
		Associations:    map[taxonomy.Slug]float64{taxonomy.SelfDoubt: 0.85, taxonomy.Fear: 0.8},
	},
	{
		Chapter: 2, Verse: 7,
		EnglishMeaning:  "My nature is overpowered by pity and weakness; my mind is confused about duty. Tell me decisively what is good for me. I am your disciple; instruct me.",
		LifeApplication: "Admitting you are lost, and asking for help, is itself the first clear step.",
		Associations:    map[taxonomy.Slug]float64{taxonomy.Confusion: 0.95, taxonomy.DecisionMaking: 0.8},
	},
	{
		Chapter: 3, Verse: 21,
		EnglishMeaning:  "Whatever a great man does, others follow. Whatever standard he sets, the world pursues.",
		LifeApplication: "Lead by what you do when nobody requires it of you.",
		Associations:    map[taxonomy.Slug]float64{taxonomy.Leadership: 0.9},
	},
	{
		Chapter: 12, Verse: 13,
		EnglishMeaning:  "He who hates no being, who is friendly and compassionate to all, free from possessiveness and ego, even-minded in pain and pleasure, and forgiving.",
		LifeApplication: "Meet difficult people with steadiness instead of scorekeeping.",
		Associations:    map[taxonomy.Slug]float64{taxonomy.Relationships: 0.9, taxonomy.Anger: 0.6},
	},
	{
		Chapter: 6, Verse: 26,
		EnglishMeaning:  "Wherever the restless and unsteady mind wanders, from there let him restrain it and bring it back under the control of the self alone.",
		LifeApplication: "You cannot stop the mind from wandering, only practice the return.",
		Associations:    map[taxonomy.Slug]float64{taxonomy.Anxiety: 0.8, taxonomy.Confusion: 0.5},
	},
}

func main() {
	embed := flag.Bool("embed", false, "Backfill verse embeddings through the embeddings service")
	flag.Parse()

	godotenv.Load()

	cfg := pkgconfig.GetConfig()
	ctx := context.Background()

	conn, err := db.Connect(ctx, cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	if err := createSchema(ctx, conn, cfg.EmbeddingDimensions); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Println("Schema ready")

	if err := seedProblems(ctx, conn); err != nil {
		log.Fatalf("Failed to seed problems: %v", err)
	}
	log.Printf("Seeded %d problem categories", len(problems))

	if err := seedVerses(ctx, conn); err != nil {
		log.Fatalf("Failed to seed verses: %v", err)
	}
	log.Printf("Seeded %d verses with associations", len(verses))

	if *embed {
		if err := backfillEmbeddings(ctx, conn); err != nil {
			log.Fatalf("Failed to backfill embeddings: %v", err)
		}
	}

	log.Println("Seed complete")
}

func createSchema(ctx context.Context, conn *sqlx.DB, dims int) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS chapters (
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			chapter_number int NOT NULL UNIQUE
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS shloks (
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			chapter_id uuid NOT NULL REFERENCES chapters(id),
			verse_number int NOT NULL,
			english_meaning text NOT NULL,
			life_application text,
			embedding vector(%d),
			UNIQUE (chapter_id, verse_number)
		)`, dims),
		`CREATE TABLE IF NOT EXISTS problems (
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			name text NOT NULL,
			slug text NOT NULL UNIQUE,
			icon text,
			color text,
			display_order int NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS shlok_problems (
			shlok_id uuid NOT NULL REFERENCES shloks(id) ON DELETE CASCADE,
			problem_id uuid NOT NULL REFERENCES problems(id) ON DELETE CASCADE,
			relevance_score double precision NOT NULL,
			PRIMARY KEY (shlok_id, problem_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_shlok_problems_problem ON shlok_problems(problem_id)`,
	}

	for _, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}

func seedProblems(ctx context.Context, conn *sqlx.DB) error {
	for _, p := range problems {
		_, err := conn.ExecContext(ctx, `
			INSERT INTO problems (name, slug, icon, color, display_order)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (slug) DO UPDATE
			SET name = EXCLUDED.name, icon = EXCLUDED.icon,
			    color = EXCLUDED.color, display_order = EXCLUDED.display_order
		`, p.Name, string(p.Slug), p.Icon, p.Color, p.DisplayOrder)
		if err != nil {
			return fmt.Errorf("upsert problem %s: %w", p.Slug, err)
		}
	}
	return nil
}

func seedVerses(ctx context.Context, conn *sqlx.DB) error {
	for _, v := range verses {
		var chapterID string
		err := conn.QueryRowxContext(ctx, `
			INSERT INTO chapters (chapter_number) VALUES ($1)
			ON CONFLICT (chapter_number) DO UPDATE SET chapter_number = EXCLUDED.chapter_number
			RETURNING id::text
		`, v.Chapter).Scan(&chapterID)
		if err != nil {
			return fmt.Errorf("upsert chapter %d: %w", v.Chapter, err)
		}

		var shlokID string
		err = conn.QueryRowxContext(ctx, `
			INSERT INTO shloks (chapter_id, verse_number, english_meaning, life_application)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (chapter_id, verse_number) DO UPDATE
			SET english_meaning = EXCLUDED.english_meaning,
			    life_application = EXCLUDED.life_application
			RETURNING id::text
		`, chapterID, v.Verse, v.EnglishMeaning, v.LifeApplication).Scan(&shlokID)
		if err != nil {
			return fmt.Errorf("upsert verse %d.%d: %w", v.Chapter, v.Verse, err)
		}

		for slug, score := range v.Associations {
			_, err := conn.ExecContext(ctx, `
				INSERT INTO shlok_problems (shlok_id, problem_id, relevance_score)
				SELECT $1, p.id, $3 FROM problems p WHERE p.slug = $2
				ON CONFLICT (shlok_id, problem_id) DO UPDATE
				SET relevance_score = EXCLUDED.relevance_score
			`, shlokID, string(slug), score)
			if err != nil {
				return fmt.Errorf("upsert association %d.%d -> %s: %w", v.Chapter, v.Verse, slug, err)
			}
		}
	}
	return nil
}

func backfillEmbeddings(ctx context.Context, conn *sqlx.DB) error {
	embeddingsSvc := pkgservices.GetEmbeddingsService()
	if err := pkgservices.GetInitError(); err != nil {
		return fmt.Errorf("init embeddings service: %w", err)
	}

	rows, err := conn.QueryxContext(ctx, `
		SELECT id::text, english_meaning FROM shloks WHERE embedding IS NULL
	`)
	if err != nil {
		return fmt.Errorf("list verses without embeddings: %w", err)
	}
	defer rows.Close()

	var ids []string
	var texts []string
	for rows.Next() {
		var id, meaning string
		if err := rows.Scan(&id, &meaning); err != nil {
			return fmt.Errorf("scan verse: %w", err)
		}
		ids = append(ids, id)
		texts = append(texts, meaning)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate verses: %w", err)
	}
	if len(ids) == 0 {
		log.Println("All verses already embedded")
		return nil
	}

	embeddings, err := embeddingsSvc.EmbedVerses(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed verses: %w", err)
	}
	if len(embeddings) != len(ids) {
		return fmt.Errorf("embedding count mismatch: got %d, want %d", len(embeddings), len(ids))
	}

	for i, id := range ids {
		f32 := make([]float32, len(embeddings[i]))
		for j, val := range embeddings[i] {
			f32[j] = float32(val)
		}
		_, err := conn.ExecContext(ctx, `
			UPDATE shloks SET embedding = $1 WHERE id = $2
		`, pgvector.NewVector(f32), id)
		if err != nil {
			return fmt.Errorf("store embedding for %s: %w", id, err)
		}
	}

	log.Printf("Embedded %d verses", len(ids))
	return nil
}
