package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SkillDB records bridge promotion history in Postgres. It is optional: when
// DATABASE_URL is unset the bridge still writes files, it just keeps no
// queryable audit trail.

var skillDB *SkillDB

// SetSkillDB sets the package-level skill DB instance.
func SetSkillDB(db *SkillDB) { skillDB = db }

// GetSkillDB returns the package-level skill DB instance (may be nil).
func GetSkillDB() *SkillDB { return skillDB }

// SkillDB holds the pgx connection pool for promotion records.
type SkillDB struct {
	pool *pgxpool.Pool
}

const skillSchema = `CREATE TABLE IF NOT EXISTS skill_promotions (
	id          BIGSERIAL PRIMARY KEY,
	skill       TEXT NOT NULL,
	source      TEXT NOT NULL,
	decision    TEXT NOT NULL,
	evaluation  TEXT,
	files       TEXT,
	promoted_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// ConnectSkillDB creates a pgx pool and ensures the promotions table exists.
func ConnectSkillDB(ctx context.Context, databaseURL string) (*SkillDB, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 4
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, skillSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init skill schema: %w", err)
	}

	slog.Info("skill postgres connected", slog.String("addr", config.ConnConfig.Host))
	return &SkillDB{pool: pool}, nil
}

func (db *SkillDB) Close() {
	db.pool.Close()
}

// RecordPromotion stores the outcome of one bridge run.
func (db *SkillDB) RecordPromotion(ctx context.Context, skill, source, decision, evaluation string, files []string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO skill_promotions (skill, source, decision, evaluation, files)
		 VALUES ($1, $2, $3, $4, $5)`,
		skill, source, decision, evaluation, strings.Join(files, "\n"),
	)
	if err != nil {
		return fmt.Errorf("record promotion: %w", err)
	}
	return nil
}

// PromotionRecord is one row of bridge history.
type PromotionRecord struct {
	ID         int64     `json:"id"`
	Skill      string    `json:"skill"`
	Source     string    `json:"source"`
	Decision   string    `json:"decision"`
	PromotedAt time.Time `json:"promoted_at"`
}

// ListPromotions returns recent bridge outcomes, newest first.
func (db *SkillDB) ListPromotions(ctx context.Context, limit int) ([]PromotionRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, skill, source, decision, promoted_at
		 FROM skill_promotions ORDER BY promoted_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	defer rows.Close()

	var records []PromotionRecord
	for rows.Next() {
		var r PromotionRecord
		if err := rows.Scan(&r.ID, &r.Skill, &r.Source, &r.Decision, &r.PromotedAt); err != nil {
			return nil, fmt.Errorf("scan promotion: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
