// Package rescache implements the optional result cache named in
// SPEC_FULL.md's DOMAIN STACK: keyed by source digest, it lets
// a caller running the same AST fixture and class-context pair twice
// (the CLI re-checking an unchanged file in a batch) skip re-running
// Generation and Unification entirely. It is grounded on
// termfx/morfx's db/sqlite.go: a small GORM model, AutoMigrate on Open,
// and upsert-by-primary-key on Store.
//
// What is cached is the outcome of one checker.Check call — its error
// list — rather than the raw Finished position→Name map, since
// reconstructing a names.Name from a persisted string would require a
// parser this module deliberately doesn't have (lexing/parsing are
// external collaborators, spec.md §1). A cache hit therefore answers
// "did this exact (AST, class context) pair type-check, and with what
// errors" without re-deriving any Name — which is exactly the
// "Idempotence of naming" testable property (spec.md §8) exercised as a
// real cache-hit/miss code path instead of only a unit test assertion:
// checking the same input twice must yield the same stored outcome.
package rescache

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oocheck/oocheck/internal/checkerr"
	"github.com/oocheck/oocheck/internal/srcpos"
)

// entry is the persisted row: one checked (AST, class-context) pair,
// identified by its caller-computed digest.
type entry struct {
	Digest    string `gorm:"primaryKey;type:varchar(64)"`
	RunID     string `gorm:"type:varchar(40)"`
	ErrorsRaw string `gorm:"type:text"`
	CreatedAt time.Time
}

func (entry) TableName() string { return "resolved_runs" }

// StoredError is the serializable projection of a checkerr.Error: enough
// to report the same diagnostic again without a second unification pass.
type StoredError struct {
	Kind    checkerr.Kind   `json:"kind"`
	Pos     srcpos.Position `json:"pos"`
	Message string          `json:"message"`
}

// Cache wraps a GORM handle over a sqlite database holding cached check
// outcomes.
type Cache struct {
	db *gorm.DB
}

// Open connects to the sqlite database at dsn (a file path, or ":memory:"
// for tests) and ensures the schema exists.
func Open(dsn string) (*Cache, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("rescache: connect: %w", err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("rescache: migrate: %w", err)
	}
	return &Cache{db: db}, nil
}

// Lookup reports the stored errors for digest, if any prior Store call
// recorded an outcome for it.
func (c *Cache) Lookup(digest string) ([]StoredError, bool, error) {
	var row entry
	err := c.db.First(&row, "digest = ?", digest).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("rescache: lookup: %w", err)
	}
	var errs []StoredError
	if row.ErrorsRaw != "" {
		if err := json.Unmarshal([]byte(row.ErrorsRaw), &errs); err != nil {
			return nil, false, fmt.Errorf("rescache: decode: %w", err)
		}
	}
	return errs, true, nil
}

// Store records errs against digest, overwriting any prior outcome for
// the same digest (upsert-by-primary-key, the same pattern morfx's
// db.Stage upserts use).
func (c *Cache) Store(digest, runID string, errs checkerr.List) error {
	stored := make([]StoredError, len(errs))
	for i, e := range errs {
		stored[i] = StoredError{Kind: e.Kind, Pos: e.Pos, Message: e.Message}
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("rescache: encode: %w", err)
	}
	row := entry{Digest: digest, RunID: runID, ErrorsRaw: string(raw), CreatedAt: time.Now()}
	return c.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "digest"}},
		DoUpdates: clause.AssignmentColumns([]string{"run_id", "errors_raw", "created_at"}),
	}).Create(&row).Error
}
