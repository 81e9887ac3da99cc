package project

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

// SectionRow is any per-project section table with a unique project_id.
type SectionRow interface {
	TableName() string
}

// SectionRepo reads and writes the single row a project owns in one
// section table. Writes are last-write-wins.
type SectionRepo[T SectionRow] interface {
	Get(dbc dbctx.Context, projectID uuid.UUID) (*T, error)
	Upsert(dbc dbctx.Context, row *T) error
	InsertIfMissing(dbc dbctx.Context, row *T) (bool, error)
	Table() string
}

type sectionRepo[T SectionRow] struct {
	db    *gorm.DB
	log   *logger.Logger
	table string
}

func NewSectionRepo[T SectionRow](db *gorm.DB, baseLog *logger.Logger) SectionRepo[T] {
	var zero T
	table := zero.TableName()
	return &sectionRepo[T]{
		db:    db,
		log:   baseLog.With("repo", "SectionRepo", "table", table),
		table: table,
	}
}

func (r *sectionRepo[T]) Table() string { return r.table }

// Get returns nil, nil when the project has no row yet.
func (r *sectionRepo[T]) Get(dbc dbctx.Context, projectID uuid.UUID) (*T, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out T
	res := transaction.WithContext(dbc.Ctx).
		Where("project_id = ?", projectID).
		Limit(1).
		Find(&out)
	if res.Error != nil {
		return nil, fmt.Errorf("%s: get: %w", r.table, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &out, nil
}

func (r *sectionRepo[T]) Upsert(dbc dbctx.Context, row *T) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	err := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}},
			UpdateAll: true,
		}).
		Create(row).Error
	if err != nil {
		return fmt.Errorf("%s: upsert: %w", r.table, err)
	}
	return nil
}

// InsertIfMissing creates the row unless one already exists for the project
// and reports whether it inserted.
func (r *sectionRepo[T]) InsertIfMissing(dbc dbctx.Context, row *T) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, fmt.Errorf("%s: insert: %w", r.table, res.Error)
	}
	return res.RowsAffected > 0, nil
}
