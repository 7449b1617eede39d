package database

import (
	"errors"

	"blogward/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Filter selects rows by field equality. Keys are column names.
type Filter map[string]any

// Store is a generic repository over a single entity type. Concrete repos
// compose it rather than inheriting deep hierarchies. Every mutating
// operation commits its own transaction; storage failures are logged and
// re-raised to the caller, never swallowed.
type Store[T any] struct {
	db     *gorm.DB
	entity string
	logger zerolog.Logger
}

// NewStore wraps db with the operation set shared by all repositories.
// The entity name only feeds logs and error messages.
func NewStore[T any](db *gorm.DB, entity string) *Store[T] {
	return &Store[T]{
		db:     db,
		entity: entity,
		logger: log.With().Str("entity", entity).Logger(),
	}
}

// DB exposes the underlying connection for schema inspection
func (s *Store[T]) DB() *gorm.DB {
	return s.db
}

// FindByID returns the entity with the given primary key, or nil when it
// does not exist. Absence is not an error.
func (s *Store[T]) FindByID(id uint) (*T, error) {
	var record T
	err := s.db.Where("id = ?", id).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Uint("id", id).Msg("find by id failed")
		return nil, errs.NewDatabaseError("find", s.entity, err)
	}
	return &record, nil
}

// FindOne returns a single entity matching the filter, or nil when none
// match. When the filter does not uniquely identify a row the first match
// under storage-defined ordering is returned; callers needing uniqueness
// must filter on a unique column.
func (s *Store[T]) FindOne(filter Filter) (*T, error) {
	var record T
	err := s.db.Where(map[string]any(filter)).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Interface("filter", filter).Msg("find one failed")
		return nil, errs.NewDatabaseError("find", s.entity, err)
	}
	return &record, nil
}

// FindAll returns every entity matching the filter. An empty filter is
// rejected: a full-table scan is disallowed at this layer.
func (s *Store[T]) FindAll(filter Filter) ([]T, error) {
	if len(filter) == 0 {
		return nil, errs.NewEmptyFilterError("find all")
	}
	var records []T
	err := s.db.Where(map[string]any(filter)).Find(&records).Error
	if err != nil {
		s.logger.Error().Err(err).Interface("filter", filter).Msg("find all failed")
		return nil, errs.NewDatabaseError("find", s.entity, err)
	}
	return records, nil
}

// FindByIDs returns the entities whose ids appear in ids. Missing ids are
// silently absent from the result.
func (s *Store[T]) FindByIDs(ids []uint) ([]T, error) {
	var records []T
	err := s.db.Where("id IN ?", ids).Find(&records).Error
	if err != nil {
		s.logger.Error().Err(err).Ints("ids", toInts(ids)).Msg("find by ids failed")
		return nil, errs.NewDatabaseError("find", s.entity, err)
	}
	return records, nil
}

// Insert persists one entity in its own transaction. The store assigns the
// id and timestamps. A uniqueness violation rolls the transaction back and
// surfaces as a constraint-violation error.
func (s *Store[T]) Insert(record *T) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("insert failed")
		return errs.NewDatabaseError("insert", s.entity, err)
	}
	return nil
}

// InsertMany persists the whole batch in a single transaction. One
// constraint violation rolls back the entire batch.
func (s *Store[T]) InsertMany(records []T) ([]T, error) {
	if len(records) == 0 {
		return records, nil
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(records)).Msg("bulk insert failed")
		return nil, errs.NewDatabaseError("insert", s.entity, err)
	}
	return records, nil
}

// UpdateWhere updates all rows matching the filter in one statement and
// returns the number of rows affected. An empty filter is rejected.
func (s *Store[T]) UpdateWhere(filter Filter, fields map[string]any) (int64, error) {
	if len(filter) == 0 {
		return 0, errs.NewEmptyFilterError("update")
	}
	var affected int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(new(T)).Where(map[string]any(filter)).Updates(fields)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		s.logger.Error().Err(err).Interface("filter", filter).Msg("update failed")
		return 0, errs.NewDatabaseError("update", s.entity, err)
	}
	return affected, nil
}

// DeleteWhere deletes all rows matching the filter and returns the number
// of rows affected. An empty filter is rejected to guard against an
// accidental full-table delete.
func (s *Store[T]) DeleteWhere(filter Filter) (int64, error) {
	if len(filter) == 0 {
		return 0, errs.NewEmptyFilterError("delete")
	}
	var affected int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where(map[string]any(filter)).Delete(new(T))
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		s.logger.Error().Err(err).Interface("filter", filter).Msg("delete failed")
		return 0, errs.NewDatabaseError("delete", s.entity, err)
	}
	return affected, nil
}

// Count returns the number of rows matching the filter.
func (s *Store[T]) Count(filter Filter) (int64, error) {
	var count int64
	err := s.db.Model(new(T)).Where(map[string]any(filter)).Count(&count).Error
	if err != nil {
		s.logger.Error().Err(err).Interface("filter", filter).Msg("count failed")
		return 0, errs.NewDatabaseError("count", s.entity, err)
	}
	return count, nil
}

// Paginate returns one page of rows matching the filter, ordered by id so
// pages are stable. page is 1-based and pageSize must be positive.
func (s *Store[T]) Paginate(filter Filter, page, pageSize int) ([]T, error) {
	if page < 1 {
		return nil, errs.NewBadRequestErrorWithField("invalid page", "page", "page is 1-based")
	}
	if pageSize < 1 {
		return nil, errs.NewBadRequestErrorWithField("invalid page size", "page_size", "page_size must be positive")
	}
	var records []T
	err := s.db.
		Where(map[string]any(filter)).
		Order("id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		s.logger.Error().Err(err).Interface("filter", filter).Int("page", page).Msg("paginate failed")
		return nil, errs.NewDatabaseError("paginate", s.entity, err)
	}
	return records, nil
}

func toInts(ids []uint) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
