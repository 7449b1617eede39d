package database

import (
	"errors"
	"strings"

	"blogward/errs"
	"blogward/models"
	"gorm.io/gorm"
)

type TagRepo struct {
	*Store[models.Tag]
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{
		Store: NewStore[models.Tag](db, "tag"),
		db:    db,
	}
}

// UpsertTags resolves each name to a tag id, inserting tags that do not
// exist yet. Names are lower-cased before lookup and ids come back in
// input order; duplicate input names resolve to the same id. Each
// lookup/insert commits on its own, so the call as a whole is not atomic.
func (r *TagRepo) UpsertTags(names []string) ([]uint, error) {
	return r.upsertTags(r.db, names)
}

func (r *TagRepo) upsertTags(db *gorm.DB, names []string) ([]uint, error) {
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		var tag models.Tag
		err := db.Where("name = ?", name).Take(&tag).Error
		switch {
		case err == nil:
			ids = append(ids, tag.ID)
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			r.logger.Error().Err(err).Str("name", name).Msg("tag lookup failed")
			return nil, errs.NewDatabaseError("find", "tag", err)
		}

		tag = models.Tag{Name: name}
		if err := db.Create(&tag).Error; err != nil {
			r.logger.Error().Err(err).Str("name", name).Msg("tag insert failed")
			return nil, errs.NewDatabaseError("insert", "tag", err)
		}
		r.logger.Info().Str("name", name).Uint("tagId", tag.ID).Msg("tag created")
		ids = append(ids, tag.ID)
	}
	return ids, nil
}
