package database

import (
	"blogward/errs"
	"blogward/models"
	"gorm.io/gorm"
)

// TagPair names one blog/tag link to create.
type TagPair struct {
	BlogID uint `json:"blog_id"`
	TagID  uint `json:"tag_id"`
}

type BlogTagRepo struct {
	*Store[models.BlogTag]
	db *gorm.DB
}

func NewBlogTagRepo(db *gorm.DB) *BlogTagRepo {
	return &BlogTagRepo{
		Store: NewStore[models.BlogTag](db, "blog_tag"),
		db:    db,
	}
}

// LinkBlogToTags creates the given blog/tag links. Pairs missing either id
// are logged and skipped; the remainder is inserted in one transaction, so
// a duplicate link rolls back the whole batch with a constraint violation.
func (r *BlogTagRepo) LinkBlogToTags(pairs []TagPair) error {
	return r.linkBlogToTags(r.db, pairs)
}

func (r *BlogTagRepo) linkBlogToTags(db *gorm.DB, pairs []TagPair) error {
	rows := make([]models.BlogTag, 0, len(pairs))
	for _, pair := range pairs {
		if pair.BlogID == 0 || pair.TagID == 0 {
			r.logger.Warn().
				Uint("blogId", pair.BlogID).
				Uint("tagId", pair.TagID).
				Msg("skipping pair with missing id")
			continue
		}
		rows = append(rows, models.BlogTag{BlogID: pair.BlogID, TagID: pair.TagID})
	}

	if len(rows) == 0 {
		r.logger.Warn().Msg("no valid blog/tag pairs to link")
		return nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(rows)).Msg("link blog tags failed")
		return errs.NewDatabaseError("insert", "blog_tag", err)
	}
	r.logger.Info().Int("count", len(rows)).Msg("blog tag links created")
	return nil
}
