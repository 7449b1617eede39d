package database

import (
	"errors"
	"fmt"
	"strings"

	"blogward/errs"
	"blogward/models"
	"gorm.io/gorm"
)

type BlogRepo struct {
	*Store[models.Blog]
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) *BlogRepo {
	return &BlogRepo{
		Store: NewStore[models.Blog](db, "blog"),
		db:    db,
	}
}

// StatusChange is the structured result of ChangeStatus. Status is
// "success" when the blog was updated and "info" when the requested status
// already matched and nothing was persisted.
type StatusChange struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	BlogID        uint   `json:"blog_id"`
	CurrentStatus string `json:"current_status"`
}

// BlogPage is one page of the published-blog listing.
type BlogPage struct {
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	TotalCount int64         `json:"total_count"`
	Blogs      []models.Blog `json:"blogs"`
}

// GetFullInfo loads a blog with its author and tag set. A draft is visible
// only to its author; every other caller gets the same not-found error a
// missing blog produces, so drafts leak no existence information.
func (r *BlogRepo) GetFullInfo(blogID uint, callerID *uint) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.
		Preload("Author").
		Preload("Tags").
		Where("id = ?", blogID).
		Take(&blog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, blogNotFound(blogID)
	}
	if err != nil {
		r.logger.Error().Err(err).Uint("blogId", blogID).Msg("load blog failed")
		return nil, errs.NewDatabaseError("find", "blog", err)
	}

	if blog.Status == models.StatusDraft && (callerID == nil || *callerID != blog.AuthorID) {
		return nil, blogNotFound(blogID)
	}
	return &blog, nil
}

// Delete removes a blog owned by the caller, together with its tag links.
// A blog owned by someone else is reported as not found, matching the
// draft visibility rule.
func (r *BlogRepo) Delete(blogID, callerID uint) error {
	blog, err := r.FindByID(blogID)
	if err != nil {
		return err
	}
	if blog == nil || blog.AuthorID != callerID {
		return blogNotFound(blogID)
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", blogID).Delete(&models.BlogTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Blog{}, blogID).Error
	})
	if err != nil {
		r.logger.Error().Err(err).Uint("blogId", blogID).Msg("delete blog failed")
		return errs.NewDatabaseError("delete", "blog", err)
	}
	return nil
}

// ChangeStatus moves a blog between draft and published. The status value
// is validated before any lookup; only the author may change it; asking
// for the current status is a no-op reported as "info".
func (r *BlogRepo) ChangeStatus(blogID uint, newStatus string, callerID uint) (*StatusChange, error) {
	if !models.ValidStatus(newStatus) {
		return nil, errs.NewBadRequestErrorWithField(
			"invalid status", "new_status",
			fmt.Sprintf("use %q or %q", models.StatusDraft, models.StatusPublished),
		)
	}

	blog, err := r.FindByID(blogID)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, blogNotFound(blogID)
	}
	if blog.AuthorID != callerID {
		return nil, errs.NewForbiddenError("this blog does not belong to you")
	}

	if blog.Status == newStatus {
		return &StatusChange{
			Status:        "info",
			Message:       fmt.Sprintf("blog %d is already %q", blogID, newStatus),
			BlogID:        blogID,
			CurrentStatus: newStatus,
		}, nil
	}

	if _, err := r.UpdateWhere(Filter{"id": blogID}, map[string]any{"status": newStatus}); err != nil {
		return nil, err
	}
	return &StatusChange{
		Status:        "success",
		Message:       fmt.Sprintf("blog %d status changed to %q", blogID, newStatus),
		BlogID:        blogID,
		CurrentStatus: newStatus,
	}, nil
}

// ListPublished returns one page of published blogs, optionally filtered
// by exact author and by a case-insensitive substring of any associated
// tag name. The total is counted over the unpaged query; pages are ordered
// by id and de-duplicated, since the tag join fans out one row per
// matching tag.
func (r *BlogRepo) ListPublished(authorID *uint, tag string, page, pageSize int) (*BlogPage, error) {
	if page < 1 {
		return nil, errs.NewBadRequestErrorWithField("invalid page", "page", "page is 1-based")
	}
	if pageSize < 1 {
		return nil, errs.NewBadRequestErrorWithField("invalid page size", "page_size", "page_size must be positive")
	}

	base := r.db.Model(&models.Blog{}).Where("blogs.status = ?", models.StatusPublished)
	if authorID != nil {
		base = base.Where("blogs.author_id = ?", *authorID)
	}
	if tag != "" {
		pattern := "%" + strings.ToLower(tag) + "%"
		base = base.
			Joins("JOIN blog_tags ON blog_tags.blog_id = blogs.id").
			Joins("JOIN tags ON tags.id = blog_tags.tag_id").
			Where("LOWER(tags.name) LIKE ?", pattern)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("blogs.id").Count(&total).Error; err != nil {
		r.logger.Error().Err(err).Msg("count published blogs failed")
		return nil, errs.NewDatabaseError("count", "blog", err)
	}
	if total == 0 {
		return &BlogPage{Page: page, TotalPages: 0, TotalCount: 0, Blogs: []models.Blog{}}, nil
	}

	var ids []uint
	err := base.Session(&gorm.Session{}).
		Distinct("blogs.id").
		Order("blogs.id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Pluck("blogs.id", &ids).Error
	if err != nil {
		r.logger.Error().Err(err).Msg("page published blogs failed")
		return nil, errs.NewDatabaseError("paginate", "blog", err)
	}

	var blogs []models.Blog
	err = r.db.
		Preload("Author").
		Preload("Tags").
		Where("id IN ?", ids).
		Order("id").
		Find(&blogs).Error
	if err != nil {
		r.logger.Error().Err(err).Msg("load published blogs failed")
		return nil, errs.NewDatabaseError("find", "blog", err)
	}

	seen := make(map[uint]struct{}, len(blogs))
	unique := make([]models.Blog, 0, len(blogs))
	for _, b := range blogs {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		unique = append(unique, b)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &BlogPage{
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
		Blogs:      unique,
	}, nil
}

func blogNotFound(blogID uint) *errs.ApiErr {
	return errs.NewNotFoundError(fmt.Sprintf("blog %d not found or you have no access to it", blogID))
}
