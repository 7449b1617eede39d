package database

import (
	"blogward/models"
	"gorm.io/gorm"
)

type Database struct {
	gorm        *gorm.DB
	userRepo    *UserRepo
	roleRepo    *RoleRepo
	blogRepo    *BlogRepo
	tagRepo     *TagRepo
	blogTagRepo *BlogTagRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		gorm:        db,
		userRepo:    NewUserRepo(db),
		roleRepo:    NewRoleRepo(db),
		blogRepo:    NewBlogRepo(db),
		tagRepo:     NewTagRepo(db),
		blogTagRepo: NewBlogTagRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) RoleRepo() *RoleRepo {
	return d.roleRepo
}

func (d Database) BlogRepo() *BlogRepo {
	return d.blogRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) BlogTagRepo() *BlogTagRepo {
	return d.blogTagRepo
}

// Migrate creates or updates the schema for every entity. Both sides of
// the many2many relation are registered onto models.BlogTag, and blog_tags
// is migrated from that model before Blog and Tag, so the relation
// migrations find the table fully formed (id, timestamps, and the
// composite unique index) instead of creating a bare two-column one.
func (d Database) Migrate() error {
	if err := d.gorm.SetupJoinTable(&models.Blog{}, "Tags", &models.BlogTag{}); err != nil {
		return err
	}
	if err := d.gorm.SetupJoinTable(&models.Tag{}, "Blogs", &models.BlogTag{}); err != nil {
		return err
	}
	return d.gorm.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.BlogTag{},
		&models.Blog{},
		&models.Tag{},
	)
}

// AttachTags upserts the named tags and links them to the blog inside a
// single transaction, so a blog submission cannot end up with half its
// tags linked.
func (d Database) AttachTags(blogID uint, names []string) error {
	if len(names) == 0 {
		return nil
	}
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		ids, err := d.tagRepo.upsertTags(tx, names)
		if err != nil {
			return err
		}
		pairs := make([]TagPair, 0, len(ids))
		for _, tagID := range ids {
			pairs = append(pairs, TagPair{BlogID: blogID, TagID: tagID})
		}
		return d.blogTagRepo.linkBlogToTags(tx, pairs)
	})
}
