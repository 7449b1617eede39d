package database

import (
	"blogward/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	*Store[models.User]
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{NewStore[models.User](db, "user")}
}

// FindByUsername returns the user with the given username, or nil when no
// such user exists.
func (r *UserRepo) FindByUsername(username string) (*models.User, error) {
	return r.FindOne(Filter{"username": username})
}

// FindByEmail returns the user with the given email, or nil when no such
// user exists.
func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	return r.FindOne(Filter{"email": email})
}
