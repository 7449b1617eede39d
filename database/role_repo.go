package database

import (
	"blogward/models"
	"gorm.io/gorm"
)

type RoleRepo struct {
	*Store[models.Role]
}

func NewRoleRepo(db *gorm.DB) *RoleRepo {
	return &RoleRepo{NewStore[models.Role](db, "role")}
}
