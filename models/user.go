package models

// User represents a registered author. The password is stored only as a
// bcrypt hash and is never serialized.
type User struct {
	Base
	Username     string `json:"username" db:"username" gorm:"type:text;not null;unique"`
	Email        string `json:"email" db:"email" gorm:"type:text;not null;unique"`
	PasswordHash string `json:"-" db:"password_hash" gorm:"type:text;not null"`
	FirstName    string `json:"firstName" db:"first_name" gorm:"type:text;not null"`
	LastName     string `json:"lastName" db:"last_name" gorm:"type:text;not null"`
	RoleID       uint   `json:"roleId" db:"role_id" gorm:"not null;default:1"`

	Role Role `json:"role,omitempty" gorm:"foreignKey:RoleID;references:ID"`
}
