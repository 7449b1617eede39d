package models

// Role groups users by permission level. Role 1 is the default for new
// registrations.
type Role struct {
	Base
	Name string `json:"name" db:"name" gorm:"type:text;not null;unique"`

	Users []User `json:"users,omitempty" gorm:"foreignKey:RoleID;references:ID"`
}
