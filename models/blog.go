package models

// Blog status values. Anything else is rejected before persistence.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// ValidStatus reports whether s is one of the two allowed blog statuses.
func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished
}

// Blog represents a post with its author and tag set. Draft blogs are
// visible only to their author.
type Blog struct {
	Base
	Title            string `json:"title" db:"title" gorm:"type:text;not null"`
	AuthorID         uint   `json:"author" db:"author_id" gorm:"not null;index"`
	ShortDescription string `json:"shortDescription" db:"short_description" gorm:"type:text;not null"`
	Content          string `json:"content" db:"content" gorm:"type:text;not null"`
	Status           string `json:"status" db:"status" gorm:"type:text;not null;default:published"`

	Author User  `json:"user,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	Tags   []Tag `json:"tags,omitempty" gorm:"many2many:blog_tags"`
}
