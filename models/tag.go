package models

// Tag is a label shared across blog posts. Names are lower-cased before
// lookup so "Go" and "go" resolve to the same row.
type Tag struct {
	Base
	Name string `json:"name" db:"name" gorm:"type:text;not null;unique"`

	Blogs []Blog `json:"blogs,omitempty" gorm:"many2many:blog_tags"`
}
