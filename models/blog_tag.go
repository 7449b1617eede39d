package models

// BlogTag is the blog/tag join row. A (blog_id, tag_id) pair appears at
// most once. The struct carries no association fields; migration creates
// blog_tags from this model alone, ahead of the relations that use it.
type BlogTag struct {
	Base
	BlogID uint `json:"blogId" db:"blog_id" gorm:"not null;uniqueIndex:idx_blog_tag_unique"`
	TagID  uint `json:"tagId" db:"tag_id" gorm:"not null;uniqueIndex:idx_blog_tag_unique"`
}

// TableName matches the table backing the Blog.Tags many2many relation.
func (BlogTag) TableName() string {
	return "blog_tags"
}
