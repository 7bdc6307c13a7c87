package models

import "time"

// User is a registered account. The row with the lowest ID is the site administrator.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"size:250;uniqueIndex;not null"`
	Password  string `gorm:"size:250;not null" json:"-"`
	Name      string `gorm:"size:250;not null"`
	CreatedAt time.Time
	Posts     []*Post    `gorm:"foreignKey:AuthorID"`
	Comments  []*Comment `gorm:"foreignKey:AuthorID"`
}

// Post represents a blog post with comments.
type Post struct {
	ID       uint       `gorm:"primaryKey"`
	Title    string     `gorm:"size:250;uniqueIndex;not null"`
	Subtitle string     `gorm:"size:250;not null"`
	Date     string     `gorm:"size:250;not null"`
	Body     string     `gorm:"type:text;not null"`
	ImgURL   string     `gorm:"column:img_url;size:250;not null"`
	AuthorID uint       `gorm:"index;not null"`
	Author   *User      `gorm:"foreignKey:AuthorID"`
	Comments []*Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// Comment represents a comment on a blog post.
type Comment struct {
	ID       uint   `gorm:"primaryKey"`
	Text     string `gorm:"type:text;not null"`
	AuthorID uint   `gorm:"index;not null"`
	Author   *User  `gorm:"foreignKey:AuthorID"`
	PostID   uint   `gorm:"index;not null"`
	Post     *Post  `gorm:"foreignKey:PostID"`
}

func (User) TableName() string    { return "users" }
func (Post) TableName() string    { return "blog_posts" }
func (Comment) TableName() string { return "comments" }
