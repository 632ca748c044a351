package model

import "time"

// Blog is a post in the blogs table. The author's name and image are copied
// in when the blog is created.
type Blog struct {
	ID        string    `json:"id" db:"id" orm:"pk,type=varchar(50)"`
	UserID    string    `json:"userId" db:"user_id" orm:"type=varchar(50)"`
	UserName  string    `json:"userName" db:"user_name" orm:"type=varchar(50)"`
	UserImage string    `json:"userImage" db:"user_image" orm:"type=varchar(500)"`
	Name      string    `json:"name" db:"name" orm:"type=varchar(50)"`
	Summary   string    `json:"summary" db:"summary" orm:"type=varchar(200)"`
	Content   string    `json:"content" db:"content" orm:"type=text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// HTMLContent is the rendered content, filled in for pages only.
	HTMLContent string `json:"htmlContent,omitempty" db:"-"`
}

// TableName implements the orm table namer.
func (*Blog) TableName() string { return "blogs" }

// ApplyDefaults fills the id and creation time before insert.
func (b *Blog) ApplyDefaults() {
	if b.ID == "" {
		b.ID = NextID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
}

// Comment is a reply under a blog, stored in the comments table.
type Comment struct {
	ID        string    `json:"id" db:"id" orm:"pk,type=varchar(50)"`
	BlogID    string    `json:"blogId" db:"blog_id" orm:"type=varchar(50)"`
	UserID    string    `json:"userId" db:"user_id" orm:"type=varchar(50)"`
	UserName  string    `json:"userName" db:"user_name" orm:"type=varchar(50)"`
	UserImage string    `json:"userImage" db:"user_image" orm:"type=varchar(500)"`
	Content   string    `json:"content" db:"content" orm:"type=text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	HTMLContent string `json:"htmlContent,omitempty" db:"-"`
}

func (*Comment) TableName() string { return "comments" }

func (c *Comment) ApplyDefaults() {
	if c.ID == "" {
		c.ID = NextID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
}
