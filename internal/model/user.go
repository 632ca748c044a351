package model

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// User is an account in the users table. Passwd holds the bcrypt hash and is
// never serialized.
type User struct {
	ID        string    `json:"id" db:"id" orm:"pk,type=varchar(50)"`
	Email     string    `json:"email" db:"email" orm:"type=varchar(50)"`
	Passwd    string    `json:"-" db:"passwd" orm:"type=varchar(100)"`
	Admin     bool      `json:"admin" db:"admin"`
	Name      string    `json:"name" db:"name" orm:"type=varchar(50)"`
	Image     string    `json:"image" db:"image" orm:"type=varchar(500)"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

func (*User) TableName() string { return "users" }

func (u *User) ApplyDefaults() {
	if u.ID == "" {
		u.ID = NextID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
}

// GravatarURL returns the avatar image for email.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("http://www.gravatar.com/avatar/%s?d=mm&s=120", hex.EncodeToString(sum[:]))
}
