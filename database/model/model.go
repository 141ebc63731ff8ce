// Package model defines the persistent entities of the bulletin board.
package model

import "time"

// Account is a registered person. PasswordHash is only ever written through
// service.UserService.SetPassword; the plaintext is never stored.
type Account struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash"`

	Bio        string `json:"bio"`
	Avatar     string `json:"avatar"`
	Location   string `json:"location"`
	Website    string `json:"website"`
	Newsletter bool   `json:"newsletter"`

	IsAdmin bool `json:"isAdmin"`
	Active  bool `json:"active" gorm:"default:true"`

	RoleId *int  `json:"roleId"`
	Role   *Role `json:"role"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Role is a named bundle of permissions. Accounts reference at most one role.
type Role struct {
	Id          int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string     `json:"name" gorm:"uniqueIndex;not null"`
	Permissions Permission `json:"permissions"`
}

type Category struct {
	Id          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Post is authored content. AuthorId is fixed at creation and never
// reassigned.
type Post struct {
	Id         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title      string    `json:"title" gorm:"not null"`
	Content    string    `json:"content" gorm:"not null"`
	ImageRef   string    `json:"imageRef"`
	AuthorId   int       `json:"authorId" gorm:"not null;index"`
	Author     *Account  `json:"author"`
	CategoryId *int      `json:"categoryId"`
	Category   *Category `json:"category"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Comment struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Content   string    `json:"content" gorm:"not null"`
	AuthorId  int       `json:"authorId" gorm:"not null;index"`
	Author    *Account  `json:"author"`
	PostId    int       `json:"postId" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type News struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	Subject   string    `json:"subject" gorm:"not null"`
	AuthorId  int       `json:"authorId" gorm:"not null;index"`
	Author    *Account  `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Activity is an append-only audit record for administrative actions. ActorId
// is a plain column, not a foreign key, so history survives account deletion.
type Activity struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	ActorId   int       `json:"actorId" gorm:"not null;index"`
	Action    string    `json:"action" gorm:"not null"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}
