package testapp

import (
	"github.com/getmockd/factories/pkg/faker"
)

// User is an account.
type User struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Username string  `json:"username"`
	IsAdmin  bool    `json:"is_admin"`
	Posts    []*Post `json:"posts,omitempty"`
}

// Post is written by a User.
type Post struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Creator     *User   `json:"creator,omitempty"`
}

// NewUser returns a user filled with fake data.
func NewUser(f *faker.Faker) *User {
	return &User{
		ID:       f.IntBetween(1, 100000),
		Name:     f.Name(),
		Email:    f.Email(),
		Username: f.UserName(),
	}
}

// NewPost returns a post filled with fake data. creator may be nil, leaving
// the relation unloaded. The description is left out half of the time.
func NewPost(f *faker.Faker, creator *User) *Post {
	p := &Post{
		ID:      f.IntBetween(1, 100000),
		Title:   f.Sentence(),
		Creator: creator,
	}
	if f.Bool() {
		d := f.Sentence()
		p.Description = &d
	}
	return p
}

// Load attaches posts to u. The creator relation of the posts is left as
// it is, so rendering does not cycle.
func (u *User) Load(posts ...*Post) *User {
	if u.Posts == nil {
		u.Posts = []*Post{}
	}
	u.Posts = append(u.Posts, posts...)
	return u
}

func asUser(model any) *User {
	switch m := model.(type) {
	case *User:
		return m
	case User:
		return &m
	}
	return nil
}

func asPost(model any) *Post {
	switch m := model.(type) {
	case *Post:
		return m
	case Post:
		return &m
	}
	return nil
}
