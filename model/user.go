package model

import "time"

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

type User struct {
	ID              string    `json:"_id" bson:"_id" firestore:"id"`
	Name            string    `json:"name" bson:"name" firestore:"name"`
	Email           string    `json:"email" bson:"email" firestore:"email"`
	Password        string    `json:"-" bson:"password" firestore:"password"` // bcrypt hash
	ProfileImageURL string    `json:"profileImageUrl" bson:"profileImageUrl" firestore:"profileImageUrl"`
	Role            Role      `json:"role" bson:"role" firestore:"role"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
