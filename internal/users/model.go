package users

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatarUrl"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileUpdate carries the fields a user may edit. Pointers distinguish
// "leave unchanged" from "clear".
type ProfileUpdate struct {
	FullName  *string `json:"fullName"`
	AvatarURL *string `json:"avatarUrl"`
	Bio       *string `json:"bio"`
}
