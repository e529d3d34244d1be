package domain

type User struct {
	ID          int64   `db:"id"`
	Username    string  `db:"username"`
	Password    string  `db:"password"`
	DisplayName *string `db:"display_name"`
	AvatarURL   *string `db:"avatar_url"`
}

// UserView is the client-facing projection of a user (no password).
type UserView struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	DisplayName *string `json:"displayName,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
}

func (u *User) View() UserView {
	return UserView{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}
