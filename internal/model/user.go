package model

type User struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Ctime        int64   `json:"ctime"`
	Mtime        int64   `json:"mtime"`
}

// Public returns a copy safe to hand to request handlers.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.PasswordHash = ""
	return &out
}

// ProfileUpdate holds the profile fields a user may change; nil means unchanged.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
}
