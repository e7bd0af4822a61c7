package model

type Bookmark struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	Ctime       int64   `json:"ctime"`
	Mtime       int64   `json:"mtime"`
}

type BookmarkUpdate struct {
	Title       *string
	Description *string
	URL         *string
}
