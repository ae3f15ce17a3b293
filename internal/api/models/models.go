package models

// User is the request identity resolved from the session. It is attached to
// the gin context once per request by the auth middleware.
type User struct {
	ID       uint
	Username string
	IsAdmin  bool
}

// Book is the view model for a shelf entry.
type Book struct {
	ID          uint
	Title       string
	Author      string
	Description string
	Thumbnail   string
	InfoLink    string
}

// SearchResult is the view model for a transient catalog search result.
type SearchResult struct {
	Title       string
	Author      string
	Description string
	Thumbnail   string
	InfoLink    string
}

// UserShelf pairs a user with their books for the admin dashboard.
type UserShelf struct {
	User  User
	Books []Book
}
