package models

import (
	"github.com/jon4hz/bookshelf/internal/catalog"
	"github.com/jon4hz/bookshelf/internal/database"
	"github.com/samber/lo"
)

// ToUser converts a database.User to the session identity model.
func ToUser(u *database.User) User {
	return User{
		ID:       u.ID,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	}
}

// ToBook converts a database.Book to its view model.
func ToBook(b database.Book) Book {
	return Book{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Thumbnail:   b.Thumbnail,
		InfoLink:    b.InfoLink,
	}
}

// ToBooks converts a slice of database.Book to view models.
func ToBooks(books []database.Book) []Book {
	return lo.Map(books, func(b database.Book, _ int) Book {
		return ToBook(b)
	})
}

// ToSearchResult converts a catalog.Volume to its view model.
func ToSearchResult(v catalog.Volume) SearchResult {
	return SearchResult{
		Title:       v.Title,
		Author:      v.Author,
		Description: v.Description,
		Thumbnail:   v.Thumbnail,
		InfoLink:    v.InfoLink,
	}
}

// ToSearchResults converts a slice of catalog.Volume to view models.
func ToSearchResults(volumes []catalog.Volume) []SearchResult {
	return lo.Map(volumes, func(v catalog.Volume, _ int) SearchResult {
		return ToSearchResult(v)
	})
}
