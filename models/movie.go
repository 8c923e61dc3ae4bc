package models

// Movie represents a movie in the agency's catalog
type Movie struct {
	ID      int64  `json:"id" db:"id"`
	Title   string `json:"title" db:"title"`
	Release string `json:"release" db:"release"`
}

// TableName returns the table name for the Movie model
func (Movie) TableName() string {
	return "movies"
}

// NewMovie creates a new Movie instance
func NewMovie(title, release string) *Movie {
	return &Movie{
		Title:   title,
		Release: release,
	}
}
