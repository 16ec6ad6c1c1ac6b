package model

// Movie is a catalog entry.
//
// Fields:
//
//	ID              – primary key identifier.
//	Title           – movie title.
//	Description     – short synopsis (may be empty).
//	DurationMinutes – running time.
type Movie struct {
	ID              uint64 // movies.id
	Title           string // movies.title
	Description     string // movies.description
	DurationMinutes int    // movies.duration_minutes
}
