package movies

// MovieResult is the shape handed across the presentation boundary: plain fields,
// ISO-8601 release date, rating already rounded to one decimal, tag ids as sets.
type MovieResult struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Overview       string  `json:"overview"`
	PosterLink     string  `json:"poster_link"`
	ReleaseDate    string  `json:"release_date"`
	ReleaseCountry string  `json:"release_country"`
	Rating         float64 `json:"rating"`
	Revenue        int64   `json:"revenue"`
	Runtime        int     `json:"runtime"`
	Director       *int64  `json:"director"`
	Actors         []int64 `json:"actors"`
	Genres         []int64 `json:"genres"`
	Keywords       []int64 `json:"keywords"`
}

// Recommendations distinguishes "user has no signal yet" from "no catalog match"
// so the presentation layer can message the two cases differently.
type Recommendations struct {
	Movies             []MovieResult `json:"movies"`
	InsufficientSignal bool          `json:"insufficient_signal"`
}

// MovieUpdate is the write-side counterpart of MovieResult: scalar fields are
// replaced wholesale, tag associations change through the add/remove sets.
type MovieUpdate struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Overview       string  `json:"overview"`
	PosterLink     string  `json:"poster_link"`
	ReleaseDate    string  `json:"release_date"`
	ReleaseCountry string  `json:"release_country"`
	Rating         float64 `json:"rating"`
	Revenue        int64   `json:"revenue"`
	Runtime        int     `json:"runtime"`
	Director       *int64  `json:"director"`

	ActorsAdd      []int64 `json:"actors_add"`
	ActorsRemove   []int64 `json:"actors_remove"`
	GenresAdd      []int64 `json:"genres_add"`
	GenresRemove   []int64 `json:"genres_remove"`
	KeywordsAdd    []int64 `json:"keywords_add"`
	KeywordsRemove []int64 `json:"keywords_remove"`
}

// TagUsage is one aggregated row of the query log.
type TagUsage struct {
	ID    int64 `json:"id"`
	Count int64 `json:"count"`
}

// WindowStats aggregates the query log over one time window.
type WindowStats struct {
	Queries     int64     `json:"queries"`
	TopGenre    *TagUsage `json:"top_genre"`
	TopKeyword  *TagUsage `json:"top_keyword"`
	TopActor    *TagUsage `json:"top_actor"`
	TopDirector *TagUsage `json:"top_director"`
}

// UsageStats is the aggregate usage report served at /stats and over /ws.
type UsageStats struct {
	Users     int64       `json:"users"`
	Favorites int64       `json:"favorites"`
	Watchlist int64       `json:"watchlist"`
	Day       WindowStats `json:"day"`
	Week      WindowStats `json:"week"`
	Month     WindowStats `json:"month"`
}
