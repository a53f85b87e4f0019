package movies

import (
	"time"

	"gorm.io/gorm"
)

// Movie ids come from TMDB, so there is no auto-increment anywhere in the catalog.
type Movie struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"index"`
	Overview       string    `json:"overview" gorm:"type:text"`
	PosterLink     string    `json:"poster_link"`
	ReleaseDate    time.Time `json:"release_date" gorm:"index"`
	ReleaseCountry string    `json:"release_country" gorm:"type:varchar(2);index"`
	Rating         float64   `json:"rating"`
	Revenue        int64     `json:"revenue"`
	Runtime        int       `json:"runtime"`
	DirectorID     *int64    `json:"director"`
	Director       *Director `json:"-" gorm:"foreignKey:DirectorID"`

	Actors   []Actor   `json:"actors" gorm:"many2many:movies_actors;"`
	Genres   []Genre   `json:"genres" gorm:"many2many:movies_genres;"`
	Keywords []Keyword `json:"keywords" gorm:"many2many:movies_keywords;"`
}

type Actor struct {
	ID      int64  `json:"id" gorm:"primaryKey"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

type Director struct {
	ID      int64  `json:"id" gorm:"primaryKey"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

type Genre struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"index"`
}

type Keyword struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"index"`
}

// Country maps an alpha-2 code to its localized name.
type Country struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(2)"`
	Name string `json:"name" gorm:"index"`
}

func MigrateMovies(db *gorm.DB) error {
	return db.AutoMigrate(
		&Genre{},
		&Keyword{},
		&Actor{},
		&Director{},
		&Country{},
		&Movie{},
	)
}
