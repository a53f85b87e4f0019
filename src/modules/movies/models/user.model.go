package movies

import (
	"time"

	"gorm.io/gorm"
)

// User rows are created on first contact; the id is the external chat/account id.
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

type FavoriteMovie struct {
	UserID  int64 `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	MovieID int64 `json:"movie_id" gorm:"primaryKey;autoIncrement:false"`
}

type WatchlistMovie struct {
	UserID  int64 `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	MovieID int64 `json:"movie_id" gorm:"primaryKey;autoIncrement:false"`
}

// MovieScore holds a 1-10 user score; inserting an existing pair overwrites it.
type MovieScore struct {
	UserID  int64 `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	MovieID int64 `json:"movie_id" gorm:"primaryKey;autoIncrement:false"`
	Score   int   `json:"score"`
}

// SearchQuery is the append-only log of executed searches. It is written on every
// search and only ever read back by the stats aggregation, never for filtering.
type SearchQuery struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     int64      `json:"user_id" gorm:"index"`
	Date       time.Time  `json:"date" gorm:"index"`
	TitlePart  *string    `json:"title_part"`
	Country    *string    `json:"country" gorm:"type:varchar(2)"`
	DirectorID *int64     `json:"director_id"`
	DateGte    *time.Time `json:"date_gte"`
	DateLte    *time.Time `json:"date_lte"`

	Actors   []QueryActor   `json:"actors" gorm:"foreignKey:QueryID"`
	Genres   []QueryGenre   `json:"genres" gorm:"foreignKey:QueryID"`
	Keywords []QueryKeyword `json:"keywords" gorm:"foreignKey:QueryID"`
}

type QueryActor struct {
	ID      uint  `json:"id" gorm:"primaryKey"`
	QueryID uint  `json:"query_id" gorm:"index"`
	ActorID int64 `json:"actor_id"`
}

type QueryGenre struct {
	ID       uint  `json:"id" gorm:"primaryKey"`
	QueryID  uint  `json:"query_id" gorm:"index"`
	GenreID  int64 `json:"genre_id"`
	Excluded bool  `json:"excluded"`
}

type QueryKeyword struct {
	ID        uint  `json:"id" gorm:"primaryKey"`
	QueryID   uint  `json:"query_id" gorm:"index"`
	KeywordID int64 `json:"keyword_id"`
	Excluded  bool  `json:"excluded"`
}

func MigrateUsers(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&FavoriteMovie{},
		&WatchlistMovie{},
		&MovieScore{},
		&SearchQuery{},
		&QueryActor{},
		&QueryGenre{},
		&QueryKeyword{},
	)
}
