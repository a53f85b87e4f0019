package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	apiBase   = "https://api.themoviedb.org/3"
	imageBase = "https://image.tmdb.org/t/p/original"

	// binary asset fetches get a generous but bounded window
	posterTimeout = 20 * time.Second
)

// TransientError marks a network failure worth retrying (timeouts, transport
// errors). API-level failures such as a 404 stay plain errors.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient tmdb error: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

type Client struct {
	http  *http.Client
	token string
	lang  string
}

// NewClient builds a TMDB client from TMDB_TOKEN and TMDB_LANG (default ru-RU).
func NewClient() *Client {
	lang := os.Getenv("TMDB_LANG")
	if lang == "" {
		lang = "ru-RU"
	}
	return &Client{
		http:  &http.Client{Timeout: 30 * time.Second},
		token: os.Getenv("TMDB_TOKEN"),
		lang:  lang,
	}
}

type TrendingMovie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	GenreIDs    []int64 `json:"genre_ids"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

type MovieDetails struct {
	ID            int64    `json:"id"`
	Revenue       int64    `json:"revenue"`
	Runtime       int      `json:"runtime"`
	OriginCountry []string `json:"origin_country"`
	Genres        []Tag    `json:"genres"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Credit struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	KnownForDepartment string `json:"known_for_department"`
}

type Credits struct {
	Cast []Credit `json:"cast"`
	Crew []Credit `json:"crew"`
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransientError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb returned status %d for %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// TrendingPage fetches one page of the weekly trending movies feed.
func (c *Client) TrendingPage(ctx context.Context, page int) ([]TrendingMovie, error) {
	url := fmt.Sprintf("%s/trending/movie/week?language=%s&page=%d", apiBase, c.lang, page)
	var payload struct {
		Results []TrendingMovie `json:"results"`
	}
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (c *Client) Details(ctx context.Context, id int64) (MovieDetails, error) {
	url := fmt.Sprintf("%s/movie/%d?language=%s", apiBase, id, c.lang)
	var details MovieDetails
	err := c.getJSON(ctx, url, &details)
	return details, err
}

func (c *Client) Credits(ctx context.Context, id int64) (Credits, error) {
	url := fmt.Sprintf("%s/movie/%d/credits?language=%s", apiBase, id, c.lang)
	var credits Credits
	err := c.getJSON(ctx, url, &credits)
	return credits, err
}

func (c *Client) Keywords(ctx context.Context, id int64) ([]Tag, error) {
	url := fmt.Sprintf("%s/movie/%d/keywords", apiBase, id)
	var payload struct {
		Keywords []Tag `json:"keywords"`
	}
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}
	return payload.Keywords, nil
}

// PosterURL turns a TMDB poster path into the full image URL.
func PosterURL(path string) string {
	return imageBase + path
}

// PosterBinary downloads a poster image. Timeouts surface as TransientError so
// callers can retry instead of failing the whole sync.
func (c *Client) PosterBinary(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, posterTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransientError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status when downloading image: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
