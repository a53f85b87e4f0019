package movies

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"reelcollator/src/config"
	lib "reelcollator/src/modules/movies/lib"
	models "reelcollator/src/modules/movies/models"
)

const countryListURL = "https://www.artlebedev.ru/country-list/xml/"

// Catalog is an immutable snapshot of the reference tables: country names plus
// genre/keyword/actor/director lookups. A snapshot never mutates after Refresh
// builds it; readers always see a complete one.
type Catalog struct {
	Countries map[string]string
	Genres    map[int64]string
	Keywords  map[int64]string
	Actors    map[int64]string
	Directors map[int64]string
}

var (
	catalogMu sync.RWMutex
	catalog   *Catalog
)

// CurrentCatalog returns the latest reference snapshot, or an empty one when no
// refresh has completed yet.
func CurrentCatalog() *Catalog {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	if catalog == nil {
		return &Catalog{
			Countries: map[string]string{},
			Genres:    map[int64]string{},
			Keywords:  map[int64]string{},
			Actors:    map[int64]string{},
			Directors: map[int64]string{},
		}
	}
	return catalog
}

// RefreshCatalog rebuilds the reference snapshot from the DB and the country
// list source, then swaps it in. Called at startup and from the cron schedule;
// nothing refreshes implicitly.
func RefreshCatalog() error {
	next := &Catalog{
		Countries: map[string]string{},
		Genres:    map[int64]string{},
		Keywords:  map[int64]string{},
		Actors:    map[int64]string{},
		Directors: map[int64]string{},
	}

	countries, err := loadCountries()
	if err != nil {
		return fmt.Errorf("failed to load countries: %w", err)
	}
	next.Countries = countries

	db := config.DB
	var genres []models.Genre
	if err := db.Find(&genres).Error; err != nil {
		return &lib.DatastoreUnavailableError{Op: "load genres", Err: err}
	}
	for _, g := range genres {
		next.Genres[g.ID] = g.Name
	}

	var keywords []models.Keyword
	if err := db.Find(&keywords).Error; err != nil {
		return &lib.DatastoreUnavailableError{Op: "load keywords", Err: err}
	}
	for _, k := range keywords {
		next.Keywords[k.ID] = k.Name
	}

	var actors []models.Actor
	if err := db.Find(&actors).Error; err != nil {
		return &lib.DatastoreUnavailableError{Op: "load actors", Err: err}
	}
	for _, a := range actors {
		next.Actors[a.ID] = a.Name + " " + a.Surname
	}

	var directors []models.Director
	if err := db.Find(&directors).Error; err != nil {
		return &lib.DatastoreUnavailableError{Op: "load directors", Err: err}
	}
	for _, d := range directors {
		next.Directors[d.ID] = d.Name + " " + d.Surname
	}

	catalogMu.Lock()
	catalog = next
	catalogMu.Unlock()
	return nil
}

type countryXML struct {
	Countries []struct {
		Name   string `xml:"name"`
		Alpha2 string `xml:"alpha2"`
	} `xml:"country"`
}

// loadCountries reads the localized country list, Redis cache first, then the
// static XML source. Fetched rows are synced into the countries table so the
// search filter can validate against them offline.
func loadCountries() (map[string]string, error) {
	rdb := config.RDB
	ctx := config.Ctx
	cacheKey := "reference:countries"

	var raw []byte
	if rdb != nil {
		if cached, err := rdb.Get(ctx, cacheKey).Bytes(); err == nil && len(cached) > 0 {
			raw = cached
		}
	}

	if raw == nil {
		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Get(countryListURL)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("bad status fetching country list: %d", resp.StatusCode)
		}
		raw, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if rdb != nil {
			_ = rdb.Set(ctx, cacheKey, raw, 23*time.Hour).Err()
		}
	}

	return ParseCountryXML(raw)
}

// ParseCountryXML maps the country reference document to alpha-2 → name.
// Entries without a name are dropped.
func ParseCountryXML(raw []byte) (map[string]string, error) {
	var doc countryXML
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse country list: %w", err)
	}

	countries := make(map[string]string, len(doc.Countries))
	for _, c := range doc.Countries {
		if c.Name != "" && c.Alpha2 != "" {
			countries[c.Alpha2] = c.Name
		}
	}
	return countries, nil
}

// SyncCountries persists the current country snapshot into the DB.
func SyncCountries() error {
	cat := CurrentCatalog()
	for id, name := range cat.Countries {
		err := config.DB.FirstOrCreate(&models.Country{}, models.Country{ID: id, Name: name}).Error
		if err != nil {
			return &lib.DatastoreUnavailableError{Op: "sync countries", Err: err}
		}
	}
	return nil
}
