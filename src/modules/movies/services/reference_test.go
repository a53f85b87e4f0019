package movies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCountryXML(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="utf-8"?>
<country-list>
  <country>
    <name>Австралия</name>
    <alpha2>AU</alpha2>
    <alpha3>AUS</alpha3>
  </country>
  <country>
    <name>Франция</name>
    <alpha2>FR</alpha2>
  </country>
  <country>
    <name></name>
    <alpha2>XX</alpha2>
  </country>
</country-list>`)

	countries, err := ParseCountryXML(raw)
	require.NoError(t, err)

	assert.Len(t, countries, 2)
	assert.Equal(t, "Австралия", countries["AU"])
	assert.Equal(t, "Франция", countries["FR"])
	assert.NotContains(t, countries, "XX")
}

func TestParseCountryXMLMalformed(t *testing.T) {
	_, err := ParseCountryXML([]byte("not xml at all <"))
	assert.Error(t, err)
}

func TestCurrentCatalogBeforeRefresh(t *testing.T) {
	cat := CurrentCatalog()
	require.NotNil(t, cat)
	assert.NotNil(t, cat.Countries)
	assert.NotNil(t, cat.Genres)
}
