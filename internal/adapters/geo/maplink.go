package geo

import (
	"net/url"
	"strconv"

	"fleet-route-service/internal/domain"
)

// MapLink builds a Google Maps search URL for a coordinate pair. Outbound
// only; nothing is fetched from it.
func MapLink(c domain.Coordinates) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("query", strconv.FormatFloat(c.Latitude, 'f', -1, 64)+","+strconv.FormatFloat(c.Longitude, 'f', -1, 64))
	return "https://www.google.com/maps/search/?" + q.Encode()
}
