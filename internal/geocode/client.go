// Package geocode wraps a Nominatim-compatible place search. Search
// suggestions are a soft affordance: every failure degrades to an empty
// result set and is only logged, never propagated.
package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

// MaxResults is the candidate cap, enforced both in the query and on the
// decoded response.
const MaxResults = 5

// Candidate is one place suggestion.
type Candidate struct {
	DisplayName string  `json:"display_name"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	PlaceID     int64   `json:"place_id"`
	Importance  float64 `json:"importance"`
}

// LatLng parses the candidate's string coordinates. Nominatim always
// returns them as decimal strings.
func (c Candidate) LatLng() (lat, lng float64, err error) {
	lat, err = strconv.ParseFloat(c.Lat, 64)
	if err != nil {
		return 0, 0, err
	}
	lng, err = strconv.ParseFloat(c.Lon, 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}

// Client queries the geocoding service.
type Client struct {
	searchURL string
	http      *http.Client
	log       *zap.Logger
}

// New creates a geocode client. No request timeout is configured here;
// callers bound searches through the context.
func New(searchURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		searchURL: searchURL,
		http:      &http.Client{},
		log:       log,
	}
}

// Search returns up to MaxResults candidates for a free-text query. On any
// failure it returns an empty slice.
func (c *Client) Search(ctx context.Context, query string) []Candidate {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(MaxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+q.Encode(), nil)
	if err != nil {
		c.log.Warn("geocode request build failed", zap.Error(err))
		return nil
	}
	// Nominatim usage policy requires an identifying user agent.
	req.Header.Set("User-Agent", "hauldeck")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("geocode search failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("geocode search rejected",
			zap.String("query", query),
			zap.Int("status", resp.StatusCode))
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("geocode response read failed", zap.Error(err))
		return nil
	}

	var candidates []Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		c.log.Warn("geocode response parse failed", zap.Error(err))
		return nil
	}

	if len(candidates) > MaxResults {
		candidates = candidates[:MaxResults]
	}
	return candidates
}
