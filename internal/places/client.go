package places

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultBaseURL = "https://maps.googleapis.com/maps/api"

// Candidate is one place returned by the provider. Rating is nil when the
// provider has none for the place.
type Candidate struct {
	PlaceID string
	Name    string
	Address string
	Rating  *float64
	Lat     float64
	Lng     float64
}

// Review is one provider review. Time is nil when the provider gave no
// timestamp.
type Review struct {
	Author string
	Rating *int
	Text   string
	Time   *time.Time
}

// Client talks to the places provider. It does not retry; retry policy
// belongs to the caller, not here.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type geometry struct {
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           *float64 `json:"rating"`
	Geometry         geometry `json:"geometry"`
	Reviews          []struct {
		AuthorName string `json:"author_name"`
		Rating     *int   `json:"rating"`
		Text       string `json:"text"`
		Time       *int64 `json:"time"`
	} `json:"reviews"`
}

type searchResponse struct {
	Results []placeResult `json:"results"`
	Status  string        `json:"status"`
}

type detailsResponse struct {
	Result placeResult `json:"result"`
	Status string      `json:"status"`
}

type geocodeResponse struct {
	Results []struct {
		Geometry geometry `json:"geometry"`
	} `json:"results"`
	Status string `json:"status"`
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to query places provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places provider returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}
	return nil
}

// TextSearch finds candidate places for a free-text query, optionally biased
// to a location and radius in meters.
func (c *Client) TextSearch(ctx context.Context, query string, lat, lng float64, radiusMeters int) ([]Candidate, error) {
	params := url.Values{}
	params.Set("query", query)
	if lat != 0 || lng != 0 {
		params.Set("location", fmt.Sprintf("%f,%f", lat, lng))
		params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	}

	var resp searchResponse
	if err := c.get(ctx, "/place/textsearch/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("text search failed with status %s", resp.Status)
	}

	candidates := make([]Candidate, 0, len(resp.Results))
	for _, r := range resp.Results {
		candidates = append(candidates, Candidate{
			PlaceID: r.PlaceID,
			Name:    r.Name,
			Address: r.FormattedAddress,
			Rating:  r.Rating,
			Lat:     r.Geometry.Location.Lat,
			Lng:     r.Geometry.Location.Lng,
		})
	}
	return candidates, nil
}

// Details fetches one place and up to maxReviews of its reviews.
func (c *Client) Details(ctx context.Context, placeID string, maxReviews int) (*Candidate, []Review, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "place_id,name,formatted_address,rating,geometry,reviews")

	var resp detailsResponse
	if err := c.get(ctx, "/place/details/json", params, &resp); err != nil {
		return nil, nil, err
	}
	if resp.Status != "OK" {
		return nil, nil, fmt.Errorf("details failed with status %s", resp.Status)
	}

	r := resp.Result
	cand := &Candidate{
		PlaceID: r.PlaceID,
		Name:    r.Name,
		Address: r.FormattedAddress,
		Rating:  r.Rating,
		Lat:     r.Geometry.Location.Lat,
		Lng:     r.Geometry.Location.Lng,
	}

	var reviews []Review
	for _, rev := range r.Reviews {
		if len(reviews) >= maxReviews {
			break
		}
		out := Review{
			Author: rev.AuthorName,
			Rating: rev.Rating,
			Text:   rev.Text,
		}
		if rev.Time != nil {
			t := time.Unix(*rev.Time, 0).UTC()
			out.Time = &t
		}
		reviews = append(reviews, out)
	}
	return cand, reviews, nil
}

// Geocode resolves a free-text address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (float64, float64, error) {
	params := url.Values{}
	params.Set("address", address)

	var resp geocodeResponse
	if err := c.get(ctx, "/geocode/json", params, &resp); err != nil {
		return 0, 0, err
	}
	if resp.Status != "OK" || len(resp.Results) == 0 {
		return 0, 0, fmt.Errorf("could not geocode %q (status %s)", address, resp.Status)
	}

	loc := resp.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
