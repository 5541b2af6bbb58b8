package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/travigo/transitrouter/pkg/util"
)

const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

type Address struct {
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	State       string `json:"state"`
	City        string `json:"city"`
}

type ReverseGeocoder interface {
	// Reverse returns the address at a point, or nil if there is none
	Reverse(ctx context.Context, lat float64, lon float64) (*Address, error)
}

type nominatimResponse struct {
	DisplayName string   `json:"display_name"`
	Address     *Address `json:"address"`
	Error       string   `json:"error"`
}

// Nominatim is a reverse geocoder backed by an OpenStreetMap Nominatim server.
// Nominatim requires an identifying user agent.
type Nominatim struct {
	URL        string
	UserAgent  string
	HTTPClient *http.Client
	MaxRetries uint64
}

func NewNominatim(baseURL string, userAgent string) *Nominatim {
	return &Nominatim{
		URL:        strings.TrimSuffix(baseURL, "/"),
		UserAgent:  userAgent,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		MaxRetries: 3,
	}
}

func (n *Nominatim) Reverse(ctx context.Context, lat float64, lon float64) (*Address, error) {
	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("addressdetails", "1")

	body, err := util.GetWithRetry(ctx, n.HTTPClient, fmt.Sprintf("%s/reverse?%s", n.URL, params.Encode()), map[string]string{
		"User-Agent": n.UserAgent,
		"Accept":     "application/json",
	}, n.MaxRetries)
	if err != nil {
		return nil, err
	}

	var response nominatimResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decoding reverse geocode response: %w", err)
	}

	// Points in the sea come back as {"error": "Unable to geocode"}
	if response.Error != "" {
		return nil, nil
	}

	return response.Address, nil
}
