package transport

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

const DefaultURL = "http://transport.opendata.ch/v1"

var jsonHeaders = map[string]string{"Accept": "application/json"}

type LocationQuery struct {
	Query string
	X     *float64
	Y     *float64
	Type  LocationType
}

// ConnectionQuery mirrors the /connections parameters. Only From and To are
// required, everything left nil is not sent.
type ConnectionQuery struct {
	From string
	To   string

	Via             []string
	Date            *string
	Time            *string
	IsArrivalTime   *bool
	Transportations []string
	Limit           *int
	Page            *int
	Direct          *bool
	Sleeper         *bool
	Couchette       *bool
	Bike            *bool
	Accessibility   *string
}

// Filtered reports whether any optional filter is set
func (q ConnectionQuery) Filtered() bool {
	return len(q.Via) > 0 || len(q.Transportations) > 0 ||
		q.Date != nil || q.Time != nil || q.IsArrivalTime != nil ||
		q.Limit != nil || q.Page != nil || q.Direct != nil ||
		q.Sleeper != nil || q.Couchette != nil || q.Bike != nil ||
		q.Accessibility != nil
}

// Client talks to a transport.opendata.ch compatible API
type Client struct {
	URL        string
	HTTPClient *http.Client
	MaxRetries uint64
}

func NewClient(baseURL string) *Client {
	return &Client{
		URL:        strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		MaxRetries: 3,
	}
}

func (c *Client) SearchLocations(ctx context.Context, q LocationQuery) ([]Location, error) {
	params := url.Values{}
	if q.Query != "" {
		params.Set("query", q.Query)
	}
	if q.X != nil {
		params.Set("x", strconv.FormatFloat(*q.X, 'f', -1, 64))
	}
	if q.Y != nil {
		params.Set("y", strconv.FormatFloat(*q.Y, 'f', -1, 64))
	}
	locationType := q.Type
	if locationType == "" {
		locationType = LocationTypeAll
	}
	params.Set("type", string(locationType))

	var response locationsResponse
	if err := c.get(ctx, "/locations", params, &response); err != nil {
		return nil, err
	}

	if response.Stations == nil {
		return []Location{}, nil
	}
	return response.Stations, nil
}

func (c *Client) GetConnections(ctx context.Context, q ConnectionQuery) ([]Connection, error) {
	params := url.Values{}
	params.Set("from", q.From)
	params.Set("to", q.To)

	for _, via := range q.Via {
		params.Add("via[]", via)
	}
	for _, transportation := range q.Transportations {
		params.Add("transportations[]", transportation)
	}
	setString(params, "date", q.Date)
	setString(params, "time", q.Time)
	setString(params, "accessibility", q.Accessibility)
	setBool(params, "isArrivalTime", q.IsArrivalTime)
	setBool(params, "direct", q.Direct)
	setBool(params, "sleeper", q.Sleeper)
	setBool(params, "couchette", q.Couchette)
	setBool(params, "bike", q.Bike)
	setInt(params, "limit", q.Limit)
	setInt(params, "page", q.Page)

	var response connectionsResponse
	if err := c.get(ctx, "/connections", params, &response); err != nil {
		return nil, err
	}

	if response.Connections == nil {
		return []Connection{}, nil
	}
	return response.Connections, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, destination any) error {
	requestURL := fmt.Sprintf("%s%s?%s", c.URL, path, params.Encode())

	body, err := util.GetWithRetry(ctx, c.HTTPClient, requestURL, jsonHeaders, c.MaxRetries)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, destination); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}

	return nil
}

func setString(params url.Values, key string, value *string) {
	if value != nil {
		params.Set(key, *value)
	}
}

func setBool(params url.Values, key string, value *bool) {
	if value != nil {
		params.Set(key, strconv.Itoa(boolToInt(*value)))
	}
}

func setInt(params url.Values, key string, value *int) {
	if value != nil {
		params.Set(key, strconv.Itoa(*value))
	}
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
