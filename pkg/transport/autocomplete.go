package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/travigo/transitrouter/pkg/util"
)

const DefaultAutocompleteURL = "https://timetable.search.ch/api"

type Completion struct {
	Label     string     `json:"label"`
	IconClass string     `json:"iconclass"`
	HTML      string     `json:"html"`
	ID        FlexString `json:"id"`
}

// Autocomplete suggests place names for partially typed input
type Autocomplete struct {
	URL        string
	HTTPClient *http.Client
}

func NewAutocomplete(baseURL string) *Autocomplete {
	return &Autocomplete{
		URL:        strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *Autocomplete) SearchCompletion(ctx context.Context, term string) ([]Completion, error) {
	params := url.Values{}
	params.Set("term", term)
	params.Set("nofavorites", "1")
	params.Set("show_ids", "0")
	params.Set("show_coordinates", "0")

	body, err := util.GetWithRetry(ctx, a.HTTPClient, fmt.Sprintf("%s/completion.json?%s", a.URL, params.Encode()), jsonHeaders, 0)
	if err != nil {
		return nil, err
	}

	completions := []Completion{}
	if err := json.Unmarshal(body, &completions); err != nil {
		return nil, fmt.Errorf("decoding completion response: %w", err)
	}

	return completions, nil
}
