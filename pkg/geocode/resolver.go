package geocode

import (
	"context"
	"strings"

	"github.com/travigo/transitrouter/pkg/transport"
)

// CountryResolver labels a coordinate with the upper case ISO country code
// of the address found there
type CountryResolver struct {
	Geocoder ReverseGeocoder
}

func (r CountryResolver) CountryOf(ctx context.Context, coordinate transport.Coordinate) (*string, error) {
	address, err := r.Geocoder.Reverse(ctx, coordinate.X, coordinate.Y)
	if err != nil {
		return nil, err
	}

	if address == nil || address.CountryCode == "" {
		return nil, nil
	}

	country := strings.ToUpper(address.CountryCode)
	return &country, nil
}
