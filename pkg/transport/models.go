package transport

import (
	"bytes"
	"encoding/json"
)

type LocationType string

const (
	LocationTypeAll     LocationType = "all"
	LocationTypeStation LocationType = "station"
	LocationTypePOI     LocationType = "poi"
	LocationTypeAddress LocationType = "address"
)

type Coordinate struct {
	Type string  `json:"type" groups:"basic"`
	X    float64 `json:"x" groups:"basic"`
	Y    float64 `json:"y" groups:"basic"`
}

// Location is a station, address or point of interest as returned by the
// transport API. Distance is the distance in metres from the coordinate the
// location was searched around, if any.
type Location struct {
	ID         *string    `json:"id" groups:"basic"`
	Type       string     `json:"type" groups:"basic"`
	Name       string     `json:"name" groups:"basic"`
	Score      *float64   `json:"score" groups:"detailed"`
	Coordinate Coordinate `json:"coordinate" groups:"basic"`
	Distance   *float64   `json:"distance" groups:"detailed"`
}

// Valid reports whether the location carries an identifier. The upstream API
// occasionally returns placeholder records without one.
func (l Location) Valid() bool {
	return l.ID != nil
}

type Prognosis struct {
	Platform    string     `json:"platform" groups:"detailed"`
	Departure   string     `json:"departure" groups:"detailed"`
	Arrival     string     `json:"arrival" groups:"detailed"`
	Capacity1st FlexString `json:"capacity1st" groups:"detailed"`
	Capacity2nd FlexString `json:"capacity2nd" groups:"detailed"`
}

type Stop struct {
	Station            Location   `json:"station" groups:"basic"`
	Arrival            *string    `json:"arrival" groups:"basic"`
	ArrivalTimestamp   *int64     `json:"arrivalTimestamp" groups:"detailed"`
	Departure          *string    `json:"departure" groups:"basic"`
	DepartureTimestamp *int64     `json:"departureTimestamp" groups:"detailed"`
	Delay              *int       `json:"delay" groups:"basic"`
	Platform           string     `json:"platform" groups:"basic"`
	Prognosis          *Prognosis `json:"prognosis" groups:"detailed"`
}

type Journey struct {
	Name         string     `json:"name" groups:"basic"`
	Category     string     `json:"category" groups:"basic"`
	CategoryCode FlexString `json:"categoryCode" groups:"detailed"`
	Number       FlexString `json:"number" groups:"basic"`
	Operator     string     `json:"operator" groups:"basic"`
	To           string     `json:"to" groups:"basic"`
	PassList     []Stop     `json:"passList" groups:"detailed"`
	Capacity1st  FlexString `json:"capacity1st" groups:"detailed"`
	Capacity2nd  FlexString `json:"capacity2nd" groups:"detailed"`
}

type Walk struct {
	Duration *int `json:"duration" groups:"basic"`
}

type Section struct {
	Journey   *Journey `json:"journey" groups:"basic"`
	Walk      *Walk    `json:"walk" groups:"basic"`
	Departure Stop     `json:"departure" groups:"basic"`
	Arrival   Stop     `json:"arrival" groups:"basic"`
}

// ConnectionService describes the days a connection runs on
type ConnectionService struct {
	Regular   string `json:"regular" groups:"detailed"`
	Irregular string `json:"irregular" groups:"detailed"`
}

// Connection is a single offering between two stops. Duration uses the API
// format of a day marker followed by a clock, e.g. 00d01:23:00.
type Connection struct {
	From        Stop               `json:"from" groups:"basic"`
	To          Stop               `json:"to" groups:"basic"`
	Duration    string             `json:"duration" groups:"basic"`
	Service     *ConnectionService `json:"service" groups:"detailed"`
	Products    []string           `json:"products" groups:"basic"`
	Transfers   int                `json:"transfers" groups:"basic"`
	Capacity1st FlexString         `json:"capacity1st" groups:"detailed"`
	Capacity2nd FlexString         `json:"capacity2nd" groups:"detailed"`
	Sections    []Section          `json:"sections" groups:"detailed"`
}

// FlexString accepts JSON strings, numbers and null. The API is not
// consistent about the type of some fields.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*f = FlexString(value)
		return nil
	}

	*f = FlexString(data)
	return nil
}

type locationsResponse struct {
	Stations []Location `json:"stations"`
}

type connectionsResponse struct {
	Connections []Connection `json:"connections"`
}
