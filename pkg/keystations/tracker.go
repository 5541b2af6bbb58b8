package keystations

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gocarina/gocsv"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/transitrouter/pkg/transport"
)

// Tracking records whether a key station could be reached directly from the
// home station the last time it was checked
type Tracking struct {
	Start     string   `json:"start"`
	Station   string   `json:"station"`
	Reachable bool     `json:"reachable"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type trackingRecord struct {
	Start     string `csv:"start"`
	Station   string `csv:"station"`
	Reachable string `csv:"reachable"`
	Latitude  string `csv:"latitude"`
	Longitude string `csv:"longitude"`
}

type Tracker struct {
	Transport   transport.Service
	HomeStation string

	StationsPath string
	TrackingPath string

	Concurrency int

	mutex    sync.RWMutex
	stations []string
	tracking []Tracking
}

func NewTracker(service transport.Service, homeStation string, stationsPath string, trackingPath string, concurrency int) *Tracker {
	if concurrency < 1 {
		concurrency = 1
	}

	return &Tracker{
		Transport:    service,
		HomeStation:  homeStation,
		StationsPath: stationsPath,
		TrackingPath: trackingPath,
		Concurrency:  concurrency,
		stations:     []string{},
		tracking:     []Tracking{},
	}
}

// Load reads the key station list and the last tracking results. Missing
// files leave the corresponding list empty.
func (t *Tracker) Load() error {
	stations, err := readStations(t.StationsPath)
	if err != nil {
		return err
	}

	tracking, err := readTracking(t.TrackingPath)
	if err != nil {
		return err
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.stations = stations
	t.tracking = tracking

	log.Debug().Int("stations", len(stations)).Int("tracking", len(tracking)).Msg("Loaded key stations")

	return nil
}

func (t *Tracker) Stations() []string {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return append([]string{}, t.stations...)
}

// Tracking returns a deep copy of the last tracking results
func (t *Tracker) Tracking() []Tracking {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	tracking := []Tracking{}
	if err := copier.CopyWithOption(&tracking, t.tracking, copier.Option{DeepCopy: true}); err != nil {
		log.Error().Err(err).Msg("Failed to copy key station tracking")
	}

	return tracking
}

// Refetch checks every key station against the transport API, replaces the
// tracking results and writes them to the tracking file. Results keep the
// order of the key station list.
func (t *Tracker) Refetch(ctx context.Context, onProgress func(total int, completed int)) ([]Tracking, error) {
	stations := t.Stations()
	total := len(stations)

	type indexedTracking struct {
		index    int
		tracking Tracking
	}

	var completed atomic.Int64
	var progressMutex sync.Mutex

	p := pool.NewWithResults[indexedTracking]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(t.Concurrency)

	for i, station := range stations {
		i, station := i, station
		p.Go(func(ctx context.Context) (indexedTracking, error) {
			tracking, err := t.check(ctx, station)
			if err != nil {
				return indexedTracking{}, err
			}

			if onProgress != nil {
				progressMutex.Lock()
				onProgress(total, int(completed.Add(1)))
				progressMutex.Unlock()
			}

			return indexedTracking{index: i, tracking: tracking}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].index < results[j].index
	})

	tracking := make([]Tracking, 0, len(results))
	for _, result := range results {
		tracking = append(tracking, result.tracking)
	}

	t.mutex.Lock()
	t.tracking = tracking
	t.mutex.Unlock()

	if err := t.write(tracking); err != nil {
		return nil, err
	}

	log.Info().Int("stations", total).Msg("Refetched key station tracking")

	return tracking, nil
}

func (t *Tracker) check(ctx context.Context, station string) (Tracking, error) {
	connections, err := t.Transport.GetConnections(ctx, transport.ConnectionQuery{
		From: t.HomeStation,
		To:   station,
	})
	if err != nil {
		return Tracking{}, fmt.Errorf("check key station %s: %w", station, err)
	}

	tracking := Tracking{
		Start:   t.HomeStation,
		Station: station,
	}

	if len(connections) > 0 {
		coordinate := connections[0].To.Station.Coordinate
		latitude, longitude := coordinate.X, coordinate.Y

		tracking.Reachable = true
		tracking.Latitude = &latitude
		tracking.Longitude = &longitude
	}

	return tracking, nil
}

func (t *Tracker) write(tracking []Tracking) error {
	if t.TrackingPath == "" {
		return nil
	}

	records := make([]*trackingRecord, 0, len(tracking))
	for _, entry := range tracking {
		records = append(records, &trackingRecord{
			Start:     entry.Start,
			Station:   entry.Station,
			Reachable: strconv.FormatBool(entry.Reachable),
			Latitude:  formatCoordinate(entry.Latitude),
			Longitude: formatCoordinate(entry.Longitude),
		})
	}

	if err := os.MkdirAll(filepath.Dir(t.TrackingPath), 0o755); err != nil {
		return err
	}

	file, err := os.Create(t.TrackingPath)
	if err != nil {
		return err
	}
	defer file.Close()

	return gocsv.MarshalFile(&records, file)
}

func readStations(path string) ([]string, error) {
	stations := []string{}

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return stations, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		station := strings.TrimSpace(scanner.Text())
		if station != "" {
			stations = append(stations, station)
		}
	}

	return stations, scanner.Err()
}

func readTracking(path string) ([]Tracking, error) {
	tracking := []Tracking{}

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return tracking, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records := []*trackingRecord{}
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return tracking, nil
		}
		return nil, fmt.Errorf("read key station tracking %s: %w", path, err)
	}

	for _, record := range records {
		reachable, _ := strconv.ParseBool(record.Reachable)

		tracking = append(tracking, Tracking{
			Start:     record.Start,
			Station:   record.Station,
			Reachable: reachable,
			Latitude:  parseCoordinate(record.Latitude),
			Longitude: parseCoordinate(record.Longitude),
		})
	}

	return tracking, nil
}

func formatCoordinate(value *float64) string {
	if value == nil {
		return ""
	}

	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func parseCoordinate(value string) *float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return nil
	}

	return &parsed
}
