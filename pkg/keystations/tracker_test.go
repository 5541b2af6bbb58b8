package keystations

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/transitrouter/pkg/transport"
)

type fakeService struct {
	mutex       sync.Mutex
	reachable   map[string]transport.Coordinate
	err         error
	connections []transport.ConnectionQuery
}

func (f *fakeService) SearchLocations(_ context.Context, _ transport.LocationQuery) ([]transport.Location, error) {
	return []transport.Location{}, nil
}

func (f *fakeService) GetConnections(_ context.Context, q transport.ConnectionQuery) ([]transport.Connection, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.connections = append(f.connections, q)

	if f.err != nil {
		return nil, f.err
	}

	coordinate, ok := f.reachable[q.To]
	if !ok {
		return []transport.Connection{}, nil
	}

	return []transport.Connection{
		{To: transport.Stop{Station: transport.Location{Name: q.To, Coordinate: coordinate}}},
	}, nil
}

func writeFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadMissingFiles(t *testing.T) {
	dir := t.TempDir()
	tracker := NewTracker(&fakeService{}, "Bern", filepath.Join(dir, "stations.txt"), filepath.Join(dir, "tracking.csv"), 2)

	require.NoError(t, tracker.Load())

	assert.Empty(t, tracker.Stations())
	assert.NotNil(t, tracker.Stations())
	assert.Empty(t, tracker.Tracking())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	stations := writeFile(t, dir, "stations.txt", "Milano Centrale\n\n  Paris Gare de Lyon \nMünchen Hbf\n")
	tracking := writeFile(t, dir, "tracking.csv", "start,station,reachable,latitude,longitude\n"+
		"Bern,Milano Centrale,True,45.486347,9.204528\n"+
		"Bern,Wien Hbf,false,,\n")

	tracker := NewTracker(&fakeService{}, "Bern", stations, tracking, 2)
	require.NoError(t, tracker.Load())

	assert.Equal(t, []string{"Milano Centrale", "Paris Gare de Lyon", "München Hbf"}, tracker.Stations())

	loaded := tracker.Tracking()
	require.Len(t, loaded, 2)
	assert.True(t, loaded[0].Reachable)
	assert.InDelta(t, 45.486347, *loaded[0].Latitude, 1e-9)
	assert.InDelta(t, 9.204528, *loaded[0].Longitude, 1e-9)
	assert.False(t, loaded[1].Reachable)
	assert.Nil(t, loaded[1].Latitude)
	assert.Nil(t, loaded[1].Longitude)

	*loaded[0].Latitude = 0
	assert.InDelta(t, 45.486347, *tracker.Tracking()[0].Latitude, 1e-9)
}

func TestLoadEmptyTrackingFile(t *testing.T) {
	dir := t.TempDir()
	tracking := writeFile(t, dir, "tracking.csv", "")

	tracker := NewTracker(&fakeService{}, "Bern", filepath.Join(dir, "missing.txt"), tracking, 1)
	require.NoError(t, tracker.Load())

	assert.Empty(t, tracker.Tracking())
}

func TestRefetch(t *testing.T) {
	dir := t.TempDir()
	stations := writeFile(t, dir, "stations.txt", "Milano Centrale\nWien Hbf\nMünchen Hbf\nLyon Part-Dieu\n")
	trackingPath := filepath.Join(dir, "out", "tracking.csv")

	service := &fakeService{
		reachable: map[string]transport.Coordinate{
			"Milano Centrale": {Type: "WGS84", X: 45.486347, Y: 9.204528},
			"München Hbf":     {Type: "WGS84", X: 48.140228, Y: 11.558338},
		},
	}

	tracker := NewTracker(service, "Bern", stations, trackingPath, 3)
	require.NoError(t, tracker.Load())

	var progressMutex sync.Mutex
	var completed []int
	tracking, err := tracker.Refetch(context.Background(), func(total int, done int) {
		progressMutex.Lock()
		defer progressMutex.Unlock()

		assert.Equal(t, 4, total)
		completed = append(completed, done)
	})
	require.NoError(t, err)

	require.Len(t, tracking, 4)
	assert.Equal(t, "Milano Centrale", tracking[0].Station)
	assert.True(t, tracking[0].Reachable)
	assert.Equal(t, "Wien Hbf", tracking[1].Station)
	assert.False(t, tracking[1].Reachable)
	assert.Nil(t, tracking[1].Latitude)
	assert.Equal(t, "München Hbf", tracking[2].Station)
	assert.Equal(t, "Lyon Part-Dieu", tracking[3].Station)

	assert.ElementsMatch(t, []int{1, 2, 3, 4}, completed)
	assert.Len(t, service.connections, 4)
	for _, query := range service.connections {
		assert.Equal(t, "Bern", query.From)
	}

	assert.Equal(t, tracking, tracker.Tracking())

	written, err := os.ReadFile(trackingPath)
	require.NoError(t, err)
	assert.Equal(t, "start,station,reachable,latitude,longitude\n"+
		"Bern,Milano Centrale,true,45.486347,9.204528\n"+
		"Bern,Wien Hbf,false,,\n"+
		"Bern,München Hbf,true,48.140228,11.558338\n"+
		"Bern,Lyon Part-Dieu,false,,\n", string(written))

	reloaded := NewTracker(service, "Bern", stations, trackingPath, 1)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, tracking, reloaded.Tracking())
}

func TestRefetchError(t *testing.T) {
	dir := t.TempDir()
	stations := writeFile(t, dir, "stations.txt", "Milano Centrale\nWien Hbf\n")
	trackingPath := writeFile(t, dir, "tracking.csv", "start,station,reachable,latitude,longitude\nBern,Wien Hbf,true,48.185,16.376\n")

	upstream := errors.New("transport unavailable")
	tracker := NewTracker(&fakeService{err: upstream}, "Bern", stations, trackingPath, 2)
	require.NoError(t, tracker.Load())

	_, err := tracker.Refetch(context.Background(), nil)
	assert.ErrorIs(t, err, upstream)

	assert.Len(t, tracker.Tracking(), 1)
}
