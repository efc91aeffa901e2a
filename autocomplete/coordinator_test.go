package autocomplete

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstrobl/places-autocomplete-go/places"
)

type fakeTransport struct {
	mu       sync.Mutex
	requests []*places.Request
	respond  func(*places.Request) (*places.Response, error)
}

func (f *fakeTransport) Do(_ context.Context, req *places.Request) (*places.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	respond := f.respond
	f.mu.Unlock()
	return respond(req)
}

func (f *fakeTransport) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeTransport) lastInput(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	var body map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal(f.requests[len(f.requests)-1].Body, &body))
	return body["input"].(string)
}

func respondWith(statusCode int, body string) func(*places.Request) (*places.Response, error) {
	return func(*places.Request) (*places.Response, error) {
		return &places.Response{StatusCode: statusCode, Body: []byte(body)}, nil
	}
}

const oneSuggestionBody = `{
	"suggestions": [
		{
			"placePrediction": {
				"place": "places/ChIJtest",
				"placeId": "ChIJtest",
				"text": {"text": "Test Street"},
				"structuredFormat": {
					"mainText": {"text": "Test Street"},
					"secondaryText": {"text": "Testville"}
				},
				"types": ["route"]
			}
		}
	]
}`

func newTestCoordinator(t *testing.T, cfg Config, transport places.Transport) *Coordinator {
	t.Helper()
	cfg.APIKey = "test-key"
	cfg.Transport = transport
	c, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestSearchEmptyQueryShortCircuits(t *testing.T) {
	transport := &fakeTransport{respond: respondWith(200, oneSuggestionBody)}
	c := newTestCoordinator(t, Config{}, transport)

	c.Search(context.Background(), "   ")

	state := c.State()
	assert.Equal(t, StatusEmpty, state.Status)
	assert.Empty(t, state.Predictions)
	assert.False(t, state.Loading)
	assert.NoError(t, state.Err)
	assert.Zero(t, transport.calls())
}

func TestSearchSuccessWithResults(t *testing.T) {
	transport := &fakeTransport{respond: respondWith(200, oneSuggestionBody)}
	c := newTestCoordinator(t, Config{}, transport)

	c.Search(context.Background(), "test")

	state := c.State()
	assert.Equal(t, StatusResults, state.Status)
	require.Len(t, state.Predictions, 1)
	assert.Equal(t, "ChIJtest", state.Predictions[0].PlaceID)
	assert.False(t, state.Loading)
	assert.NoError(t, state.Err)
}

func TestSearchSuccessEmptyResults(t *testing.T) {
	transport := &fakeTransport{respond: respondWith(200, `{"suggestions":[]}`)}
	c := newTestCoordinator(t, Config{}, transport)

	c.Search(context.Background(), "nowhere")

	state := c.State()
	assert.Equal(t, StatusEmpty, state.Status)
	assert.Empty(t, state.Predictions)
	assert.NoError(t, state.Err)
}

func TestSearchTransportErrorLandsInState(t *testing.T) {
	transportErr := errors.New("dial tcp: network unreachable")
	transport := &fakeTransport{respond: func(*places.Request) (*places.Response, error) {
		return nil, transportErr
	}}
	c := newTestCoordinator(t, Config{}, transport)

	c.Search(context.Background(), "test")

	state := c.State()
	assert.Equal(t, StatusError, state.Status)
	assert.Empty(t, state.Predictions)
	assert.False(t, state.Loading)
	assert.ErrorIs(t, state.Err, transportErr)
}

func TestSearchMalformedResponseLandsInState(t *testing.T) {
	transport := &fakeTransport{respond: respondWith(200, `{}`)}
	c := newTestCoordinator(t, Config{}, transport)

	c.Search(context.Background(), "test")

	state := c.State()
	assert.Equal(t, StatusError, state.Status)
	assert.Error(t, state.Err)
	assert.Empty(t, state.Predictions)
}

func TestSearchLoadingTransitions(t *testing.T) {
	release := make(chan struct{})
	transport := &fakeTransport{respond: func(*places.Request) (*places.Response, error) {
		<-release
		return &places.Response{StatusCode: 200, Body: []byte(oneSuggestionBody)}, nil
	}}
	c := newTestCoordinator(t, Config{}, transport)

	done := make(chan struct{})
	go func() {
		c.Search(context.Background(), "test")
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return c.State().Loading
	}, time.Second, 5*time.Millisecond, "loading never became true")
	assert.Equal(t, StatusLoading, c.State().Status)

	close(release)
	<-done

	state := c.State()
	assert.False(t, state.Loading)
	assert.Equal(t, StatusResults, state.Status)
}

func TestSetValueDebouncesToSingleCall(t *testing.T) {
	transport := &fakeTransport{respond: respondWith(200, oneSuggestionBody)}
	c := newTestCoordinator(t, Config{DebounceInterval: 30 * time.Millisecond}, transport)

	c.SetValue("i")
	c.SetValue("is")
	c.SetValue("ist")
	c.SetValue("istanbul")

	assert.Eventually(t, func() bool {
		return c.State().Status == StatusResults
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, transport.calls())
	assert.Equal(t, "istanbul", transport.lastInput(t))
	assert.Equal(t, "istanbul", c.State().Query)
}

func TestSetValueNoSearch(t *testing.T) {
	transport := &fakeTransport{respond: respondWith(200, oneSuggestionBody)}
	c := newTestCoordinator(t, Config{DebounceInterval: 10 * time.Millisecond}, transport)

	c.SetValue("selected place", NoSearch())

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, transport.calls())
	assert.Equal(t, "selected place", c.State().Query)
}

func TestOverlappingDirectSearchesLastInitiatedWins(t *testing.T) {
	releaseSlow := make(chan struct{})
	transport := &fakeTransport{respond: func(req *places.Request) (*places.Response, error) {
		var body map[string]interface{}
		if err := jsoniter.Unmarshal(req.Body, &body); err != nil {
			return nil, err
		}
		if body["input"] == "slow" {
			<-releaseSlow
			return nil, errors.New("stale call must not commit this")
		}
		return &places.Response{StatusCode: 200, Body: []byte(oneSuggestionBody)}, nil
	}}
	c := newTestCoordinator(t, Config{}, transport)

	slowDone := make(chan struct{})
	go func() {
		c.Search(context.Background(), "slow")
		close(slowDone)
	}()

	assert.Eventually(t, func() bool {
		return transport.calls() == 1
	}, time.Second, 5*time.Millisecond)

	c.Search(context.Background(), "fast")
	require.Equal(t, StatusResults, c.State().Status)

	close(releaseSlow)
	<-slowDone

	state := c.State()
	assert.Equal(t, StatusResults, state.Status)
	assert.NoError(t, state.Err)
	require.Len(t, state.Predictions, 1)
}

func TestCloseCancelsPendingDebounce(t *testing.T) {
	transport := &fakeTransport{respond: respondWith(200, oneSuggestionBody)}
	c := newTestCoordinator(t, Config{DebounceInterval: 20 * time.Millisecond}, transport)

	c.SetValue("pending")
	c.Close()

	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, transport.calls())
	assert.False(t, c.State().Loading)
}

func TestCloseDiscardsInFlightResult(t *testing.T) {
	release := make(chan struct{})
	transport := &fakeTransport{respond: func(*places.Request) (*places.Response, error) {
		<-release
		return &places.Response{StatusCode: 200, Body: []byte(oneSuggestionBody)}, nil
	}}
	c := newTestCoordinator(t, Config{}, transport)

	done := make(chan struct{})
	go func() {
		c.Search(context.Background(), "test")
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return c.State().Loading
	}, time.Second, 5*time.Millisecond)

	c.Close()
	close(release)
	<-done

	state := c.State()
	assert.False(t, state.Loading)
	assert.Empty(t, state.Predictions)
	assert.NotEqual(t, StatusResults, state.Status)
}

func TestClearResetsState(t *testing.T) {
	transport := &fakeTransport{respond: respondWith(200, oneSuggestionBody)}
	c := newTestCoordinator(t, Config{}, transport)

	c.SetValue("test", NoSearch())
	c.Search(context.Background(), "test")
	require.Equal(t, StatusResults, c.State().Status)

	c.Clear()

	state := c.State()
	assert.Equal(t, "", state.Query)
	assert.Equal(t, StatusEmpty, state.Status)
	assert.Empty(t, state.Predictions)
	assert.False(t, state.Loading)
	assert.NoError(t, state.Err)
}

func TestHandlePlaceSelectInvokesCallback(t *testing.T) {
	transport := &fakeTransport{respond: respondWith(200, oneSuggestionBody)}

	var selected []string
	c := newTestCoordinator(t, Config{
		OnSelect: func(placeID string) {
			selected = append(selected, placeID)
		},
	}, transport)

	c.HandlePlaceSelect("ChIJtest")

	assert.Equal(t, []string{"ChIJtest"}, selected)
	assert.Zero(t, transport.calls())
}

func TestHandlePlaceSelectWithoutCallback(t *testing.T) {
	transport := &fakeTransport{respond: respondWith(200, oneSuggestionBody)}
	c := newTestCoordinator(t, Config{}, transport)

	assert.NotPanics(t, func() {
		c.HandlePlaceSelect("ChIJtest")
	})
}

func TestGetPlaceDetailsPropagatesFailure(t *testing.T) {
	body := `{"error":{"code":404,"message":"Place not found.","status":"NOT_FOUND"}}`
	transport := &fakeTransport{respond: respondWith(404, body)}
	c := newTestCoordinator(t, Config{}, transport)

	_, err := c.GetPlaceDetails(context.Background(), "ChIJmissing")
	require.Error(t, err)

	var statusErr *places.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Place not found.", statusErr.Message)

	// details failures stay out of the search pipeline's state
	state := c.State()
	assert.Equal(t, StatusEmpty, state.Status)
	assert.NoError(t, state.Err)
}

func TestOnChangeNotifiedOnCommit(t *testing.T) {
	transport := &fakeTransport{respond: respondWith(200, oneSuggestionBody)}

	var mu sync.Mutex
	var statuses []Status
	c := newTestCoordinator(t, Config{
		OnChange: func(s State) {
			mu.Lock()
			statuses = append(statuses, s.Status)
			mu.Unlock()
		},
	}, transport)

	c.Search(context.Background(), "test")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Status{StatusLoading, StatusResults}, statuses)
}
