package autocomplete

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gstrobl/places-autocomplete-go/debounce"
	log "github.com/gstrobl/places-autocomplete-go/pkg/logger"
	"github.com/gstrobl/places-autocomplete-go/places"
)

type Status string

const (
	StatusLoading Status = "loading"
	StatusResults Status = "ok-with-results"
	StatusEmpty   Status = "ok-empty"
	StatusError   Status = "error"
)

// State is the coordinator's visible state. Predictions are in server order
// and must be treated as read-only by callers.
type State struct {
	Query       string
	Status      Status
	Predictions []places.Prediction
	Loading     bool
	Err         error
}

type Config struct {
	// APIKey is required.
	APIKey string
	// DebounceInterval defaults to debounce.DefaultInterval.
	DebounceInterval time.Duration
	Language         string
	Types            []string
	SessionToken     string
	LocationBias     *places.LocationBias
	Timeout          time.Duration
	// Transport overrides the production transport, for tests.
	Transport  places.Transport
	SearchURL  string
	DetailsURL string
	// OnSelect is invoked by HandlePlaceSelect with the chosen place id.
	OnSelect func(placeID string)
	// OnChange is invoked after every state commit.
	OnChange func(State)
}

// Coordinator converts a stream of SetValue calls into debounced remote
// searches and owns the resulting State. One coordinator owns one debounce
// timer and one state; instances share nothing.
type Coordinator struct {
	client    *places.Client
	debouncer *debounce.Debouncer
	onSelect  func(string)
	onChange  func(State)

	mu     sync.Mutex
	state  State
	gen    uint64
	closed bool
}

func New(cfg Config) (*Coordinator, error) {
	client, err := places.New(places.Config{
		APIKey:       cfg.APIKey,
		Language:     cfg.Language,
		Types:        cfg.Types,
		SessionToken: cfg.SessionToken,
		LocationBias: cfg.LocationBias,
		Timeout:      cfg.Timeout,
		Transport:    cfg.Transport,
		SearchURL:    cfg.SearchURL,
		DetailsURL:   cfg.DetailsURL,
	})
	if err != nil {
		return nil, err
	}

	c := &Coordinator{
		client:   client,
		onSelect: cfg.OnSelect,
		onChange: cfg.OnChange,
		state:    State{Status: StatusEmpty, Predictions: []places.Prediction{}},
	}
	c.debouncer = debounce.New(cfg.DebounceInterval, func(query string) {
		c.Search(context.Background(), query)
	})

	return c, nil
}

type setOptions struct {
	noSearch bool
}

type SetOption func(*setOptions)

// NoSearch updates the query text without scheduling a search.
func NoSearch() SetOption {
	return func(o *setOptions) { o.noSearch = true }
}

// SetValue records the query text and schedules a debounced search. Within
// one debounce window only the last value triggers a network call.
func (c *Coordinator) SetValue(value string, opts ...SetOption) {
	var options setOptions
	for _, opt := range opts {
		opt(&options)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.Query = value
	snapshot := c.state
	c.mu.Unlock()

	c.notify(snapshot)

	if !options.noSearch {
		c.debouncer.Schedule(value)
	}
}

// Search performs the remote search immediately, bypassing the debounce
// timer. All failures land in State; none escape to the caller. Of
// overlapping calls, only the most recently initiated one may commit its
// result.
func (c *Coordinator) Search(ctx context.Context, query string) {
	if strings.TrimSpace(query) == "" {
		c.commit(0, func(s *State) {
			s.Status = StatusEmpty
			s.Predictions = []places.Prediction{}
			s.Loading = false
			s.Err = nil
		})
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.gen++
	gen := c.gen
	c.state.Loading = true
	c.state.Status = StatusLoading
	c.state.Err = nil
	snapshot := c.state
	c.mu.Unlock()

	c.notify(snapshot)

	predictions, err := c.client.Autocomplete(ctx, query)

	if err != nil {
		log.Logger().Error("autocomplete search failed", zap.String("query", query), zap.Error(err))
		c.commit(gen, func(s *State) {
			s.Status = StatusError
			s.Predictions = []places.Prediction{}
			s.Loading = false
			s.Err = err
		})
		return
	}

	c.commit(gen, func(s *State) {
		if len(predictions) == 0 {
			s.Status = StatusEmpty
			s.Predictions = []places.Prediction{}
		} else {
			s.Status = StatusResults
			s.Predictions = predictions
		}
		s.Loading = false
		s.Err = nil
	})
}

// GetPlaceDetails fetches the expanded record for a place id. Failures are
// returned to the caller and never written into State.
func (c *Coordinator) GetPlaceDetails(ctx context.Context, placeID string) (*places.Details, error) {
	return c.client.PlaceDetails(ctx, placeID)
}

// HandlePlaceSelect invokes the configured selection callback. It does not
// fetch details; compose it with GetPlaceDetails when both are wanted.
func (c *Coordinator) HandlePlaceSelect(placeID string) {
	if c.onSelect != nil {
		c.onSelect(placeID)
	}
}

// Clear resets query text, predictions and error to the empty state.
func (c *Coordinator) Clear() {
	c.commit(0, func(s *State) {
		s.Query = ""
		s.Status = StatusEmpty
		s.Predictions = []places.Prediction{}
		s.Loading = false
		s.Err = nil
	})
}

// State returns a copy of the current state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close cancels any pending debounce timer and bars further state commits.
// A search already in flight becomes a no-op when it returns.
func (c *Coordinator) Close() {
	c.debouncer.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.state.Loading = false
}

// commit applies mutate under the lock unless the coordinator is closed or
// the result belongs to a superseded search. gen 0 marks an unconditional
// commit (clear, empty query) and itself supersedes any search in flight.
func (c *Coordinator) commit(gen uint64, mutate func(*State)) {
	c.mu.Lock()
	if c.closed || (gen != 0 && gen != c.gen) {
		c.mu.Unlock()
		return
	}
	if gen == 0 {
		c.gen++
	}
	mutate(&c.state)
	snapshot := c.state
	c.mu.Unlock()

	c.notify(snapshot)
}

func (c *Coordinator) notify(s State) {
	if c.onChange != nil {
		c.onChange(s)
	}
}
