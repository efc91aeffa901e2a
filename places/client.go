package places

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/gstrobl/places-autocomplete-go/metrics"
)

const (
	defaultSearchURL  = "https://places.googleapis.com/v1/places:autocomplete"
	defaultDetailsURL = "https://places.googleapis.com/v1/places"
	defaultLanguage   = "en"
	defaultTimeout    = 10 * time.Second

	searchFieldMask = "suggestions.placePrediction.place," +
		"suggestions.placePrediction.placeId," +
		"suggestions.placePrediction.text," +
		"suggestions.placePrediction.structuredFormat," +
		"suggestions.placePrediction.types"
	detailsFieldMask = "formattedAddress,addressComponents,location"
)

type Config struct {
	// APIKey is required.
	APIKey string
	// Language defaults to "en".
	Language string
	// Types restricts autocomplete results to the given place types.
	Types []string
	// SessionToken groups autocomplete and details calls for billing.
	SessionToken string
	// LocationBias prioritizes results near the given circle.
	LocationBias *LocationBias
	// Timeout bounds each remote call when the context has no deadline.
	Timeout time.Duration
	// Transport overrides the fasthttp transport, for tests.
	Transport Transport
	// SearchURL and DetailsURL override the production endpoints.
	SearchURL  string
	DetailsURL string
}

// Client talks to the remote place-search service. It holds no mutable
// state and is safe for concurrent use.
type Client struct {
	cfg       Config
	transport Transport
}

func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("places: api key must be set")
	}
	if cfg.Language == "" {
		cfg.Language = defaultLanguage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.SearchURL == "" {
		cfg.SearchURL = defaultSearchURL
	}
	if cfg.DetailsURL == "" {
		cfg.DetailsURL = defaultDetailsURL
	}

	transport := cfg.Transport
	if transport == nil {
		transport = NewTransport(cfg.Timeout)
	}

	return &Client{cfg: cfg, transport: transport}, nil
}

// NewSessionToken mints an opaque token for grouping a sequence of
// autocomplete and details calls.
func NewSessionToken() string {
	return uuid.NewString()
}

// Autocomplete returns candidate places for the query, in server order.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]Prediction, error) {
	payload, err := jsoniter.Marshal(autocompleteRequest{
		Input:        query,
		LanguageCode: c.cfg.Language,
		Types:        c.cfg.Types,
		LocationBias: c.cfg.LocationBias,
	})
	if err != nil {
		return nil, fmt.Errorf("could not encode autocomplete request: %w", err)
	}

	headers := map[string]string{
		"X-Goog-FieldMask": searchFieldMask,
	}
	if c.cfg.SessionToken != "" {
		headers["X-Goog-Session-Token"] = c.cfg.SessionToken
	}

	start := time.Now()
	res, err := c.transport.Do(ctx, &Request{
		Method:  "POST",
		URL:     c.cfg.SearchURL + "?key=" + c.cfg.APIKey,
		Headers: headers,
		Body:    payload,
	})
	metrics.ObserveRequest("autocomplete", statusOf(res), err, time.Since(start))
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, newStatusError("autocomplete", res.StatusCode, res.Body)
	}

	var response autocompleteResponse
	if err := jsoniter.Unmarshal(res.Body, &response); err != nil {
		return nil, fmt.Errorf("could not decode autocomplete response: %w", err)
	}
	if response.Suggestions == nil {
		return nil, fmt.Errorf("autocomplete response is missing suggestions")
	}

	predictions := make([]Prediction, 0, len(*response.Suggestions))
	for _, suggestion := range *response.Suggestions {
		predictions = append(predictions, mapPrediction(suggestion.PlacePrediction))
	}

	return predictions, nil
}

// PlaceDetails fetches the expanded record for one place id.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*Details, error) {
	if placeID == "" {
		return nil, ErrMissingPlaceID
	}

	start := time.Now()
	res, err := c.transport.Do(ctx, &Request{
		Method: "GET",
		URL: c.cfg.DetailsURL + "/" + placeID +
			"?key=" + c.cfg.APIKey + "&languageCode=" + c.cfg.Language,
		Headers: map[string]string{"X-Goog-FieldMask": detailsFieldMask},
	})
	metrics.ObserveRequest("details", statusOf(res), err, time.Since(start))
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, newStatusError("place details", res.StatusCode, res.Body)
	}

	var response detailsResponse
	if err := jsoniter.Unmarshal(res.Body, &response); err != nil {
		return nil, fmt.Errorf("could not decode place details response: %w", err)
	}

	components := response.AddressComponents
	if components == nil {
		components = []AddressComponent{}
	}

	return &Details{
		PlaceID:           placeID,
		FormattedAddress:  response.FormattedAddress,
		AddressComponents: components,
		Latitude:          response.Location.Latitude,
		Longitude:         response.Location.Longitude,
		StreetNumber:      componentByType(components, "street_number"),
		Route:             componentByType(components, "route"),
		City:              componentByType(components, "locality"),
		State:             componentByType(components, "administrative_area_level_1"),
		Country:           componentByType(components, "country"),
		PostalCode:        componentByType(components, "postal_code"),
	}, nil
}

func mapPrediction(p PlacePrediction) Prediction {
	return Prediction{
		Place:         p.Place,
		PlaceID:       p.PlaceID,
		Text:          p.Text.Text,
		Matches:       p.Text.Matches,
		MainText:      p.StructuredFormat.MainText.Text,
		SecondaryText: p.StructuredFormat.SecondaryText.Text,
		Types:         p.Types,
	}
}

// componentByType returns the long text of the first component tagged with
// the given type, or nil when none matches.
func componentByType(components []AddressComponent, componentType string) *string {
	for _, component := range components {
		for _, t := range component.Types {
			if t == componentType {
				longText := component.LongText
				return &longText
			}
		}
	}
	return nil
}

func statusOf(res *Response) int {
	if res == nil {
		return 0
	}
	return res.StatusCode
}
