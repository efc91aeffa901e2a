package places

// Wire Models (Places API v1)

type MatchRange struct {
	StartOffset int `json:"startOffset"`
	EndOffset   int `json:"endOffset"`
}

type FormatText struct {
	Text    string       `json:"text"`
	Matches []MatchRange `json:"matches,omitempty"`
}

type StructuredFormat struct {
	MainText      FormatText `json:"mainText"`
	SecondaryText FormatText `json:"secondaryText"`
}

type PlacePrediction struct {
	Place            string           `json:"place"`
	PlaceID          string           `json:"placeId"`
	Text             FormatText       `json:"text"`
	StructuredFormat StructuredFormat `json:"structuredFormat"`
	Types            []string         `json:"types,omitempty"`
}

type Suggestion struct {
	PlacePrediction PlacePrediction `json:"placePrediction"`
}

// Suggestions is a pointer so that a response body without the field can be
// told apart from one carrying an empty list.
type autocompleteResponse struct {
	Suggestions *[]Suggestion `json:"suggestions"`
}

type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Circle struct {
	Center LatLng  `json:"center"`
	Radius float64 `json:"radius,omitempty"`
}

type LocationBias struct {
	Circle Circle `json:"circle"`
}

type autocompleteRequest struct {
	Input        string        `json:"input"`
	LanguageCode string        `json:"languageCode"`
	Types        []string      `json:"types,omitempty"`
	LocationBias *LocationBias `json:"locationBias,omitempty"`
}

type AddressComponent struct {
	LongText  string   `json:"longText"`
	ShortText string   `json:"shortText"`
	Types     []string `json:"types"`
}

type detailsResponse struct {
	FormattedAddress  string             `json:"formattedAddress"`
	AddressComponents []AddressComponent `json:"addressComponents"`
	Location          LatLng             `json:"location"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Local Models

// Prediction is one autocomplete candidate, in server-returned order.
type Prediction struct {
	Place         string       `json:"place"`
	PlaceID       string       `json:"place_id"`
	Text          string       `json:"text"`
	Matches       []MatchRange `json:"matches,omitempty"`
	MainText      string       `json:"main_text"`
	SecondaryText string       `json:"secondary_text,omitempty"`
	Types         []string     `json:"types,omitempty"`
}

// Details is the expanded record for a single place id. The derived address
// fields are nil when no component carries the matching type tag.
type Details struct {
	PlaceID           string             `json:"place_id"`
	FormattedAddress  string             `json:"formatted_address"`
	AddressComponents []AddressComponent `json:"address_components"`
	Latitude          float64            `json:"latitude"`
	Longitude         float64            `json:"longitude"`
	StreetNumber      *string            `json:"street_number,omitempty"`
	Route             *string            `json:"route,omitempty"`
	City              *string            `json:"city,omitempty"`
	State             *string            `json:"state,omitempty"`
	Country           *string            `json:"country,omitempty"`
	PostalCode        *string            `json:"postal_code,omitempty"`
}
