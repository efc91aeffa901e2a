package handler

import "github.com/gstrobl/places-autocomplete-go/places"

type ErrorResponse struct {
	Message string `json:"message"`
}

type AutocompleteResponse struct {
	Count   int                 `json:"count"`
	Results []places.Prediction `json:"results"`
}
