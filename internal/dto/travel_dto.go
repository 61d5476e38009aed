package dto

import "encoding/json"

type HotelSearchQuery struct {
	Location string `query:"location" validate:"required"`
	Checkin  string `query:"checkin" validate:"required"`
	Checkout string `query:"checkout" validate:"required"`
	Guests   int    `query:"guests"`
}

type FlightSearchQuery struct {
	Origin      string `query:"origin" validate:"required"`
	Destination string `query:"destination" validate:"required"`
	Date        string `query:"date" validate:"required"`
}

// ProxyResponse is an upstream body forwarded verbatim.
type ProxyResponse = json.RawMessage

type TravelErrorResponse struct {
	Error string `json:"error"`
}
