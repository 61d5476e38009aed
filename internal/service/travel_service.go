package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ai-tripmate-be/internal/dto"

	"github.com/patrickmn/go-cache"
)

// ITravelService fronts the third-party travel APIs. Every call is a
// stateless single-shot forward; upstream bodies pass through verbatim with
// a short cache to spare the rate-limited upstreams.
type ITravelService interface {
	SearchHotels(ctx context.Context, q *dto.HotelSearchQuery) (dto.ProxyResponse, error)
	SearchFlights(ctx context.Context, q *dto.FlightSearchQuery) (dto.ProxyResponse, error)
	GetWeather(ctx context.Context, city string) (dto.ProxyResponse, error)
	GetCurrency(ctx context.Context, base, symbols string) (dto.ProxyResponse, error)
	GetEvents(ctx context.Context, city string) (dto.ProxyResponse, error)
	GetAttractions(ctx context.Context, location string) (dto.ProxyResponse, error)
}

type travelService struct {
	bookingKey     string
	skyscannerKey  string
	openWeatherKey string
	eventbriteKey  string
	tripAdvisorKey string

	client *http.Client
	cache  *cache.Cache
}

func NewTravelService(bookingKey, skyscannerKey, openWeatherKey, eventbriteKey, tripAdvisorKey string) ITravelService {
	return &travelService{
		bookingKey:     bookingKey,
		skyscannerKey:  skyscannerKey,
		openWeatherKey: openWeatherKey,
		eventbriteKey:  eventbriteKey,
		tripAdvisorKey: tripAdvisorKey,
		client:         &http.Client{Timeout: 20 * time.Second},
		cache:          cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *travelService) SearchHotels(ctx context.Context, q *dto.HotelSearchQuery) (dto.ProxyResponse, error) {
	guests := q.Guests
	if guests <= 0 {
		guests = 1
	}
	params := url.Values{}
	params.Set("dest_id", q.Location)
	params.Set("dest_type", "city")
	params.Set("checkin_date", q.Checkin)
	params.Set("checkout_date", q.Checkout)
	params.Set("adults_number", strconv.Itoa(guests))
	params.Set("order_by", "popularity")

	return s.forward(ctx, "https://booking-com.p.rapidapi.com/v1/hotels/search", params, map[string]string{
		"X-RapidAPI-Key":  s.bookingKey,
		"X-RapidAPI-Host": "booking-com.p.rapidapi.com",
	})
}

func (s *travelService) SearchFlights(ctx context.Context, q *dto.FlightSearchQuery) (dto.ProxyResponse, error) {
	params := url.Values{}
	params.Set("origin", q.Origin)
	params.Set("destination", q.Destination)
	params.Set("date", q.Date)

	return s.forward(ctx, "https://skyscanner44.p.rapidapi.com/search", params, map[string]string{
		"X-RapidAPI-Key":  s.skyscannerKey,
		"X-RapidAPI-Host": "skyscanner44.p.rapidapi.com",
	})
}

func (s *travelService) GetWeather(ctx context.Context, city string) (dto.ProxyResponse, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", s.openWeatherKey)
	params.Set("units", "metric")

	return s.forward(ctx, "https://api.openweathermap.org/data/2.5/weather", params, nil)
}

func (s *travelService) GetCurrency(ctx context.Context, base, symbols string) (dto.ProxyResponse, error) {
	if base == "" {
		base = "USD"
	}
	if symbols == "" {
		symbols = "INR"
	}
	params := url.Values{}
	params.Set("base", base)
	params.Set("symbols", symbols)

	return s.forward(ctx, "https://api.exchangerate.host/latest", params, nil)
}

func (s *travelService) GetEvents(ctx context.Context, city string) (dto.ProxyResponse, error) {
	params := url.Values{}
	params.Set("location.address", city)

	return s.forward(ctx, "https://www.eventbriteapi.com/v3/events/search/", params, map[string]string{
		"Authorization": "Bearer " + s.eventbriteKey,
	})
}

func (s *travelService) GetAttractions(ctx context.Context, location string) (dto.ProxyResponse, error) {
	params := url.Values{}
	params.Set("query", location)

	return s.forward(ctx, "https://tripadvisor16.p.rapidapi.com/api/v1/attractions/searchAttractions", params, map[string]string{
		"X-RapidAPI-Key":  s.tripAdvisorKey,
		"X-RapidAPI-Host": "tripadvisor16.p.rapidapi.com",
	})
}

// forward performs the GET, caching successful bodies by full URL.
func (s *travelService) forward(ctx context.Context, baseURL string, params url.Values, headers map[string]string) (dto.ProxyResponse, error) {
	fullURL := baseURL + "?" + params.Encode()

	if val, ok := s.cache.Get(fullURL); ok {
		return val.(json.RawMessage), nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream error: status %d, body: %s", resp.StatusCode, string(body))
	}

	s.cache.Set(fullURL, json.RawMessage(body), cache.DefaultExpiration)
	return body, nil
}
