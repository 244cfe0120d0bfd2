package client

import (
	"context"
	"net/url"
	"strconv"
)

// MovieService handles movie query operations.
type MovieService struct {
	c *Client
}

// movieListResponse wraps list-style responses.
type movieListResponse struct {
	Movies []Movie `json:"movies"`
	Count  int     `json:"count"`
}

// List returns every stored movie, newest first.
func (s *MovieService) List(ctx context.Context) ([]Movie, error) {
	var resp movieListResponse
	if err := s.c.get(ctx, "/api/v1/movies", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Movies, nil
}

// Get returns a single movie by its external ID.
func (s *MovieService) Get(ctx context.Context, externalID string) (*Movie, error) {
	var movie Movie
	if err := s.c.get(ctx, "/api/v1/movies/"+url.PathEscape(externalID), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// Search returns movies whose title contains term, case-insensitively.
func (s *MovieService) Search(ctx context.Context, term string) ([]Movie, error) {
	params := url.Values{}
	params.Set("q", term)

	var resp movieListResponse
	if err := s.c.get(ctx, "/api/v1/movies/search", params, &resp); err != nil {
		return nil, err
	}
	return resp.Movies, nil
}

// ByRating returns movies rated at or above min (0 to 5).
func (s *MovieService) ByRating(ctx context.Context, min float64) ([]Movie, error) {
	params := url.Values{}
	params.Set("min", strconv.FormatFloat(min, 'f', -1, 64))

	var resp movieListResponse
	if err := s.c.get(ctx, "/api/v1/movies/by-rating", params, &resp); err != nil {
		return nil, err
	}
	return resp.Movies, nil
}

// ByYear returns movies released in the given year.
func (s *MovieService) ByYear(ctx context.Context, year int) ([]Movie, error) {
	params := url.Values{}
	params.Set("year", strconv.Itoa(year))

	var resp movieListResponse
	if err := s.c.get(ctx, "/api/v1/movies/by-year", params, &resp); err != nil {
		return nil, err
	}
	return resp.Movies, nil
}

// DeleteAll wipes the stored diary.
func (s *MovieService) DeleteAll(ctx context.Context) error {
	return s.c.del(ctx, "/api/v1/movies", nil)
}
