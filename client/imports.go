package client

import "context"

// ImportService triggers scrape runs.
type ImportService struct {
	c *Client
}

// importRequest is the JSON body for the import endpoint.
type importRequest struct {
	Username string `json:"username"`
	Refresh  bool   `json:"refresh"`
}

// Run imports username's film diary. The call blocks until the run
// completes; progress can be watched over the server's WebSocket endpoint.
func (s *ImportService) Run(ctx context.Context, username string, refresh bool) (*RunSummary, error) {
	var summary RunSummary
	if err := s.c.post(ctx, "/api/v1/import", importRequest{Username: username, Refresh: refresh}, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
