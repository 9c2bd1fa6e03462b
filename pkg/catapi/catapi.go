package catapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Breed struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type CatAPI interface {
	ValidateBreed(ctx context.Context, name string) (Breed, error)
}

// ErrBreedNotFound means the api answered and the breed is not in its list.
var ErrBreedNotFound = errors.New("breed not found")

// ErrUnavailable means the api could not be reached or did not answer in
// time. Distinct from ErrBreedNotFound so callers can retry if they want;
// the client itself never retries.
var ErrUnavailable = errors.New("cat api unavailable")

// UpstreamError is a non-200 answer from the api itself.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("cat api returned HTTP %d", e.StatusCode)
}

type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ValidateBreed matches name case-insensitively against the breed list,
// fetched fresh on every call.
func (c *Client) ValidateBreed(ctx context.Context, name string) (Breed, error) {
	breeds, err := c.fetchAllBreeds(ctx)
	if err != nil {
		return Breed{}, err
	}
	for _, breed := range breeds {
		if strings.EqualFold(breed.Name, name) {
			return breed, nil
		}
	}
	return Breed{}, fmt.Errorf("%w: %q", ErrBreedNotFound, name)
}

func (c *Client) fetchAllBreeds(ctx context.Context) ([]Breed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: response.StatusCode}
	}

	var breeds []Breed
	if err := json.NewDecoder(response.Body).Decode(&breeds); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrUnavailable, err)
	}
	return breeds, nil
}
