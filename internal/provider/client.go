// Tunedeck - Personal Music Streaming and Recommendation Backend
// SPDX-License-Identifier: MIT
// https://github.com/tunedeck/tunedeck

package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Client is an HTTP implementation of Catalog against a Tunedeck-compatible
// music catalog API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a catalog API client.
//
// Parameters:
//   - baseURL: catalog API root (e.g. https://music.example.com/api/v1)
//   - apiKey: bearer token; empty disables the Authorization header
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Catalog = (*Client)(nil)

// Search queries the provider's search endpoint with a result-type filter.
func (c *Client) Search(ctx context.Context, query, filter string) ([]Result, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("filter", filter)

	var results []Result
	if err := c.getJSON(ctx, "/search?"+q.Encode(), &results); err != nil {
		return nil, fmt.Errorf("catalog search failed: %w", err)
	}
	return results, nil
}

// GetArtist fetches an artist page including the full track listing.
func (c *Client) GetArtist(ctx context.Context, artistID string) (*ArtistDetails, error) {
	var details ArtistDetails
	if err := c.getJSON(ctx, "/artists/"+url.PathEscape(artistID), &details); err != nil {
		return nil, fmt.Errorf("catalog artist lookup failed: %w", err)
	}
	return &details, nil
}

// GetSong fetches on-demand details for a single track.
func (c *Client) GetSong(ctx context.Context, trackID string) (*SongDetails, error) {
	var details SongDetails
	if err := c.getJSON(ctx, "/songs/"+url.PathEscape(trackID), &details); err != nil {
		return nil, fmt.Errorf("catalog song lookup failed: %w", err)
	}
	return &details, nil
}

// GetChart fetches up to limit entries of the named chart.
func (c *Client) GetChart(ctx context.Context, kind string, limit int) ([]Result, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var results []Result
	if err := c.getJSON(ctx, "/charts/"+url.PathEscape(kind)+"?"+q.Encode(), &results); err != nil {
		return nil, fmt.Errorf("catalog chart fetch failed: %w", err)
	}
	return results, nil
}

// getJSON performs a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
