package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the MusicBrainz web service root.
const DefaultBaseURL = "https://musicbrainz.org/ws/2"

// searchLimit caps the number of recording candidates fetched per query.
// The best match is picked locally, so a small page is enough.
const searchLimit = 5

// Client performs recording searches against the MusicBrainz web service.
//
// Client provides:
//   - A descriptive User-Agent header, as the MusicBrainz API terms require
//   - A courtesy delay between consecutive requests
//   - Timeout handling
//
// Example usage:
//
//	client := NewClient("tunetidy", "0.3.0", "https://example.com/contact", 1.1)
//	recordings, err := client.SearchRecordings(ctx, "Time", "Pink Floyd")
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string

	// Courtesy rate limiting between requests.
	interval time.Duration
	last     time.Time
}

// NewClient creates a MusicBrainz client.
//
// Parameters:
//   - app: Application name reported in the User-Agent header
//   - version: Application version reported in the User-Agent header
//   - contact: Contact URL or email, required by the MusicBrainz API terms
//   - sleepSeconds: Minimum delay between consecutive requests
//
// The client is configured with a 30 second timeout.
func NewClient(app, version, contact string, sleepSeconds float64) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   DefaultBaseURL,
		userAgent: fmt.Sprintf("%s/%s ( %s )", app, version, contact),
		interval:  time.Duration(sleepSeconds * float64(time.Second)),
	}
}

// SearchRecordings searches MusicBrainz for recordings matching the given
// title and artist, ordered by the service's relevance score.
//
// Parameters:
//   - ctx: Context for cancellation
//   - title: Recording title to search for (required)
//   - artist: Artist name to narrow the search, or "" to search by title only
//
// Returns an error if the request fails, the service responds with a
// non-200 status, or the response body is not valid JSON.
func (c *Client) SearchRecordings(ctx context.Context, title, artist string) ([]Recording, error) {
	query := buildQuery(title, artist)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}

	c.wait()

	searchURL := fmt.Sprintf("%s/recording?query=%s&fmt=json&limit=%d",
		c.baseURL, url.QueryEscape(query), searchLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	return result.Recordings, nil
}

// wait enforces the courtesy delay between consecutive requests.
func (c *Client) wait() {
	if c.interval <= 0 {
		return
	}
	if elapsed := time.Since(c.last); elapsed < c.interval {
		time.Sleep(c.interval - elapsed)
	}
	c.last = time.Now()
}

// buildQuery constructs a Lucene search query from the available fields.
func buildQuery(title, artist string) string {
	var parts []string
	if title != "" {
		parts = append(parts, fmt.Sprintf("recording:%q", title))
	}
	if artist != "" {
		parts = append(parts, fmt.Sprintf("artist:%q", artist))
	}
	return strings.Join(parts, " AND ")
}
