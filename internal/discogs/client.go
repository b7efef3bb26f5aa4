// Package discogs wraps the Discogs REST API: collection folders,
// marketplace pricing, and release details. Lookups degrade to absent
// results on failure so one bad release never aborts a batch.
package discogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"platter/internal/logging"
)

const (
	defaultBaseURL     = "https://api.discogs.com"
	defaultUserAgent   = "platter/dev"
	defaultHTTPTimeout = 120 * time.Second
	perPage            = 100
)

// conditionPriority orders price suggestion conditions from the
// grading actually listed down to mint.
var conditionPriority = []string{
	"Very Good (VG)",
	"Very Good Plus (VG+)",
	"Near Mint (NM or M-)",
	"Mint (M)",
}

// ResponseCache persists lookups between runs. Implementations must
// treat a miss as (nil, 0, false).
type ResponseCache interface {
	Get(ctx context.Context, url string, ttl time.Duration) (payload []byte, status int, ok bool)
	Put(ctx context.Context, url string, status int, payload []byte)
}

// Config describes the Discogs client configuration.
type Config struct {
	Token      string
	Username   string
	UserAgent  string
	BaseURL    string
	HTTPClient *http.Client
	// Delay paces successive API requests.
	Delay time.Duration
	// Cache, when set, serves marketplace and release lookups.
	Cache ResponseCache
	// CacheTTL bounds the age of served cache entries.
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// Client wraps the Discogs REST API.
type Client struct {
	token     string
	username  string
	userAgent string
	baseURL   *url.URL
	http      *http.Client
	delay     time.Duration
	cache     ResponseCache
	cacheTTL  time.Duration
	logger    *slog.Logger
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("discogs: token is required")
	}
	username := strings.TrimSpace(cfg.Username)
	if username == "" {
		return nil, errors.New("discogs: username is required")
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("discogs: parse base url: %w", err)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		token:     token,
		username:  username,
		userAgent: userAgent,
		baseURL:   baseURL,
		http:      client,
		delay:     cfg.Delay,
		cache:     cfg.Cache,
		cacheTTL:  cfg.CacheTTL,
		logger:    logging.NewComponentLogger(logger, "discogs"),
	}, nil
}

// Folders lists the user's collection folders.
func (c *Client) Folders(ctx context.Context) ([]Folder, error) {
	endpoint := c.baseURL.JoinPath("users", c.username, "collection", "folders")
	body, status, err := c.getJSON(ctx, endpoint.String(), false)
	if err != nil {
		return nil, err
	}
	if status >= 400 || body == nil {
		return nil, fmt.Errorf("discogs: list folders failed (status %d)", status)
	}
	var payload folderListResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("discogs: decode folders: %w", err)
	}
	return payload.Folders, nil
}

// FolderReleases fetches every release in a collection folder,
// following pagination. HTTP failures stop paging and are counted in
// the returned stats rather than failing the fetch.
func (c *Client) FolderReleases(ctx context.Context, folderID int) ([]CollectionRelease, PageStats, error) {
	var (
		releases []CollectionRelease
		stats    PageStats
	)
	for page := 1; ; page++ {
		endpoint := c.baseURL.JoinPath("users", c.username, "collection", "folders",
			fmt.Sprint(folderID), "releases")
		params := url.Values{}
		params.Set("per_page", fmt.Sprint(perPage))
		params.Set("page", fmt.Sprint(page))
		endpoint.RawQuery = params.Encode()

		body, status, err := c.getJSON(ctx, endpoint.String(), false)
		if err != nil {
			return releases, stats, err
		}
		if status >= 400 || body == nil {
			stats.HTTPErrors++
			break
		}
		var payload collectionPage
		if err := json.Unmarshal(body, &payload); err != nil {
			return releases, stats, fmt.Errorf("discogs: decode folder page: %w", err)
		}
		if len(payload.Releases) == 0 {
			break
		}
		stats.Pages++
		for _, row := range payload.Releases {
			bi := row.BasicInformation
			if bi.ID == 0 {
				continue
			}
			rel := CollectionRelease{
				ID:         bi.ID,
				Title:      strings.TrimSpace(bi.Title),
				Year:       bi.Year,
				Country:    strings.TrimSpace(bi.Country),
				CoverImage: strings.TrimSpace(bi.CoverImage),
				Thumb:      strings.TrimSpace(bi.Thumb),
			}
			if len(bi.Artists) > 0 {
				rel.Artist = strings.TrimSpace(bi.Artists[0].Name)
			}
			if len(bi.Labels) > 0 {
				rel.Label = strings.TrimSpace(bi.Labels[0].Name)
				rel.CatNo = strings.TrimSpace(bi.Labels[0].CatNo)
			}
			if len(bi.Formats) > 0 {
				rel.Format = formatDisplay(bi.Formats[0].Name, bi.Formats[0].Descriptions)
			}
			releases = append(releases, rel)
			stats.Rows++
		}
		if payload.Pagination.Pages > 0 && page >= payload.Pagination.Pages {
			break
		}
		if payload.Pagination.Pages == 0 && len(payload.Releases) < perPage {
			break
		}
	}
	return releases, stats, nil
}

// PriceSuggestion returns the suggested price for a release at the
// highest-priority graded condition available.
func (c *Client) PriceSuggestion(ctx context.Context, releaseID int) (PriceResult, error) {
	endpoint := c.baseURL.JoinPath("marketplace", "price_suggestions", fmt.Sprint(releaseID))
	body, status, err := c.getJSON(ctx, endpoint.String(), true)
	if err != nil {
		return PriceResult{}, err
	}
	if status >= 400 || body == nil {
		return PriceResult{Status: status}, nil
	}
	var payload priceSuggestionsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return PriceResult{Status: status}, nil
	}
	for _, condition := range conditionPriority {
		if entry, ok := payload[condition]; ok && entry.Value > 0 {
			return PriceResult{Value: entry.Value, OK: true, Status: status}, nil
		}
	}
	return PriceResult{Status: status}, nil
}

// MarketplaceMedian returns the median historical sale price for a
// release.
func (c *Client) MarketplaceMedian(ctx context.Context, releaseID int) (PriceResult, error) {
	endpoint := c.baseURL.JoinPath("marketplace", "stats", fmt.Sprint(releaseID))
	body, status, err := c.getJSON(ctx, endpoint.String(), true)
	if err != nil {
		return PriceResult{}, err
	}
	if status >= 400 || body == nil {
		return PriceResult{Status: status}, nil
	}
	var payload marketplaceStats
	if err := json.Unmarshal(body, &payload); err != nil {
		return PriceResult{Status: status}, nil
	}
	if payload.Median == nil || payload.Median.Value <= 0 {
		return PriceResult{Status: status}, nil
	}
	return PriceResult{Value: payload.Median.Value, OK: true, Status: status}, nil
}

// GetRelease fetches the full release record.
func (c *Client) GetRelease(ctx context.Context, releaseID int) (Release, error) {
	endpoint := c.baseURL.JoinPath("releases", fmt.Sprint(releaseID))
	body, status, err := c.getJSON(ctx, endpoint.String(), true)
	if err != nil {
		return Release{}, err
	}
	if status >= 400 || body == nil {
		return Release{}, fmt.Errorf("discogs: release %d failed (status %d)", releaseID, status)
	}
	var payload releaseDetail
	if err := json.Unmarshal(body, &payload); err != nil {
		return Release{}, fmt.Errorf("discogs: decode release %d: %w", releaseID, err)
	}
	release := Release{
		ID:      payload.ID,
		Title:   strings.TrimSpace(payload.Title),
		Year:    payload.Year,
		PageURL: strings.TrimSpace(payload.URI),
		Images:  payload.Images,
	}
	names := make([]string, 0, len(payload.Artists))
	for _, a := range payload.Artists {
		if name := strings.TrimSpace(a.Name); name != "" {
			names = append(names, name)
		}
	}
	release.Artist = strings.Join(names, ", ")
	return release, nil
}

// DownloadImage fetches an image URL and returns its bytes.
func (c *Client) DownloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("discogs: build image request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discogs: fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("discogs: image download failed (%s)", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("discogs: read image: %w", err)
	}
	return data, nil
}

// getJSON performs a GET with auth headers, bounded retries, and
// optional caching. HTTP error statuses are returned as (nil, status,
// nil) so callers can degrade to absent results; only transport
// failures and cancellation surface as errors.
func (c *Client) getJSON(ctx context.Context, fullURL string, cached bool) ([]byte, int, error) {
	if cached && c.cache != nil {
		if payload, status, ok := c.cache.Get(ctx, fullURL, c.cacheTTL); ok {
			return payload, status, nil
		}
	}

	requestID := uuid.NewString()
	backoff := InitialBackoff
	var lastErr error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("discogs: build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Authorization", "Discogs token="+c.token)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-Id", requestID)

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, 0, ctx.Err()
			}
			lastErr = err
			if !IsRetriable(err) || attempt == MaxAttempts {
				return nil, 0, fmt.Errorf("discogs: request failed: %w", err)
			}
			c.logger.Warn("transient request failure, retrying",
				logging.String(logging.FieldRequestID, requestID),
				logging.Int("attempt", attempt),
				logging.Error(err))
			if err := SleepWithContext(ctx, backoff); err != nil {
				return nil, 0, err
			}
			backoff = min(backoff*2, MaxBackoff)
			continue
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			if attempt == MaxAttempts {
				return nil, 0, fmt.Errorf("discogs: read response: %w", readErr)
			}
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt < MaxAttempts {
			wait := retryAfter(resp.Header.Get("Retry-After"), backoff)
			c.logger.Info("rate limited, backing off",
				logging.String(logging.FieldRequestID, requestID),
				logging.Duration("wait", wait),
				logging.Int("attempt", attempt))
			if err := SleepWithContext(ctx, wait); err != nil {
				return nil, 0, err
			}
			backoff = min(backoff*2, MaxBackoff)
			continue
		}

		if err := SleepWithContext(ctx, c.delay); err != nil {
			return nil, 0, err
		}

		if resp.StatusCode >= 400 {
			c.logger.Debug("request returned error status",
				logging.String(logging.FieldRequestID, requestID),
				logging.String("url", fullURL),
				logging.Int("status", resp.StatusCode))
			if cached && c.cache != nil {
				c.cache.Put(ctx, fullURL, resp.StatusCode, nil)
			}
			return nil, resp.StatusCode, nil
		}

		if cached && c.cache != nil {
			c.cache.Put(ctx, fullURL, resp.StatusCode, body)
		}
		return body, resp.StatusCode, nil
	}
	return nil, 0, fmt.Errorf("discogs: retries exhausted: %w", lastErr)
}

// formatDisplay joins a format name with its descriptions, so 7",
// 45 RPM and similar qualifiers survive into listings.
func formatDisplay(name string, descriptions []string) string {
	parts := make([]string, 0, 1+len(descriptions))
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		parts = append(parts, trimmed)
	}
	for _, desc := range descriptions {
		if trimmed := strings.TrimSpace(desc); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}
