package jikan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/aniview/aniview/internal/config"
)

var (
	ErrAnimeNotFound = errors.New("anime not found")
	ErrAPIError      = errors.New("jikan API error")
	ErrRateLimited   = errors.New("jikan API rate limited")
)

// SortOrder selects the upstream ordering for list requests.
type SortOrder string

const (
	// SortPopularity orders by community member count descending.
	SortPopularity SortOrder = "popularity"
	// SortTrending restricts to currently airing shows with a minimum
	// scoring-user threshold, ordered by score descending.
	SortTrending SortOrder = "trending"
	// SortNewest orders by start date descending.
	SortNewest SortOrder = "newest"
)

// minScoringUsers is the threshold applied to trending queries so that
// barely-rated shows don't dominate the score ordering.
const minScoringUsers = 1000

// ListParams holds the query parameters for a list request.
type ListParams struct {
	Page    int
	Limit   int
	Query   string
	GenreID int       // 0 = no genre restriction
	Sort    SortOrder // empty = upstream relevance for searches, popularity otherwise
}

// Client is a Jikan v4 API client.
type Client struct {
	httpClient *http.Client
	config     config.CatalogConfig
	logger     zerolog.Logger
}

// NewClient creates a new Jikan client.
func NewClient(cfg config.CatalogConfig, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		config: cfg,
		logger: logger.With().Str("component", "jikan").Logger(),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "jikan"
}

// ListAnime fetches one page of the anime listing. Safe-for-work filtering
// is always requested upstream.
func (c *Client) ListAnime(ctx context.Context, p ListParams) (*AnimeListResponse, error) {
	endpoint := fmt.Sprintf("%s/anime", c.config.BaseURL)

	params := url.Values{}
	if p.Page > 0 {
		params.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		params.Set("limit", strconv.Itoa(p.Limit))
	}
	params.Set("sfw", "true")
	if p.Query != "" {
		params.Set("q", p.Query)
	}
	if p.GenreID > 0 {
		params.Set("genres", strconv.Itoa(p.GenreID))
	}

	switch p.Sort {
	case SortTrending:
		params.Set("status", "airing")
		params.Set("order_by", "score")
		params.Set("sort", "desc")
		params.Set("min_scoring_users", strconv.Itoa(minScoringUsers))
	case SortNewest:
		params.Set("order_by", "start_date")
		params.Set("sort", "desc")
	case SortPopularity:
		params.Set("order_by", "members")
		params.Set("sort", "desc")
	default:
		// Text searches carry no ordering parameters; upstream relevance
		// ranking decides. Browse listings without an explicit sort fall
		// back to popularity.
		if p.Query == "" {
			params.Set("order_by", "members")
			params.Set("sort", "desc")
		}
	}

	var response AnimeListResponse
	if err := c.doRequest(ctx, endpoint, params, &response); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("page", p.Page).
		Int("genre", p.GenreID).
		Str("sort", string(p.Sort)).
		Str("query", p.Query).
		Int("results", len(response.Data)).
		Msg("Anime listing fetched")

	return &response, nil
}

// GetAnimeFull fetches the full record for a single anime.
func (c *Client) GetAnimeFull(ctx context.Context, id int) (*Anime, error) {
	endpoint := fmt.Sprintf("%s/anime/%d/full", c.config.BaseURL, id)

	var response AnimeResponse
	if err := c.doRequest(ctx, endpoint, nil, &response); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("id", id).
		Str("title", response.Data.Title).
		Msg("Got anime details")

	return &response.Data, nil
}

// GetAnimeCharacters fetches the character/cast record for an anime.
func (c *Client) GetAnimeCharacters(ctx context.Context, id int) ([]CharacterEntry, error) {
	endpoint := fmt.Sprintf("%s/anime/%d/characters", c.config.BaseURL, id)

	var response CharactersResponse
	if err := c.doRequest(ctx, endpoint, nil, &response); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("id", id).
		Int("characters", len(response.Data)).
		Msg("Got anime characters")

	return response.Data, nil
}

// doRequest performs an HTTP GET request and decodes the JSON response.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	reqURL := endpoint
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", endpoint).Msg("HTTP request failed")
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			c.logger.Error().
				Int("status", resp.StatusCode).
				Str("message", errResp.Message).
				Msg("Jikan API error")
		}

		switch resp.StatusCode {
		case http.StatusNotFound:
			return ErrAnimeNotFound
		case http.StatusTooManyRequests:
			return ErrRateLimited
		default:
			return fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
