// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/bookoptimal/internal/config"
	"github.com/tomtom215/bookoptimal/internal/metrics"
)

// ErrCircuitOpen is returned while the Open Library breaker rejects calls.
var ErrCircuitOpen = errors.New("catalog circuit breaker open")

const breakerName = "openlibrary"

// Request kinds, used as metric labels.
const (
	kindFiction = "fiction"
	kindSearch  = "search"
)

// StatusError is a non-2xx response from Open Library.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("open library returned %d: %s", e.StatusCode, e.Body)
}

// Doc is one entry of the search.json "docs" array. Only the fields the
// catalog uses are decoded.
type Doc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	Subject          []string `json:"subject"`
	CoverI           int      `json:"cover_i"`
}

type searchResponse struct {
	NumFound int   `json:"numFound"`
	Docs     []Doc `json:"docs"`
}

// Source fetches raw documents from Open Library. Client implements it;
// tests substitute fakes.
type Source interface {
	Fiction(ctx context.Context) ([]Doc, error)
	Search(ctx context.Context, term string) ([]Doc, error)
}

// Client talks to the Open Library search API. Every call waits on a token
// bucket and then runs through a circuit breaker, so a failing upstream is
// not hammered. Safe for concurrent use.
type Client struct {
	baseURL      string
	limit        int
	subject      string
	userAgent    string
	minTerm      int
	maxErrorBody int64
	http         *http.Client
	limiter      *rate.Limiter
	cb           *gobreaker.CircuitBreaker[[]Doc]
	logger       zerolog.Logger
}

var _ Source = (*Client)(nil)

// NewClient builds a client from the catalog configuration.
func NewClient(cfg *config.CatalogConfig, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "catalog").Logger()

	c := &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		limit:        cfg.Limit,
		subject:      cfg.FictionSubject,
		userAgent:    cfg.UserAgent,
		minTerm:      cfg.MinSearchTermLength,
		maxErrorBody: cfg.MaxErrorBodyBytes,
		http:         &http.Client{Timeout: cfg.Timeout},
		limiter:      rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		logger:       logger,
	}

	metrics.CatalogBreakerState.Set(stateToFloat(gobreaker.StateClosed))

	minRequests := cfg.BreakerMinRequests
	ratio := cfg.BreakerFailureRatio
	c.cb = gobreaker.NewCircuitBreaker[[]Doc](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerOpenTimeout,

		// Opens when failure rate >= ratio with at least minRequests requests.
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= ratio {
				logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening Open Library circuit")
				return true
			}
			return false
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.CatalogBreakerState.Set(stateToFloat(to))
		},

		// Caller cancellations and 4xx answers say nothing about upstream health.
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var se *StatusError
			if errors.As(err, &se) {
				return se.StatusCode < http.StatusInternalServerError
			}
			return false
		},
	})

	return c
}

// SetHTTPClient replaces the underlying HTTP client.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.http = hc
}

// State reports the breaker state ("closed", "half-open" or "open").
func (c *Client) State() string {
	return c.cb.State().String()
}

// Fiction fetches the configured subject listing (fiction by default).
func (c *Client) Fiction(ctx context.Context) ([]Doc, error) {
	params := url.Values{}
	params.Set("subject", c.subject)
	params.Set("limit", strconv.Itoa(c.limit))
	return c.fetch(ctx, kindFiction, params)
}

// Search runs a free-text query. Terms shorter than the configured minimum
// return an empty result without contacting Open Library.
func (c *Client) Search(ctx context.Context, term string) ([]Doc, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < c.minTerm {
		return []Doc{}, nil
	}

	params := url.Values{}
	params.Set("q", term)
	params.Set("limit", strconv.Itoa(c.limit))
	return c.fetch(ctx, kindSearch, params)
}

func (c *Client) fetch(ctx context.Context, kind string, params url.Values) ([]Doc, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	start := time.Now()
	docs, err := c.cb.Execute(func() ([]Doc, error) {
		return c.get(ctx, params)
	})
	rejected := errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
	metrics.RecordCatalogFetch(kind, time.Since(start), err, rejected)

	if rejected {
		c.logger.Warn().Err(err).Str("kind", kind).Msg("Open Library request rejected")
		return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	}
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("kind", kind).
		Int("docs", len(docs)).
		Dur("duration", time.Since(start)).
		Msg("Fetched Open Library documents")
	return docs, nil
}

func (c *Client) get(ctx context.Context, params url.Values) ([]Doc, error) {
	reqURL := c.baseURL + "/search.json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request open library: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(c.readBodyForError(resp.Body))}
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode open library response: %w", err)
	}
	if out.Docs == nil {
		out.Docs = []Doc{}
	}
	return out.Docs, nil
}

// readBodyForError reads at most maxErrorBody bytes of an error response.
func (c *Client) readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, c.maxErrorBody))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if int64(len(body)) == c.maxErrorBody {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
