package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrUnavailable marks any failure to reach the employee directory, from
// connection refusal to a non-2xx answer. Callers surface it as a
// collaborator outage rather than an internal fault.
var ErrUnavailable = errors.New("employee directory unavailable")

// Interviewer is one directory entry eligible to sit on a panel.
type Interviewer struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Role       string    `json:"role"`
}

type Client interface {
	// ListInterviewers fetches panel-eligible employees, optionally
	// filtered by department.
	ListInterviewers(ctx context.Context, department string) ([]Interviewer, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// NewClient returns nil when no base URL is configured; callers treat a
// nil client as "no directory wired".
func NewClient(baseURL string, logger *log.Logger) Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
		logger:  logger,
	}
}

func (c *httpClient) ListInterviewers(ctx context.Context, department string) ([]Interviewer, error) {
	if c == nil || c.client == nil {
		return nil, ErrUnavailable
	}

	endpoint := c.baseURL + "/employees/interviewers"
	if d := strings.TrimSpace(department); d != "" {
		endpoint += "?department=" + url.QueryEscape(d)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("component=directory action=list status=error err=%v", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if c.logger != nil {
			c.logger.Printf("component=directory action=list status=%d body=%q", resp.StatusCode, strings.TrimSpace(string(rb)))
		}
		return nil, fmt.Errorf("%w: status=%d", ErrUnavailable, resp.StatusCode)
	}

	var out []Interviewer
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: malformed payload: %v", ErrUnavailable, err)
	}
	return out, nil
}

var _ Client = (*httpClient)(nil)
