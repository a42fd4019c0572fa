// Package healthchecksio pings a healthchecks.io compatible endpoint
// acting as a dead-man's switch for the run.
package healthchecksio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// New creates a new healthchecks.io client.
// If passed an empty check UUID string, it acts as a no-op
// implementation. Each client carries a run id sent as the rid
// query parameter so that the pings of one run can be correlated.
func New(httpClient *http.Client, baseURL, checkUUID string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		checkUUID:  checkUUID,
		runID:      uuid.NewString(),
	}
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	checkUUID  string
	runID      string
}

var (
	ErrStatusCode = errors.New("bad status code")
)

type State string

const (
	Ok    State = "ok"
	Start State = "start"
	Fail  State = "fail"
)

// Ping signals the given state to the healthchecks server, with an
// optional body carried as the ping payload. It is a no-op when no
// check UUID is configured.
func (c *Client) Ping(ctx context.Context, state State, body string) (err error) {
	if c.checkUUID == "" {
		return nil
	}

	url := c.baseURL + "/" + c.checkUUID
	if state != Ok {
		url += "/" + string(state)
	}
	url += "?rid=" + c.runID

	method := http.MethodGet
	var bodyReader *strings.Reader
	if body != "" {
		method = http.MethodPost
		bodyReader = strings.NewReader(body)
	}

	var request *http.Request
	if bodyReader != nil {
		request, err = http.NewRequestWithContext(ctx, method, url, bodyReader)
	} else {
		request, err = http.NewRequestWithContext(ctx, method, url, nil)
	}
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("doing http request: %w", err)
	}

	switch response.StatusCode {
	case http.StatusOK:
	default:
		_ = response.Body.Close()
		return fmt.Errorf("%w: %d %s", ErrStatusCode, response.StatusCode, response.Status)
	}

	err = response.Body.Close()
	if err != nil {
		return fmt.Errorf("closing response body: %w", err)
	}

	return nil
}

// Success pings the check as healthy with the given payload,
// usually the current public IP address.
func (c *Client) Success(ctx context.Context, payload string) error {
	return c.Ping(ctx, Ok, payload)
}

// Fail pings the check as failing with the given payload.
func (c *Client) Fail(ctx context.Context, payload string) error {
	return c.Ping(ctx, Fail, payload)
}
