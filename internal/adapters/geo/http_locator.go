package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/platform/obs"
	"fleet-route-service/internal/ports"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// HTTPLocator resolves truck positions from a device-gateway endpoint
// (GET {base}/devices/{truckID}/position). Transient failures are retried
// with exponential backoff inside the caller's deadline.
type HTTPLocator struct {
	baseURL string
	apiKey  string
	session *http.Client
}

func NewHTTPLocator(baseURL, apiKey string) (*HTTPLocator, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("http locator: baseURL is required")
	}

	return &HTTPLocator{
		baseURL: baseURL,
		apiKey:  apiKey,
		session: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type positionResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (l *HTTPLocator) Locate(ctx context.Context, truckID string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geo.locate")(&err)

	endpoint := l.baseURL + "/devices/" + url.PathEscape(truckID) + "/position"

	resp, err := l.doWithRetry(ctx, func() (*http.Request, error) {
		return l.newRequest(ctx, http.MethodGet, endpoint)
	})
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) && he.Code == http.StatusNotFound {
			return domain.Coordinates{}, fmt.Errorf("%w: truck %q unknown to gateway", ports.ErrLocationUnavailable, truckID)
		}
		return domain.Coordinates{}, fmt.Errorf("%w: %v", ports.ErrLocationUnavailable, err)
	}
	defer resp.Body.Close()

	var decoded positionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: decode position response: %v", ports.ErrLocationUnavailable, err)
	}

	return domain.Coordinates{Latitude: decoded.Latitude, Longitude: decoded.Longitude}, nil
}

func (l *HTTPLocator) newRequest(ctx context.Context, method, endpoint string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if l.apiKey != "" {
		req.Header.Set("Authorization", l.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (l *HTTPLocator) do(req *http.Request) (*http.Response, error) {
	resp, err := l.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 5xx responses)
// using exponential backoff while respecting context cancellation.
func (l *HTTPLocator) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 3
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := l.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
