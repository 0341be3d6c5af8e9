// Package probe implements the bounded-time reachability check against the
// backend base URL. A probe result is produced fresh for every check and is
// only valid for the transition decision it feeds.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Result is the outcome of a single reachability probe.
type Result struct {
	Reachable  bool
	Detail     string
	ObservedAt time.Time
}

// Check issues one GET against baseURL and classifies the outcome. Any
// response with a status code below 500 counts as reachable: redirects and
// client errors still prove the server is up. Connect failures, DNS failures
// and timeouts all map to unreachable with a readable detail. Check returns
// within timeout regardless of network hang state.
func Check(ctx context.Context, baseURL string, timeout time.Duration) Result {
	observed := time.Now()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return Result{
			Reachable:  false,
			Detail:     fmt.Sprintf("invalid server URL: %v", err),
			ObservedAt: observed,
		}
	}

	client := &http.Client{
		Timeout: timeout,
		// Redirects already prove the server is up; don't follow them.
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Do(req)
	if err != nil {
		return Result{
			Reachable:  false,
			Detail:     fmt.Sprintf("cannot reach server: %v", err),
			ObservedAt: observed,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return Result{
			Reachable:  false,
			Detail:     fmt.Sprintf("server error: HTTP %d", resp.StatusCode),
			ObservedAt: observed,
		}
	}

	return Result{
		Reachable:  true,
		Detail:     fmt.Sprintf("HTTP %d", resp.StatusCode),
		ObservedAt: observed,
	}
}
