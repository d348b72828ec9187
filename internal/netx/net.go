// Package netx holds the connectivity probe used to detect online/offline
// transitions.
package netx

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ProbeTimeout bounds a single Probe call.
const ProbeTimeout = 3 * time.Second

// Probe sends a HEAD request to url. Any response below 500 means the
// network is reachable; a transport error or a 5xx is reported as an error.
func Probe(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("probe failed: %s", resp.Status)
	}
	return nil
}
