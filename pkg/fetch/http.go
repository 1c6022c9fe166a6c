package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// getJSON issues a GET with the given query parameters and decodes the
// JSON response body into out.
func getJSON(ctx context.Context, client *http.Client, baseURL string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
