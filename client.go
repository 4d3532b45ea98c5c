package fireauth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"google.golang.org/api/googleapi"
)

// apiClient is the JSON-over-HTTP client behind every admin REST call.
// It injects credential headers and maps Google API error responses.
type apiClient struct {
	http   *http.Client
	creds  Credentials
	logger *slog.Logger
}

func newAPIClient(creds Credentials, httpClient *http.Client, logger *slog.Logger) *apiClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: defaultHTTPTimeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
			},
		}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &apiClient{http: httpClient, creds: creds, logger: logger}
}

// do sends one request. A nil body sends no payload; a nil out discards
// the response body after the status check.
func (c *apiClient) do(ctx context.Context, method, endpoint string, params url.Values, body, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return newError(ErrCodeEncodeRequest, err)
		}
		payload = bytes.NewReader(encoded)
	}

	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return newError(ErrCodeRequestFailed, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.creds.SetAuthHeaders(ctx, req.Header); err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return newError(ErrCodeRequestFailed, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "admin api call",
		slog.String("method", method),
		slog.String("url", endpoint),
		slog.Int("status", resp.StatusCode),
	)

	if err := googleapi.CheckResponse(resp); err != nil {
		return newError(ErrCodeAPIResponse, err)
	}

	if out == nil {
		_, err = io.Copy(io.Discard, resp.Body)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newError(ErrCodeDecodeResponse, err)
	}
	return nil
}

func (c *apiClient) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, params, nil, out)
}

func (c *apiClient) post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, nil, body, out)
}
