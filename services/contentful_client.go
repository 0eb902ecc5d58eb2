package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"catalog-service/models"

	"go.uber.org/zap"
)

// ContentfulConfig holds the external content source connection values.
type ContentfulConfig struct {
	BaseURL     string
	SpaceID     string
	Environment string
	ContentType string
	AccessToken string
}

// ContentfulClient fetches product entries from the external content source.
type ContentfulClient interface {
	FetchEntries(ctx context.Context) (*models.ContentfulListResponse, error)
}

type httpContentfulClient struct {
	cfg        ContentfulConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewContentfulClient creates an HTTP-backed ContentfulClient.
func NewContentfulClient(cfg ContentfulConfig, logger *zap.Logger) ContentfulClient {
	return &httpContentfulClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// FetchEntries retrieves a single page of entries for the configured
// space, environment and content type.
func (c *httpContentfulClient) FetchEntries(ctx context.Context) (*models.ContentfulListResponse, error) {
	params := url.Values{}
	params.Set("access_token", c.cfg.AccessToken)
	params.Set("content_type", c.cfg.ContentType)
	reqURL := fmt.Sprintf("%s/spaces/%s/environments/%s/entries?%s",
		c.cfg.BaseURL, c.cfg.SpaceID, c.cfg.Environment, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create contentful request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call contentful: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("contentful returned status %d", resp.StatusCode)
	}

	var list models.ContentfulListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode contentful response: %w", err)
	}

	c.logger.Info("Fetched entries from Contentful", zap.Int("count", len(list.Items)))
	return &list, nil
}
