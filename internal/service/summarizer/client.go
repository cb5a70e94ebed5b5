// Package summarizer is the HTTP client for the external natural-language
// summary service. The orchestrator treats it as a soft dependency: absence
// and failure are equivalent.
package summarizer

import (
	"context"
	"fmt"
	"time"

	"MarketScan/internal/domain/models"
	domrepo "MarketScan/internal/domain/repository"
	xhttp "MarketScan/pkg/http"
)

type Client struct {
	baseURL string
	apiKey  string
	client  *xhttp.Client
}

// New builds the summarizer client. A nil client or empty baseURL yields an
// unavailable summarizer rather than an error.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (c *Client) IsAvailable() bool {
	return c != nil && c.baseURL != ""
}

func (c *Client) postJSON(ctx context.Context, path string, payload, dest interface{}) error {
	if !c.IsAvailable() {
		return fmt.Errorf("summarizer not configured")
	}
	headers := map[string]string{"Content-Type": "application/json"}
	if c.apiKey != "" {
		headers["Authorization"] = "Bearer " + c.apiKey
	}
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     c.baseURL + path,
		Headers: headers,
		Body:    payload,
	}, dest)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	return nil
}

type quickTakeReq struct {
	Sentiment   string   `json:"sentiment"`
	IndexMoves  []string `json:"index_moves"`
	TopGainers  []string `json:"top_gainers"`
	TopLosers   []string `json:"top_losers"`
	MacroHeads  []string `json:"macro_headlines"`
	HotSectors  []string `json:"hot_sectors"`
	ColdSectors []string `json:"cold_sectors"`
}

type quickTakeResp struct {
	Text string `json:"text"`
}

func (c *Client) GenerateQuickTake(ctx context.Context, scan models.MarketScan) (models.QuickTake, error) {
	req := quickTakeReq{Sentiment: string(scan.Sentiment)}
	for _, ix := range scan.Indexes {
		req.IndexMoves = append(req.IndexMoves, fmt.Sprintf("%s %+.2f%%", ix.Symbol, ix.ChangePct))
	}
	for _, m := range scan.Gainers {
		req.TopGainers = append(req.TopGainers, m.Ticker)
	}
	for _, m := range scan.Losers {
		req.TopLosers = append(req.TopLosers, m.Ticker)
	}
	for _, n := range scan.MacroNews {
		req.MacroHeads = append(req.MacroHeads, n.Headline)
	}
	for _, s := range scan.HotSectors {
		req.HotSectors = append(req.HotSectors, s.Name)
	}
	for _, s := range scan.ColdSectors {
		req.ColdSectors = append(req.ColdSectors, s.Name)
	}

	var resp quickTakeResp
	if err := c.postJSON(ctx, "/v1/quicktake", req, &resp); err != nil {
		return models.QuickTake{}, err
	}
	if resp.Text == "" {
		return models.QuickTake{}, fmt.Errorf("summarizer returned empty quick take")
	}
	return models.QuickTake{Text: resp.Text, GeneratedAt: time.Now().UTC()}, nil
}

type rotationReq struct {
	Hot  []rotationSector `json:"hot"`
	Cold []rotationSector `json:"cold"`
}

type rotationSector struct {
	Name      string  `json:"name"`
	ChangePct float64 `json:"change_pct"`
}

type rotationResp struct {
	Text string `json:"text"`
}

func (c *Client) GenerateRotationNote(ctx context.Context, hot, cold []models.SectorRotation) (string, error) {
	req := rotationReq{}
	for _, s := range hot {
		req.Hot = append(req.Hot, rotationSector{Name: s.Name, ChangePct: s.ChangePct})
	}
	for _, s := range cold {
		req.Cold = append(req.Cold, rotationSector{Name: s.Name, ChangePct: s.ChangePct})
	}

	var resp rotationResp
	if err := c.postJSON(ctx, "/v1/rotation", req, &resp); err != nil {
		return "", err
	}
	if resp.Text == "" {
		return "", fmt.Errorf("summarizer returned empty rotation note")
	}
	return resp.Text, nil
}

var _ domrepo.Summarizer = (*Client)(nil)
