package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcp-lazyload/lazyload/internal/domain/registry"
)

type ControlClient struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

func NewControlClient(baseURL string, timeout time.Duration) *ControlClient {
	return &ControlClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Report mirrors the daemon's activation report; errors arrive as strings.
type Report struct {
	Loaded        []string          `json:"loaded"`
	AlreadyLoaded []string          `json:"already_loaded"`
	Failed        map[string]string `json:"failed,omitempty"`
}

type AnalyzeResult struct {
	Matches []struct {
		Tool    string `json:"tool"`
		Keyword string `json:"keyword"`
	} `json:"matches"`
	ToLoad        []string `json:"to_load"`
	AlreadyLoaded []string `json:"already_loaded"`
	Evicted       []string `json:"evicted,omitempty"`
	Report        *Report  `json:"report,omitempty"`
}

func (c *ControlClient) Analyze(text string, load bool) (*AnalyzeResult, error) {
	body := map[string]interface{}{
		"text": text,
		"load": load,
	}
	var result AnalyzeResult
	err := c.post("/api/analyze", body, &result)
	return &result, err
}

func (c *ControlClient) Activate(tools []string) (*Report, error) {
	body := map[string]interface{}{
		"tools": tools,
	}
	var report Report
	err := c.post("/api/tools/activate", body, &report)
	return &report, err
}

func (c *ControlClient) Preload(profile string) (*Report, error) {
	body := map[string]string{
		"profile": profile,
	}
	var report Report
	err := c.post("/api/profiles/preload", body, &report)
	return &report, err
}

func (c *ControlClient) ListProfiles() (map[string][]string, error) {
	var resp struct {
		Profiles map[string][]string `json:"profiles"`
	}
	err := c.get("/api/profiles", &resp)
	return resp.Profiles, err
}

type LoadedTool struct {
	Name      string    `json:"name"`
	TokenCost int       `json:"token_cost"`
	LoadedAt  time.Time `json:"loaded_at"`
}

type Stats struct {
	LoadedCount     int          `json:"loaded_count"`
	LoadedTokens    int          `json:"loaded_tokens"`
	AvailableCount  int          `json:"available_count"`
	AvailableTokens int          `json:"available_tokens"`
	SavedTokens     int          `json:"saved_tokens"`
	SavedPercent    float64      `json:"saved_percent"`
	Loaded          []LoadedTool `json:"loaded,omitempty"`
}

func (c *ControlClient) GetStats() (*Stats, error) {
	var stats Stats
	err := c.get("/api/stats", &stats)
	return &stats, err
}

func (c *ControlClient) FindTools(query string) ([]registry.ToolDescriptor, error) {
	var resp struct {
		Tools []registry.ToolDescriptor `json:"tools"`
	}
	err := c.get("/api/registry?q="+url.QueryEscape(query), &resp)
	return resp.Tools, err
}

type Status struct {
	Running     bool   `json:"running"`
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	LoadedCount int    `json:"loadedCount"`
	Ports       struct {
		Control int `json:"control"`
	} `json:"ports"`
}

func (c *ControlClient) GetStatus() (*Status, error) {
	var status Status
	err := c.get("/api/status", &status)
	return &status, err
}

func (c *ControlClient) Reset() error {
	return c.post("/api/reset", nil, nil)
}

func (c *ControlClient) get(path string, v interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

func (c *ControlClient) post(path string, body interface{}, v interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusError(resp)
	}

	if v != nil {
		return json.NewDecoder(resp.Body).Decode(v)
	}
	return nil
}

func statusError(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if detail := strings.TrimSpace(string(msg)); detail != "" {
		return fmt.Errorf("unexpected status code: %d (%s)", resp.StatusCode, detail)
	}
	return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}
