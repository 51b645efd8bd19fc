package bfl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.bfl.ml"

	maxPollAttempts = 60
	pollInterval    = 2 * time.Second
)

// ErrModerated indicates the prompt or the generated result was rejected by
// the provider's content moderation.
var ErrModerated = errors.New("content moderated by image API")

// Client talks to the BFL flux image generation API. Generation is
// asynchronous: a task is submitted, then polled until it is ready.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		APIKey:  apiKey,
		HTTP: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// aspectRatioDimensions maps supported ratios to width/height pairs.
// Both dimensions must be multiples of 32.
var aspectRatioDimensions = map[string][2]int{
	"1:1":  {1024, 1024},
	"16:9": {1408, 800},
	"9:16": {800, 1408},
	"4:5":  {1024, 1280},
	"5:4":  {1280, 1024},
	"3:2":  {1440, 960},
	"2:3":  {960, 1440},
}

// Dimensions returns the pixel size for an aspect ratio, defaulting to 1:1.
func Dimensions(aspectRatio string) (width, height int) {
	if dims, ok := aspectRatioDimensions[aspectRatio]; ok {
		return dims[0], dims[1]
	}
	return 1024, 1024
}

// SupportedRatio reports whether the ratio is one of the fixed set.
func SupportedRatio(aspectRatio string) bool {
	_, ok := aspectRatioDimensions[aspectRatio]
	return ok
}

// --- Request/Response structs (Internal to this package) ---

type generateRequest struct {
	Prompt           string `json:"prompt"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	Steps            int    `json:"steps"`
	PromptUpsampling bool   `json:"prompt_upsampling"`
	Guidance         int    `json:"guidance"`
	SafetyTolerance  int    `json:"safety_tolerance"`
	Interval         int    `json:"interval"`
	OutputFormat     string `json:"output_format"`
}

type generateResponse struct {
	Id string `json:"id"`
}

type resultResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Result *struct {
		Sample string `json:"sample"`
	} `json:"result,omitempty"`
}

// GenerateImage submits a generation task and polls until the result is
// ready, returning the hosted sample URL.
func (c *Client) GenerateImage(ctx context.Context, prompt, aspectRatio string) (string, error) {
	width, height := Dimensions(aspectRatio)

	taskId, err := c.submitTask(ctx, generateRequest{
		Prompt:           prompt,
		Width:            width,
		Height:           height,
		Steps:            40,
		PromptUpsampling: false,
		Guidance:         2,
		SafetyTolerance:  2,
		Interval:         2,
		OutputFormat:     "png",
	})
	if err != nil {
		return "", err
	}

	for attempt := 0; attempt < maxPollAttempts; attempt++ {
		result, err := c.fetchResult(ctx, taskId)
		if err != nil {
			// Transient poll failure, retry on next tick.
			if waitErr := sleepCtx(ctx, pollInterval); waitErr != nil {
				return "", waitErr
			}
			continue
		}

		switch result.Status {
		case "Ready":
			if result.Result == nil || result.Result.Sample == "" {
				return "", fmt.Errorf("bfl task %s ready without sample URL", taskId)
			}
			return result.Result.Sample, nil
		case "Request Moderated", "Content Moderated":
			return "", ErrModerated
		case "Error":
			return "", fmt.Errorf("bfl task %s failed: %s", taskId, result.Error)
		default:
			// "Pending" or unknown status, keep polling.
			if waitErr := sleepCtx(ctx, pollInterval); waitErr != nil {
				return "", waitErr
			}
		}
	}

	return "", fmt.Errorf("timed out waiting for bfl task %s", taskId)
}

func (c *Client) submitTask(ctx context.Context, payload generateRequest) (string, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/v1/flux-dev", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("bfl request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bfl error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var genResp generateResponse
	if err := json.Unmarshal(bodyBytes, &genResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if genResp.Id == "" {
		return "", fmt.Errorf("bfl returned no task id")
	}

	return genResp.Id, nil
}

func (c *Client) fetchResult(ctx context.Context, taskId string) (*resultResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/v1/get_result?id="+taskId, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bfl status request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bfl status error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var result resultResponse
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return nil, fmt.Errorf("unmarshal status response: %w", err)
	}
	return &result, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
