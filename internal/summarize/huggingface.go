package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// DefaultHFModel is the summarization model used when none is configured.
const DefaultHFModel = "sshleifer/distilbart-cnn-12-6"

// HuggingFace summarizes text through the hosted inference API. Short
// inputs are returned as-is without a network call.
type HuggingFace struct {
	client   *resty.Client
	model    string
	fallback *Truncator
}

// Ensure HuggingFace implements Summarizer
var _ Summarizer = (*HuggingFace)(nil)

type hfRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		MaxLength int  `json:"max_length"`
		MinLength int  `json:"min_length"`
		DoSample  bool `json:"do_sample"`
	} `json:"parameters"`
}

type hfResult struct {
	SummaryText string `json:"summary_text"`
}

// NewHuggingFace creates a summarizer backed by the inference API.
func NewHuggingFace(apiToken, model string, maxChars int) *HuggingFace {
	if model == "" {
		model = DefaultHFModel
	}
	return &HuggingFace{
		client: resty.New().
			SetTimeout(30 * time.Second).
			SetBaseURL("https://api-inference.huggingface.co").
			SetAuthToken(apiToken),
		model:    model,
		fallback: NewTruncator(maxChars),
	}
}

// Summarize asks the model for a short summary. Texts under 40 words are
// already short enough and are returned unchanged. Any API failure is an
// error; the caller decides whether to degrade to truncation.
func (h *HuggingFace) Summarize(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", nil
	}
	if len(strings.Fields(text)) < 40 {
		return strings.TrimSpace(text), nil
	}

	req := hfRequest{Inputs: text}
	req.Parameters.MaxLength = 130
	req.Parameters.MinLength = 30

	var results []hfResult
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&results).
		Post("/models/" + h.model)
	if err != nil {
		return "", fmt.Errorf("summarization request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("summarization API returned status %d", resp.StatusCode())
	}
	if len(results) == 0 || results[0].SummaryText == "" {
		return "", fmt.Errorf("summarization API returned no summary")
	}

	return strings.TrimSpace(results[0].SummaryText), nil
}

// SummarizeOrTruncate resolves the degraded path in one place: model
// summary when available, deterministic truncation otherwise.
func (h *HuggingFace) SummarizeOrTruncate(ctx context.Context, text string) (summary string, degraded bool) {
	summary, err := h.Summarize(ctx, text)
	if err != nil {
		logrus.Warnf("Summarizer degraded to truncation: %v", err)
		return h.fallback.Truncate(text), true
	}
	return summary, false
}
