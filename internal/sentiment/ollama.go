package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/zenith-trading/zenith-bot/pkg/logger"
	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// OllamaScorer scores text through a local Ollama model. Scoring
// failures degrade to a neutral result instead of an error so a
// stalled model never blocks ingestion.
type OllamaScorer struct {
	host   string
	model  string
	client *http.Client
}

// NewOllamaScorer creates a scorer against the given Ollama host.
func NewOllamaScorer(host, model string) *OllamaScorer {
	return &OllamaScorer{
		host:  strings.TrimRight(host, "/"),
		model: model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (o *OllamaScorer) GetName() string {
	return "ollama"
}

type ollamaRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Score asks the model for a sentiment read on the 0-100 scale.
func (o *OllamaScorer) Score(ctx context.Context, title, content string) (models.SentimentResult, error) {
	reqBody := ollamaRequest{
		Model:  o.model,
		Prompt: buildScorePrompt(title, content),
		Stream: false,
		Options: map[string]interface{}{
			"temperature": 0.3,
			"num_predict": 200,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return models.NeutralResult(fmt.Sprintf("error: %v", err)), nil
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.host+"/api/generate", bytes.NewBuffer(jsonData))
	if err != nil {
		return models.NeutralResult(fmt.Sprintf("error: %v", err)), nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		logger.Warn("ollama request failed", zap.Error(err))
		return models.NeutralResult(fmt.Sprintf("error: %v", err)), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Warn("ollama HTTP error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return models.NeutralResult(fmt.Sprintf("error: HTTP %d", resp.StatusCode)), nil
	}

	var parsed ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return models.NeutralResult(fmt.Sprintf("error: %v", err)), nil
	}

	return parseScoreResponse(parsed.Response), nil
}

func buildScorePrompt(title, content string) string {
	fullText := content
	if title != "" {
		fullText = title + "\n\n" + content
	}
	if len(fullText) > 1500 {
		fullText = fullText[:1500]
	}

	return fmt.Sprintf(`You are a cryptocurrency market sentiment analyzer. Analyze the following text and determine if it's Bullish, Bearish, or Neutral for cryptocurrency markets.

Text to analyze:
%s

Provide your analysis in this exact format:
SENTIMENT: [Bullish/Bearish/Neutral]
SCORE: [0-100, where 0=very bearish, 50=neutral, 100=very bullish]
CONFIDENCE: [0.0-1.0]
REASONING: [Brief 1-sentence explanation]

Analysis:`, fullText)
}

// parseScoreResponse extracts the structured fields from the model
// output. Missing or malformed fields fall back to neutral values.
func parseScoreResponse(response string) models.SentimentResult {
	result := models.SentimentResult{
		Label:      models.LabelNeutral,
		Score:      50,
		Confidence: 0.5,
	}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "SENTIMENT:"):
			result.Label = normalizeLabel(strings.TrimSpace(strings.TrimPrefix(line, "SENTIMENT:")))
		case strings.HasPrefix(line, "SCORE:"):
			if score, ok := extractInt(strings.TrimPrefix(line, "SCORE:")); ok {
				result.Score = clampInt(score, 0, 100)
			}
		case strings.HasPrefix(line, "CONFIDENCE:"):
			value := strings.TrimSpace(strings.TrimPrefix(line, "CONFIDENCE:"))
			if conf, err := strconv.ParseFloat(value, 64); err == nil {
				result.Confidence = clampFloat(conf, 0.0, 1.0)
			}
		case strings.HasPrefix(line, "REASONING:"):
			result.Reasoning = strings.TrimSpace(strings.TrimPrefix(line, "REASONING:"))
		}
	}

	return result
}

func normalizeLabel(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "bull"):
		return models.LabelBullish
	case strings.Contains(lower, "bear"):
		return models.LabelBearish
	default:
		return models.LabelNeutral
	}
}

// extractInt keeps only digits so values like "85/100" still parse.
func extractInt(raw string) (int, bool) {
	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	value, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return value, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
