package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/oba-crm/backend/internal/models"
)

// HTTPAnalyzer calls a remote analysis service speaking the same wire
// contract as the rule-based classifier. Used when AI_URL is configured.
type HTTPAnalyzer struct {
	BaseURL string
	Client  *http.Client
}

type analyzeRequest struct {
	Message string `json:"message"`
}

type analyzeResponse struct {
	Sentiment        models.Sentiment  `json:"sentiment"`
	Confidence       float64           `json:"confidence"`
	Category         models.Category   `json:"category"`
	Priority         models.Priority   `json:"priority"`
	Keywords         []string          `json:"keywords"`
	Department       models.Department `json:"department"`
	SendToCallCenter bool              `json:"sendToCallCenter"`
	SuggestedAction  string            `json:"suggestedAction"`
}

func (h HTTPAnalyzer) AnalyzeMessage(ctx context.Context, text string) (models.AIAnalysis, int64, error) {
	if h.Client == nil {
		h.Client = &http.Client{Timeout: 15 * time.Second}
	}

	b, _ := json.Marshal(analyzeRequest{Message: text})
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+"/analyze", bytes.NewBuffer(b))
	if err != nil {
		return models.AIAnalysis{}, 0, err
	}

	req.Header.Set("Content-Type", "application/json")
	resp, err := h.Client.Do(req)
	if err != nil {
		return models.AIAnalysis{}, time.Since(start).Milliseconds(), err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.AIAnalysis{}, time.Since(start).Milliseconds(), errors.New("ai service error")
	}

	var r analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return models.AIAnalysis{}, time.Since(start).Milliseconds(), err
	}

	analysis := models.AIAnalysis{
		Sentiment:        r.Sentiment,
		Confidence:       r.Confidence,
		Category:         r.Category,
		Priority:         r.Priority,
		Keywords:         r.Keywords,
		Department:       r.Department,
		SendToCallCenter: r.SendToCallCenter,
		SuggestedAction:  r.SuggestedAction,
	}
	return analysis, time.Since(start).Milliseconds(), nil
}
