// Package services - services/gemini_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-bet-tips/logger"
	"go-bet-tips/models"
)

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

const generationPrompt = "Generate 20 realistic soccer betting predictions for upcoming matches " +
	"across various popular leagues. Include a mix of FREE and VIP tips. Ensure the data is in " +
	"JSON format according to the provided schema. The kickoff times should be realistic for " +
	"the near future."

// GeminiGenerator asks the Gemini API for an initial prediction batch.
// It is the production implementation of PredictionGenerator.
type GeminiGenerator struct {
	APIKey string
	Model  string
	Client *http.Client
}

// NewGeminiGenerator builds a generator for the given model, defaulting the
// HTTP client timeout so a stalled call cannot hang the bootstrap forever.
func NewGeminiGenerator(apiKey, model string) *GeminiGenerator {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiGenerator{
		APIKey: apiKey,
		Model:  model,
		Client: &http.Client{Timeout: 60 * time.Second},
	}
}

// responseSchema constrains the model output to exactly the seed shape.
func responseSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "ARRAY",
		"description": "A list of soccer betting predictions.",
		"items": map[string]interface{}{
			"type": "OBJECT",
			"properties": map[string]interface{}{
				"match_name": map[string]interface{}{"type": "STRING"},
				"league":     map[string]interface{}{"type": "STRING"},
				"tip":        map[string]interface{}{"type": "STRING"},
				"odds":       map[string]interface{}{"type": "STRING"},
				"kickoff":    map[string]interface{}{"type": "STRING"},
				"type":       map[string]interface{}{"type": "STRING", "enum": []string{"FREE", "VIP"}},
			},
			"required": []string{"match_name", "league", "tip", "odds", "kickoff", "type"},
		},
	}
}

// Generate calls the generateContent endpoint and decodes the JSON batch.
func (g *GeminiGenerator) Generate(ctx context.Context) ([]models.PredictionSeed, error) {
	if g.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": generationPrompt}}},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"responseSchema":   responseSchema(),
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf(geminiEndpoint, g.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.APIKey)

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		logger.Error.Printf("GeminiGenerator: generateContent returned %d: %s", resp.StatusCode, raw)
		return nil, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	// the generated JSON array arrives as the text of the first candidate part
	var envelope struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("unparsable gemini response: %w", err)
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("gemini response contained no candidates")
	}

	text := strings.TrimSpace(envelope.Candidates[0].Content.Parts[0].Text)
	var seeds []models.PredictionSeed
	if err := json.Unmarshal([]byte(text), &seeds); err != nil {
		return nil, fmt.Errorf("unparsable prediction batch: %w", err)
	}
	return seeds, nil
}
