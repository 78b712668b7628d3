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

	"github.com/apex/log"

	"civicconnect-be/apperrors"
	"civicconnect-be/models"
)

const (
	geminiEndpoint  = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	analysisTimeout = 15 * time.Second
)

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Gemini is a client for the generative-model API used to categorize issue
// photos and summarize descriptions. Every failure here is non-fatal to issue
// submission: callers degrade to manual entry instead of blocking.
type Gemini struct {
	apiKey string
	model  string
	client *http.Client
}

func NewGemini(apiKey, model string) *Gemini {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Gemini{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{},
	}
}

func (g *Gemini) generate(ctx context.Context, parts []geminiPart) (string, error) {
	reqBody, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(geminiEndpoint, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", apperrors.ErrAnalysisTimeout
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrAnalysisUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrAnalysisUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", apperrors.ErrAnalysisUnavailable, resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrAnalysisUnavailable, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", apperrors.ErrAnalysisUnavailable)
	}
	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}

// CategorizeImage asks the model which issue category a photo shows.
// UNRECOGNIZED answers map to ErrUnrecognizedImage; an answer outside the
// category list falls back to Other.
func (g *Gemini) CategorizeImage(ctx context.Context, base64ImageData, mimeType string) (models.IssueCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()

	names := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		names[i] = string(c)
	}
	prompt := fmt.Sprintf(
		`Analyze the image. First, determine if it shows a real-world civic issue like a pothole, broken streetlight, graffiti, etc. If it does not, respond with only the word "UNRECOGNIZED". If it does show a civic issue, categorize it into one of the following exact categories: %s. Respond with only the category name, nothing else. For example: Pothole`,
		strings.Join(names, ", "))

	answer, err := g.generate(ctx, []geminiPart{
		{InlineData: &geminiInlineData{MimeType: mimeType, Data: base64ImageData}},
		{Text: prompt},
	})
	if err != nil {
		return "", err
	}

	if answer == "UNRECOGNIZED" {
		return "", apperrors.ErrUnrecognizedImage
	}
	if models.ValidCategory(answer) {
		return models.IssueCategory(answer), nil
	}
	log.WithField("answer", answer).Warn("model returned an invalid category, defaulting to Other")
	return models.Other, nil
}

// GenerateSummary produces a one-sentence title from a description. Errors
// leave the title for manual entry; they never block submission.
func (g *Gemini) GenerateSummary(ctx context.Context, description string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Summarize the following issue description in one short sentence for a city official. Be concise and focus on the core problem.\n\nDescription: %q\n\nSummary:",
		description)
	return g.generate(ctx, []geminiPart{{Text: prompt}})
}

// AssignDepartment asks the model for a routing target, falling back to the
// fixed category map on any error or unknown answer.
func (g *Gemini) AssignDepartment(ctx context.Context, title, description string, category models.IssueCategory) string {
	ctx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Based on the issue title, description, and category, assign the most appropriate department from the following list: %s. Respond with only the department name, nothing else.\n\nTitle: %q\nDescription: %q\nCategory: %q\n\nAssigned Department:",
		strings.Join(models.Departments, ", "), title, description, string(category))

	answer, err := g.generate(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		log.WithError(err).Warn("department assignment failed, falling back to category map")
		return models.CategoryDepartment[category]
	}
	for _, d := range models.Departments {
		if d == answer {
			return d
		}
	}
	log.WithField("answer", answer).Warn("model returned an invalid department, falling back to category map")
	return models.CategoryDepartment[category]
}
