package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
	apperrors "github.com/mehrnazbaharan/diabetes-companion/internal/errors"
	"github.com/mehrnazbaharan/diabetes-companion/internal/logger"
)

const geminiModel = "gemini-1.5-flash"

// AIService talks to the remote language models. Gemini is the primary
// backend; OpenAI is used as a fallback when a Gemini call fails and an
// OpenAI key was configured. All numeric context is computed locally and
// embedded into the prompt; model output is never trusted as a dosing value.
type AIService struct {
	geminiClient *genai.Client
	openaiClient *openai.Client
}

func NewAIService(ctx context.Context, geminiAPIKey, openaiAPIKey string) (*AIService, error) {
	geminiClient, err := genai.NewClient(ctx, option.WithAPIKey(geminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	s := &AIService{geminiClient: geminiClient}
	if openaiAPIKey != "" {
		s.openaiClient = openai.NewClient(openaiAPIKey)
	}
	return s, nil
}

const analysisPrompt = `You are a diabetes management assistant reviewing a patient summary.

The summary below contains values already computed from the patient's logs.
Do NOT recalculate them and do NOT suggest specific insulin doses.

TASK:
1. Comment on the time-in-range distribution and any visible patterns
2. Suggest lifestyle and logging habits that could improve control
3. Flag anything the patient should discuss with their doctor

REQUIREMENTS:
- Be concise: at most five short paragraphs
- Plain language, no medical jargon without explanation
- Never present yourself as a replacement for medical advice

PATIENT SUMMARY:
%s`

// AnalyzeLogs asks the model for a free-text review of the derived-metrics
// summary.
func (s *AIService) AnalyzeLogs(ctx context.Context, contextSummary string) (string, error) {
	prompt := fmt.Sprintf(analysisPrompt, contextSummary)

	text, err := s.generateText(ctx, prompt)
	if err == nil {
		return text, nil
	}
	if s.openaiClient == nil {
		return "", apperrors.NewExternalAPIError(err, "Gemini")
	}

	logger.Warnf("Gemini analysis failed, falling back to OpenAI: %v", err)
	text, err = s.completeText(ctx, prompt)
	if err != nil {
		return "", apperrors.NewExternalAPIError(err, "OpenAI")
	}
	return text, nil
}

const carbPrompt = `You are a certified diabetes educator specializing in nutrition analysis.
Analyze the food in the image and estimate its carbohydrate content.

TASK:
1. Identify the food items in the image
2. Estimate total carbohydrates in grams from standard nutritional databases
3. Assess your confidence in this estimation (low, medium, high)

REQUIREMENTS:
- Include likely hidden ingredients that contain carbs
- If the image shows nutritional information or packaging, prioritize that data
- Keep the analysis text short and focused on how the estimate was made

IMPORTANT WEIGHT INFORMATION:
- The food weighs %.1f grams
- Base your carbohydrate calculation on this exact weight

CRITICAL JSON FORMAT REQUIREMENTS:
- Your response MUST be a valid JSON object with no surrounding text
- The JSON must have these exact fields:
  {
    "food_items": ["item1", "item2"],
    "carbs": 123.45,
    "confidence": "low|medium|high",
    "analysis_text": "How the estimate was made"
  }`

const weightPrompt = `Estimate the weight of the food in the image in grams.
Consider standard portion sizes and the plate or bowl size if visible.
Return ONLY a number, no text or units. Round to the nearest gram.`

// EstimateCarbs analyzes a food photo. When the caller passes a non-positive
// weight the model is first asked to estimate the portion weight.
func (s *AIService) EstimateCarbs(ctx context.Context, imageURL string, weight float64) (*domain.CarbEstimate, error) {
	imageData, err := downloadImage(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	if weight <= 0 {
		weight, err = s.estimateWeight(ctx, imageURL, imageData)
		if err != nil {
			return nil, fmt.Errorf("failed to estimate portion weight: %w", err)
		}
	}

	prompt := fmt.Sprintf(carbPrompt, weight)
	raw, err := s.generateVision(ctx, prompt, imageData)
	if err != nil {
		if s.openaiClient == nil {
			return nil, apperrors.NewExternalAPIError(err, "Gemini")
		}
		logger.Warnf("Gemini food analysis failed, falling back to OpenAI: %v", err)
		raw, err = s.completeVision(ctx, prompt, imageURL)
		if err != nil {
			return nil, apperrors.NewExternalAPIError(err, "OpenAI")
		}
	}

	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return nil, fmt.Errorf("no valid JSON found in model response")
	}
	var result domain.CarbEstimate
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}
	if result.Carbs < 0 {
		return nil, fmt.Errorf("model returned negative carb estimate")
	}
	return &result, nil
}

func (s *AIService) estimateWeight(ctx context.Context, imageURL string, imageData []byte) (float64, error) {
	raw, err := s.generateVision(ctx, weightPrompt, imageData)
	if err != nil {
		if s.openaiClient == nil {
			return 0, err
		}
		raw, err = s.completeVision(ctx, weightPrompt, imageURL)
		if err != nil {
			return 0, err
		}
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse weight: %w", err)
	}
	return weight, nil
}

func (s *AIService) generateText(ctx context.Context, prompt string) (string, error) {
	model := s.geminiClient.GenerativeModel(geminiModel)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return geminiText(resp)
}

func (s *AIService) generateVision(ctx context.Context, prompt string, imageData []byte) (string, error) {
	model := s.geminiClient.GenerativeModel(geminiModel)
	img := genai.ImageData("image/jpeg", imageData)
	resp, err := model.GenerateContent(ctx, img, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return geminiText(resp)
}

func (s *AIService) completeText(ctx context.Context, prompt string) (string, error) {
	resp, err := s.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *AIService) completeVision(ctx context.Context, prompt, imageURL string) (string, error) {
	resp, err := s.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty model response")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part type")
	}
	return string(text), nil
}

func downloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

// extractJSON pulls the first JSON object out of a response that may wrap it
// in code fences or explanatory text.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}
