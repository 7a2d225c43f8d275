package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"maumchat/pkg/config"
)

// FallbackMessage is returned for every failed generation attempt.
// Callers never see an error from GenerateAdvice.
const FallbackMessage = "죄송해요, 지금은 상담 답변을 드리기 어려워요. 잠시 후에 다시 한번 이야기해 주시겠어요?"

// counselorInstruction is the fixed persona sent as the system instruction:
// an empathetic, non-judgmental AI counselor answering in warm Korean with
// one or two concrete suggestions, formatted as markdown.
const counselorInstruction = "당신은 따뜻하고 공감 능력이 뛰어난 AI 심리 상담사입니다. " +
	"사용자의 고민을 판단하거나 평가하지 말고 있는 그대로 받아들여 주세요. " +
	"먼저 사용자의 감정에 충분히 공감한 뒤, 실천할 수 있는 구체적인 제안을 1~2가지 제시해 주세요. " +
	"따뜻하고 부드러운 말투를 사용하고, 마크다운 형식으로 읽기 쉽게 답변해 주세요. " +
	"필요할 때는 자신이 AI 상담사이며 전문적인 치료를 대신할 수 없다는 점을 자연스럽게 안내해 주세요."

const defaultBaseURL = "https://generativelanguage.googleapis.com"

var ErrAdviceDisabled = errors.New("gemini is disabled via config")

// AdviceService generates counseling replies through the Gemini
// generateContent API. One request per call, no retry; any failure is
// converted into FallbackMessage.
type AdviceService struct {
	apiKey  string
	model   string
	enabled bool
	baseURL string
	client  *http.Client
}

func NewAdviceService() *AdviceService {
	return &AdviceService{
		apiKey:  config.GeminiAPIKey,
		model:   config.GeminiModel,
		enabled: config.IsGeminiEnabled,
		baseURL: defaultBaseURL,
		client:  http.DefaultClient,
	}
}

// GenerateAdvice returns the model's reply for the given worry, or
// FallbackMessage when anything goes wrong. It never returns an error.
func (s *AdviceService) GenerateAdvice(ctx context.Context, worry string) string {
	text, err := s.callGenerateContent(ctx, worry)
	if err != nil {
		log.Printf("[advice] generation failed: %v", err)
		return FallbackMessage
	}
	if strings.TrimSpace(text) == "" {
		log.Printf("[advice] empty model response")
		return FallbackMessage
	}
	return strings.TrimSpace(text)
}

func (s *AdviceService) callGenerateContent(ctx context.Context, worry string) (string, error) {
	if !s.enabled {
		return "", ErrAdviceDisabled
	}
	if strings.TrimSpace(s.apiKey) == "" {
		return "", fmt.Errorf("GEMINI_API_KEY is not set")
	}

	reqBody := map[string]any{
		"systemInstruction": map[string]any{
			"parts": []any{map[string]any{"text": counselorInstruction}},
		},
		"contents": []any{
			map[string]any{
				"role":  "user",
				"parts": []any{map[string]any{"text": worry}},
			},
		},
		"generationConfig": map[string]any{
			"temperature":     0.7,
			"maxOutputTokens": 1024,
			"topK":            40,
			"topP":            0.9,
		},
	}
	bodyBytes, _ := json.Marshal(reqBody)

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	log.Printf("[advice] using model %s", s.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read error: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBytes)))
	}

	var parsed map[string]any
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("decode error: %w", err)
	}
	if cands, ok := parsed["candidates"].([]any); ok && len(cands) > 0 {
		if first, ok := cands[0].(map[string]any); ok {
			if content, ok := first["content"].(map[string]any); ok {
				if parts, ok := content["parts"].([]any); ok {
					for _, p := range parts {
						if pm, ok := p.(map[string]any); ok {
							if txt, ok := pm["text"].(string); ok && strings.TrimSpace(txt) != "" {
								return txt, nil
							}
						}
					}
				}
			}
		}
	}
	return "", fmt.Errorf("no text candidate in response")
}
