package locator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const geminiSystemInstruction = `
You locate official university library web pages.
Given a search query naming an institution, answer with the pages of that institution's library
that list its subscribed bibliographic databases (database navigation, A-Z database list, electronic resources).

Output format:
- Respond with a JSON array only, no markdown, no commentary.
- Each element: {"title": string, "url": string, "snippet": string}
- "url" must be an absolute http or https URL on the institution's own domain.
- Order by confidence, most likely first. Return an empty array when you do not know.
`

// GeminiProvider 는 검색 API 대신 LLM 에게 후보 주소를 묻는다.
// 결과는 검증되지 않은 추정이므로 다른 제공자를 쓸 수 없을 때의 대안이다.
type GeminiProvider struct {
	client    *genai.Client
	modelName string
}

func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: gemini api key is required", ErrNoCredential)
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiProvider{client: client, modelName: modelName}, nil
}

func (p *GeminiProvider) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	prompt := query
	if opts.Country != "" || opts.Language != "" {
		prompt = fmt.Sprintf("%s\n(region: %s, language: %s)", query, opts.Country, opts.Language)
	}

	result, err := p.client.Models.GenerateContent(
		ctx,
		p.modelName,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: geminiSystemInstruction}}},
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("gemini returned no result")
	}

	results, err := parseGeminiResults(result.Text())
	if err != nil {
		return nil, err
	}
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

// parseGeminiResults 는 모델이 코드 펜스로 감싸 응답하는 경우도 허용한다.
func parseGeminiResults(text string) ([]Result, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" {
		return []Result{}, nil
	}

	var raw []Result
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	results := make([]Result, 0, len(raw))
	for _, r := range raw {
		u := strings.TrimSpace(r.URL)
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			continue
		}
		results = append(results, Result{Title: strings.TrimSpace(r.Title), URL: u, Snippet: strings.TrimSpace(r.Snippet)})
	}
	return results, nil
}
