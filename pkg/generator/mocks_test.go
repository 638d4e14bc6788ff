package generator

import (
	"context"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

type generateImagesCall struct {
	model  string
	prompt string
	config *genai.GenerateImagesConfig
}

type generateContentCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

// mockAIClient は ModelClient のテスト用モックです。
type mockAIClient struct {
	generateImagesFunc  func(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
	generateContentFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

	imagesCalls  []generateImagesCall
	contentCalls []generateContentCall
}

func (m *mockAIClient) GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	m.imagesCalls = append(m.imagesCalls, generateImagesCall{model: model, prompt: prompt, config: config})
	if m.generateImagesFunc != nil {
		return m.generateImagesFunc(ctx, model, prompt, config)
	}
	return nil, nil
}

func (m *mockAIClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.contentCalls = append(m.contentCalls, generateContentCall{model: model, contents: contents, config: config})
	if m.generateContentFunc != nil {
		return m.generateContentFunc(ctx, model, contents, config)
	}
	return nil, nil
}

type partsCall struct {
	model string
	parts []*genai.Part
}

// mockPartsClient は PartsClient のテスト用モックです。
type mockPartsClient struct {
	generateWithPartsFunc func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)

	calls []partsCall
}

func (m *mockPartsClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.calls = append(m.calls, partsCall{model: model, parts: parts})
	if m.generateWithPartsFunc != nil {
		return m.generateWithPartsFunc(ctx, model, parts, opts)
	}
	return nil, nil
}

// --- Response builders ---

func imagesResponse(data []byte, mimeType string) *genai.GenerateImagesResponse {
	return &genai.GenerateImagesResponse{
		GeneratedImages: []*genai.GeneratedImage{
			{Image: &genai.Image{ImageBytes: data, MIMEType: mimeType}},
		},
	}
}

func contentResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: parts}},
		},
	}
}
