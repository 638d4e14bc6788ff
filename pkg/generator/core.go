package generator

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiStudio は生成・編集・解析の各クライアントを束ねる基盤クラスです。
type GeminiStudio struct {
	aiClient   ModelClient
	editClient PartsClient
	opts       Options
}

var _ ImageStudio = (*GeminiStudio)(nil)

// NewGeminiStudio は依存関係を注入して GeminiStudio を初期化します。
func NewGeminiStudio(aiClient ModelClient, opts Options) (*GeminiStudio, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	opts = opts.withDefaults()
	editClient := opts.EditClient
	if editClient == nil {
		editClient = &modelPartsClient{models: aiClient, modalities: []string{responseModalityImage}}
	}
	return &GeminiStudio{
		aiClient:   aiClient,
		editClient: editClient,
		opts:       opts,
	}, nil
}

// Options は適用済みの設定を返します。
func (s *GeminiStudio) Options() Options {
	return s.opts
}

// NewClient は API キーで Gemini API バックエンドの genai クライアントを作成します。
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genaiクライアントの作成に失敗しました: %w", err)
	}
	return client, nil
}
