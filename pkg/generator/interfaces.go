package generator

import (
	"context"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"

	"google.golang.org/genai"
)

// ModelClient はリモートのモデルサービスへの最小限の窓口です。
// *genai.Models がこのインターフェースを満たします。
type ModelClient interface {
	// GenerateImages は Imagen 系モデルでテキストから画像を生成します。
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
	// GenerateContent はマルチモーダル入力を Gemini 系モデルに送ります。
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// PartsClient はパーツ列を送って応答を受け取るクライアントです。
// go-gemini-client の gemini.GenerativeModel もこのメソッドを持ちます。
type PartsClient interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

// ImageStudio はワークフロー層が利用する統合窓口です。
// テストではこれをモックに差し替えます。
type ImageStudio interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (domain.ImagePayload, error)
	Edit(ctx context.Context, req domain.EditRequest) (domain.ImagePayload, error)
	Analyze(ctx context.Context, req domain.AnalysisRequest) (string, error)
}
