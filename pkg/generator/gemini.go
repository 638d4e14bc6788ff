package generator

import (
	"context"
	"log/slog"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"

	"google.golang.org/genai"
)

// Generate はプロンプトと縦横比から PNG 画像を1枚生成します。
func (s *GeminiStudio) Generate(ctx context.Context, req domain.GenerationRequest) (domain.ImagePayload, error) {
	if err := req.Validate(); err != nil {
		return domain.ImagePayload{}, err
	}

	slog.InfoContext(ctx, "画像生成をリクエストします",
		"model", s.opts.GenerationModel, "aspect_ratio", req.AspectRatio, "prompt", truncate(req.Prompt, 50))

	resp, err := s.aiClient.GenerateImages(ctx, s.opts.GenerationModel, req.Prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: generatedMediaType,
		AspectRatio:    string(req.AspectRatio),
	})
	if err != nil {
		return domain.ImagePayload{}, &domain.CallError{Op: domain.OpGenerate, Err: err}
	}

	data, mediaType, err := parseGeneratedImage(resp)
	if err != nil {
		return domain.ImagePayload{}, &domain.CallError{Op: domain.OpGenerate, Err: err}
	}
	if mediaType == "" {
		mediaType = generatedMediaType
	}

	slog.InfoContext(ctx, "画像生成が完了しました", "bytes", len(data), "mime_type", mediaType)
	return domain.NewImagePayload(data, mediaType), nil
}

// Edit は元画像と編集指示を送り、応答内の最初の画像を返します。
func (s *GeminiStudio) Edit(ctx context.Context, req domain.EditRequest) (domain.ImagePayload, error) {
	if err := req.Validate(); err != nil {
		return domain.ImagePayload{}, err
	}

	imgPart, sourceType, err := s.toPart(ctx, req.Image)
	if err != nil {
		return domain.ImagePayload{}, &domain.CallError{Op: domain.OpEdit, Err: err}
	}

	slog.InfoContext(ctx, "画像編集をリクエストします",
		"model", s.opts.EditModel, "source_type", sourceType, "instruction", truncate(req.Instruction, 50))

	parts := []*genai.Part{imgPart, genai.NewPartFromText(req.Instruction)}
	resp, err := s.editClient.GenerateWithParts(ctx, s.opts.EditModel, parts, gemini.GenerateOptions{})
	if err != nil {
		return domain.ImagePayload{}, &domain.CallError{Op: domain.OpEdit, Err: err}
	}
	if resp == nil {
		return domain.ImagePayload{}, &domain.CallError{Op: domain.OpEdit, Err: domain.ErrNoImageData}
	}

	blob, err := parseInlineImage(resp.RawResponse)
	if err != nil {
		return domain.ImagePayload{}, &domain.CallError{Op: domain.OpEdit, Err: err}
	}

	mediaType := blob.MIMEType
	if mediaType == "" {
		mediaType = sourceType
	}
	return domain.NewImagePayload(blob.Data, mediaType), nil
}

// Analyze は画像についての質問に答えます。
// DepthDeep の場合は上位モデルと思考予算を指定します。入力と出力の形はどちらも同じです。
func (s *GeminiStudio) Analyze(ctx context.Context, req domain.AnalysisRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	imgPart, _, err := s.toPart(ctx, req.Image)
	if err != nil {
		return "", &domain.CallError{Op: domain.OpAnalyze, Err: err}
	}

	model := s.opts.AnalysisModel
	var config *genai.GenerateContentConfig
	if req.Depth == domain.DepthDeep {
		model = s.opts.DeepAnalysisModel
		config = &genai.GenerateContentConfig{
			ThinkingConfig: &genai.ThinkingConfig{
				ThinkingBudget: genai.Ptr(s.opts.ThinkingBudget),
			},
		}
	}

	slog.InfoContext(ctx, "画像解析をリクエストします", "model", model, "depth", req.Depth.String())

	resp, err := s.aiClient.GenerateContent(ctx, model, userContent(imgPart, req.EffectiveQuestion()), config)
	if err != nil {
		return "", &domain.CallError{Op: domain.OpAnalyze, Err: err}
	}

	text, err := parseText(resp)
	if err != nil {
		return "", &domain.CallError{Op: domain.OpAnalyze, Err: err}
	}
	return text, nil
}
