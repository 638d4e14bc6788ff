package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/imgutil"

	"google.golang.org/genai"
)

// toPart は ImagePayload を InlineData の genai.Part に変換します。
// 圧縮が有効な場合は JPEG に変換し、失敗したら元のデータで続行します。
func (s *GeminiStudio) toPart(ctx context.Context, p domain.ImagePayload) (*genai.Part, string, error) {
	data, err := p.Bytes()
	if err != nil {
		return nil, "", err
	}
	mediaType := p.MediaType

	if s.opts.CompressSource {
		if compressed, err := imgutil.CompressToJPEG(data, s.opts.CompressionQuality); err == nil {
			slog.DebugContext(ctx, "送信画像をJPEGに圧縮しました", "before", len(data), "after", len(compressed))
			data = compressed
			mediaType = imgutil.JPEGMediaType
		} else {
			slog.WarnContext(ctx, "画像の圧縮に失敗しました。元のデータで続行します", "error", err)
		}
	}

	return genai.NewPartFromBytes(data, mediaType), mediaType, nil
}

// userContent は画像パーツとテキストパーツをこの順で1つのユーザーコンテンツにまとめます。
func userContent(image *genai.Part, text string) []*genai.Content {
	return []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{image, genai.NewPartFromText(text)}, genai.RoleUser),
	}
}

// parseGeneratedImage は GenerateImages の応答から最初の画像を取り出します。
func parseGeneratedImage(resp *genai.GenerateImagesResponse) ([]byte, string, error) {
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, "", domain.ErrNoImageData
	}
	img := resp.GeneratedImages[0]
	if img == nil {
		return nil, "", domain.ErrNoImageData
	}
	if img.RAIFilteredReason != "" {
		return nil, "", fmt.Errorf("安全フィルターによりブロックされました (%s): %w", img.RAIFilteredReason, domain.ErrNoImageData)
	}
	if img.Image == nil || len(img.Image.ImageBytes) == 0 {
		return nil, "", domain.ErrNoImageData
	}
	return img.Image.ImageBytes, img.Image.MIMEType, nil
}

// parseInlineImage は最初の候補 (Candidate) から InlineData を持つ最初のパーツを探します。
func parseInlineImage(resp *genai.GenerateContentResponse) (*genai.Blob, error) {
	candidate, err := firstCandidate(resp)
	if err != nil {
		return nil, err
	}

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData, nil
			}
		}
	}

	if err := finishReasonError(candidate); err != nil {
		return nil, err
	}
	return nil, domain.ErrNoImageData
}

// parseText は最初の候補の思考以外のテキストパーツを連結します。
func parseText(resp *genai.GenerateContentResponse) (string, error) {
	candidate, err := firstCandidate(resp)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought || part.Text == "" {
				continue
			}
			sb.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text != "" {
		return text, nil
	}
	if err := finishReasonError(candidate); err != nil {
		return "", err
	}
	return "", domain.ErrNoTextData
}

func firstCandidate(resp *genai.GenerateContentResponse) (*genai.Candidate, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, fmt.Errorf("Geminiからの有効な応答がありませんでした")
	}
	// 現在の仕様では、最初の候補のみを利用する。
	return resp.Candidates[0], nil
}

// finishReasonError は安全フィルター等による異常終了をエラーにします。
func finishReasonError(c *genai.Candidate) error {
	switch c.FinishReason {
	case "", genai.FinishReasonUnspecified, genai.FinishReasonStop:
		return nil
	default:
		return fmt.Errorf("生成が異常終了しました (FinishReason: %s)", c.FinishReason)
	}
}
