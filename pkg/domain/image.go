package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DefaultAnalysisQuestion は質問が空のときに使う汎用プロンプトです。
const DefaultAnalysisQuestion = "Describe this image in detail."

// AspectRatio は画像生成で指定できる縦横比です。
type AspectRatio string

const (
	AspectSquare        AspectRatio = "1:1"
	AspectPortrait      AspectRatio = "3:4"
	AspectLandscape     AspectRatio = "4:3"
	AspectTallPortrait  AspectRatio = "9:16"
	AspectWideLandscape AspectRatio = "16:9"
)

// SupportedAspectRatios はリモートサービスが受け付ける縦横比の一覧です。
var SupportedAspectRatios = []AspectRatio{
	AspectSquare,
	AspectPortrait,
	AspectLandscape,
	AspectTallPortrait,
	AspectWideLandscape,
}

// ParseAspectRatio は文字列を AspectRatio に変換します。
// サポート外の値は ValidationError になります。
func ParseAspectRatio(s string) (AspectRatio, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return AspectSquare, nil
	}
	for _, r := range SupportedAspectRatios {
		if string(r) == s {
			return r, nil
		}
	}
	return "", &ValidationError{Field: "aspect_ratio", Message: fmt.Sprintf("unsupported aspect ratio %q", s)}
}

// Valid は r が SupportedAspectRatios のいずれかであれば true を返します。
func (r AspectRatio) Valid() bool {
	for _, s := range SupportedAspectRatios {
		if r == s {
			return true
		}
	}
	return false
}

// AnalysisDepth は画像解析の深さです。
type AnalysisDepth int

const (
	DepthSimple AnalysisDepth = iota
	// DepthDeep は上位モデルと思考予算を使う解析です。
	DepthDeep
)

func (d AnalysisDepth) String() string {
	if d == DepthDeep {
		return "deep"
	}
	return "simple"
}

// ImagePayload は1枚の画像を表す base64 データとメディアタイプの組です。
type ImagePayload struct {
	Data      string // base64 (StdEncoding)
	MediaType string
}

// NewImagePayload は生のバイト列から ImagePayload を作ります。
func NewImagePayload(raw []byte, mediaType string) ImagePayload {
	return ImagePayload{
		Data:      base64.StdEncoding.EncodeToString(raw),
		MediaType: mediaType,
	}
}

// Bytes は base64 をデコードして元のバイト列を返します。
func (p ImagePayload) Bytes() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(p.Data)
	if err != nil {
		return nil, fmt.Errorf("base64デコードに失敗しました: %w", err)
	}
	return b, nil
}

// DataURL はプレビューやダウンロードリンク用の data URL を返します。
func (p ImagePayload) DataURL() string {
	return "data:" + p.MediaType + ";base64," + p.Data
}

// IsZero はデータを持たない場合に true を返します。
func (p ImagePayload) IsZero() bool {
	return p.Data == ""
}

// Validate は空データ、base64 として読めないデータ、画像以外のメディアタイプを拒否します。
func (p ImagePayload) Validate() error {
	if p.Data == "" {
		return &ValidationError{Field: "image", Message: "no image selected"}
	}
	if !strings.HasPrefix(p.MediaType, "image/") {
		return &ValidationError{Field: "image", Message: fmt.Sprintf("unsupported media type %q", p.MediaType)}
	}
	raw, err := base64.StdEncoding.DecodeString(p.Data)
	if err != nil {
		return &ValidationError{Field: "image", Message: "image data is not valid base64"}
	}
	if len(raw) == 0 {
		return &ValidationError{Field: "image", Message: "no image selected"}
	}
	return nil
}

// GenerationRequest はテキストから画像を生成する要求です。
type GenerationRequest struct {
	Prompt      string
	AspectRatio AspectRatio
}

// Validate はプロンプトと縦横比を確認します。
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return &ValidationError{Field: "prompt", Message: "please enter a prompt to generate an image"}
	}
	if !r.AspectRatio.Valid() {
		return &ValidationError{Field: "aspect_ratio", Message: fmt.Sprintf("unsupported aspect ratio %q", r.AspectRatio)}
	}
	return nil
}

// EditRequest は既存画像に編集指示を適用する要求です。
type EditRequest struct {
	Image       ImagePayload
	Instruction string
}

// Validate は元画像と編集指示を確認します。
func (r EditRequest) Validate() error {
	if err := r.Image.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Instruction) == "" {
		return &ValidationError{Field: "instruction", Message: "please enter an edit instruction"}
	}
	return nil
}

// AnalysisRequest は画像についての質問です。
type AnalysisRequest struct {
	Image    ImagePayload
	Question string
	Depth    AnalysisDepth
}

// Validate は画像のみ必須です。質問は空でも構いません。
func (r AnalysisRequest) Validate() error {
	return r.Image.Validate()
}

// EffectiveQuestion は空の質問を DefaultAnalysisQuestion に置き換えます。
func (r AnalysisRequest) EffectiveQuestion() string {
	if q := strings.TrimSpace(r.Question); q != "" {
		return q
	}
	return DefaultAnalysisQuestion
}
