package generator

import (
	"context"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// modelPartsClient は ModelClient の GenerateContent を PartsClient として使うためのアダプターです。
// 応答は gemini.Response の RawResponse にそのまま格納します。
type modelPartsClient struct {
	models     ModelClient
	modalities []string
}

var _ PartsClient = (*modelPartsClient)(nil)

// GenerateWithParts はパーツ列を1つのユーザーコンテンツとして送信します。
// opts は参照しません。
func (c *modelPartsClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, _ gemini.GenerateOptions) (*gemini.Response, error) {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var config *genai.GenerateContentConfig
	if len(c.modalities) > 0 {
		config = &genai.GenerateContentConfig{ResponseModalities: c.modalities}
	}

	resp, err := c.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}
