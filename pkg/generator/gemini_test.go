package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/shouni/gemini-image-studio/pkg/domain"
)

func newStudio(t *testing.T, ai *mockAIClient, opts Options) *GeminiStudio {
	t.Helper()
	s, err := NewGeminiStudio(ai, opts)
	require.NoError(t, err)
	return s
}

func TestGeminiStudio_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("成功: プロンプトと縦横比がそのまま1回だけ渡される", func(t *testing.T) {
		ai := &mockAIClient{
			generateImagesFunc: func(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
				return imagesResponse([]byte("fake-png"), ""), nil
			},
		}
		s := newStudio(t, ai, Options{})

		got, err := s.Generate(ctx, domain.GenerationRequest{Prompt: "a red bicycle", AspectRatio: domain.AspectSquare})
		require.NoError(t, err)

		require.Len(t, ai.imagesCalls, 1)
		call := ai.imagesCalls[0]
		assert.Equal(t, DefaultGenerationModel, call.model)
		assert.Equal(t, "a red bicycle", call.prompt)
		assert.Equal(t, "1:1", call.config.AspectRatio)
		assert.Equal(t, int32(1), call.config.NumberOfImages)
		assert.Equal(t, "image/png", call.config.OutputMIMEType)

		raw, err := got.Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte("fake-png"), raw)
		assert.Equal(t, "image/png", got.MediaType)
	})

	t.Run("失敗: 画像が返らなければ GenerationFailure", func(t *testing.T) {
		ai := &mockAIClient{
			generateImagesFunc: func(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
				return &genai.GenerateImagesResponse{}, nil
			},
		}
		_, err := newStudio(t, ai, Options{}).Generate(ctx, domain.GenerationRequest{Prompt: "x", AspectRatio: domain.AspectSquare})

		var ce *domain.CallError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, domain.OpGenerate, ce.Op)
		assert.ErrorIs(t, err, domain.ErrNoImageData)
	})

	t.Run("失敗: 通信エラーは原因を保ったまま GenerationFailure になる", func(t *testing.T) {
		netErr := errors.New("connection reset")
		ai := &mockAIClient{
			generateImagesFunc: func(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
				return nil, netErr
			},
		}
		_, err := newStudio(t, ai, Options{}).Generate(ctx, domain.GenerationRequest{Prompt: "x", AspectRatio: domain.AspectWideLandscape})
		assert.ErrorIs(t, err, domain.ErrCallFailure)
		assert.ErrorIs(t, err, netErr)
	})

	t.Run("検証エラーの場合は呼び出さない", func(t *testing.T) {
		ai := &mockAIClient{}
		_, err := newStudio(t, ai, Options{}).Generate(ctx, domain.GenerationRequest{Prompt: "x", AspectRatio: "5:4"})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, ai.imagesCalls)
	})
}

func TestGeminiStudio_Edit(t *testing.T) {
	ctx := context.Background()
	source := domain.NewImagePayload([]byte("source-image"), "image/png")

	t.Run("成功: 画像パーツ、指示の順で送り、最初の画像を返す", func(t *testing.T) {
		ai := &mockAIClient{
			generateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return contentResponse(
					&genai.Part{Text: "Here is the edited image"},
					&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("edited")}},
				), nil
			},
		}
		s := newStudio(t, ai, Options{})

		got, err := s.Edit(ctx, domain.EditRequest{Image: source, Instruction: "make it autumn"})
		require.NoError(t, err)

		require.Len(t, ai.contentCalls, 1)
		call := ai.contentCalls[0]
		assert.Equal(t, DefaultEditModel, call.model)
		assert.Equal(t, []string{"IMAGE"}, call.config.ResponseModalities)

		require.Len(t, call.contents, 1)
		parts := call.contents[0].Parts
		require.Len(t, parts, 2)
		assert.Equal(t, []byte("source-image"), parts[0].InlineData.Data)
		assert.Equal(t, "image/png", parts[0].InlineData.MIMEType)
		assert.Equal(t, "make it autumn", parts[1].Text)

		raw, _ := got.Bytes()
		assert.Equal(t, []byte("edited"), raw)
	})

	t.Run("応答のMIMEタイプが空なら元画像のタイプを使う", func(t *testing.T) {
		ai := &mockAIClient{
			generateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return contentResponse(&genai.Part{InlineData: &genai.Blob{Data: []byte("edited")}}), nil
			},
		}
		got, err := newStudio(t, ai, Options{}).Edit(ctx, domain.EditRequest{Image: source, Instruction: "x"})
		require.NoError(t, err)
		assert.Equal(t, "image/png", got.MediaType)
	})

	t.Run("失敗: テキストのみの応答は EditFailure", func(t *testing.T) {
		ai := &mockAIClient{
			generateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return contentResponse(&genai.Part{Text: "I cannot do that"}), nil
			},
		}
		_, err := newStudio(t, ai, Options{}).Edit(ctx, domain.EditRequest{Image: source, Instruction: "x"})

		var ce *domain.CallError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, domain.OpEdit, ce.Op)
	})

	t.Run("空の指示は呼び出し前に拒否する", func(t *testing.T) {
		ai := &mockAIClient{}
		_, err := newStudio(t, ai, Options{}).Edit(ctx, domain.EditRequest{Image: source, Instruction: ""})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, ai.contentCalls)
	})

	t.Run("base64 として読めない画像は呼び出し前に拒否する", func(t *testing.T) {
		ai := &mockAIClient{}
		broken := domain.ImagePayload{Data: "not base64!!", MediaType: "image/png"}
		_, err := newStudio(t, ai, Options{}).Edit(ctx, domain.EditRequest{Image: broken, Instruction: "x"})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, ai.contentCalls)
	})

	t.Run("EditClient を指定するとそちらに送る", func(t *testing.T) {
		ai := &mockAIClient{}
		parts := &mockPartsClient{
			generateWithPartsFunc: func(ctx context.Context, model string, p []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				return &gemini.Response{RawResponse: contentResponse(
					&genai.Part{InlineData: &genai.Blob{MIMEType: "image/webp", Data: []byte("edited")}},
				)}, nil
			},
		}
		s := newStudio(t, ai, Options{EditClient: parts, EditModel: "custom-edit"})

		got, err := s.Edit(ctx, domain.EditRequest{Image: source, Instruction: "add snow"})
		require.NoError(t, err)
		assert.Equal(t, "image/webp", got.MediaType)

		assert.Empty(t, ai.contentCalls)
		require.Len(t, parts.calls, 1)
		assert.Equal(t, "custom-edit", parts.calls[0].model)
		require.Len(t, parts.calls[0].parts, 2)
		assert.Equal(t, []byte("source-image"), parts.calls[0].parts[0].InlineData.Data)
		assert.Equal(t, "add snow", parts.calls[0].parts[1].Text)
	})

	t.Run("EditClient の失敗と空応答は EditFailure", func(t *testing.T) {
		for name, fn := range map[string]func(context.Context, string, []*genai.Part, gemini.GenerateOptions) (*gemini.Response, error){
			"error": func(context.Context, string, []*genai.Part, gemini.GenerateOptions) (*gemini.Response, error) {
				return nil, errors.New("unavailable")
			},
			"nil": func(context.Context, string, []*genai.Part, gemini.GenerateOptions) (*gemini.Response, error) {
				return nil, nil
			},
			"raw なし": func(context.Context, string, []*genai.Part, gemini.GenerateOptions) (*gemini.Response, error) {
				return &gemini.Response{}, nil
			},
		} {
			t.Run(name, func(t *testing.T) {
				s := newStudio(t, &mockAIClient{}, Options{EditClient: &mockPartsClient{generateWithPartsFunc: fn}})
				_, err := s.Edit(ctx, domain.EditRequest{Image: source, Instruction: "x"})
				var ce *domain.CallError
				require.ErrorAs(t, err, &ce)
				assert.Equal(t, domain.OpEdit, ce.Op)
			})
		}
	})
}

func TestGeminiStudio_Analyze(t *testing.T) {
	ctx := context.Background()
	img := domain.NewImagePayload([]byte("photo"), "image/jpeg")
	answer := func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return contentResponse(&genai.Part{Text: "A cat on a sofa."}), nil
	}

	t.Run("simple: 標準モデルで思考設定なし", func(t *testing.T) {
		ai := &mockAIClient{generateContentFunc: answer}
		text, err := newStudio(t, ai, Options{}).Analyze(ctx, domain.AnalysisRequest{Image: img, Question: "What is this?"})
		require.NoError(t, err)
		assert.Equal(t, "A cat on a sofa.", text)

		require.Len(t, ai.contentCalls, 1)
		assert.Equal(t, DefaultAnalysisModel, ai.contentCalls[0].model)
		assert.Nil(t, ai.contentCalls[0].config)
		assert.Equal(t, "What is this?", ai.contentCalls[0].contents[0].Parts[1].Text)
	})

	t.Run("deep: 上位モデルと思考予算を指定する", func(t *testing.T) {
		ai := &mockAIClient{generateContentFunc: answer}
		text, err := newStudio(t, ai, Options{}).Analyze(ctx, domain.AnalysisRequest{Image: img, Question: "What is this?", Depth: domain.DepthDeep})
		require.NoError(t, err)
		assert.Equal(t, "A cat on a sofa.", text)

		call := ai.contentCalls[0]
		assert.Equal(t, DefaultDeepAnalysisModel, call.model)
		require.NotNil(t, call.config)
		require.NotNil(t, call.config.ThinkingConfig)
		require.NotNil(t, call.config.ThinkingConfig.ThinkingBudget)
		assert.Equal(t, DefaultThinkingBudget, *call.config.ThinkingConfig.ThinkingBudget)
	})

	t.Run("base64 として読めない画像は呼び出し前に拒否する", func(t *testing.T) {
		ai := &mockAIClient{generateContentFunc: answer}
		broken := domain.ImagePayload{Data: "not base64!!", MediaType: "image/png"}
		_, err := newStudio(t, ai, Options{}).Analyze(ctx, domain.AnalysisRequest{Image: broken, Depth: domain.DepthDeep})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, ai.contentCalls)
	})

	t.Run("空の質問はデフォルトの質問に置き換える", func(t *testing.T) {
		ai := &mockAIClient{generateContentFunc: answer}
		_, err := newStudio(t, ai, Options{}).Analyze(ctx, domain.AnalysisRequest{Image: img})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultAnalysisQuestion, ai.contentCalls[0].contents[0].Parts[1].Text)
	})

	for _, depth := range []domain.AnalysisDepth{domain.DepthSimple, domain.DepthDeep} {
		t.Run("失敗: テキストのない応答は AnalysisFailure/"+depth.String(), func(t *testing.T) {
			ai := &mockAIClient{
				generateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
					return contentResponse(), nil
				},
			}
			_, err := newStudio(t, ai, Options{}).Analyze(ctx, domain.AnalysisRequest{Image: img, Depth: depth})

			var ce *domain.CallError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, domain.OpAnalyze, ce.Op)
			assert.ErrorIs(t, err, domain.ErrNoTextData)
		})
	}

	t.Run("キャンセル済みのコンテキストはそのままクライアントに伝わる", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		ai := &mockAIClient{
			generateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return nil, ctx.Err()
			},
		}
		_, err := newStudio(t, ai, Options{}).Analyze(cctx, domain.AnalysisRequest{Image: img})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
