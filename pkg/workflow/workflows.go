package workflow

import (
	"context"
	"sync"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/generator"
)

// GenerateWorkflow はテキストから画像を生成するワークフローです。
type GenerateWorkflow struct {
	ctrl *Controller[domain.GenerationRequest, domain.ImagePayload]
}

// NewGenerateWorkflow は svc を使う生成ワークフローを作成します。
func NewGenerateWorkflow(svc generator.ImageStudio) *GenerateWorkflow {
	return &GenerateWorkflow{
		ctrl: NewController[domain.GenerationRequest, domain.ImagePayload]("generate", validateGeneration, svc.Generate),
	}
}

func validateGeneration(req domain.GenerationRequest) error {
	return req.Validate()
}

// Submit は prompt と縦横比で生成を実行します。
func (w *GenerateWorkflow) Submit(ctx context.Context, prompt string, ratio domain.AspectRatio) (State, error) {
	return w.ctrl.Submit(ctx, domain.GenerationRequest{Prompt: prompt, AspectRatio: ratio})
}

func (w *GenerateWorkflow) State() State { return w.ctrl.State() }
func (w *GenerateWorkflow) Reset()       { w.ctrl.Reset() }

// sourceImage は Edit / Analyze が共有する「読み込み済み画像」の保持です。
type sourceImage struct {
	mu    sync.RWMutex
	image domain.ImagePayload
}

func (s *sourceImage) set(p domain.ImagePayload) {
	s.mu.Lock()
	s.image = p
	s.mu.Unlock()
}

func (s *sourceImage) get() domain.ImagePayload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.image
}

// EditWorkflow は読み込んだ画像に編集指示を適用するワークフローです。
type EditWorkflow struct {
	ctrl   *Controller[domain.EditRequest, domain.ImagePayload]
	source sourceImage
}

// NewEditWorkflow は svc を使う編集ワークフローを作成します。
func NewEditWorkflow(svc generator.ImageStudio) *EditWorkflow {
	return &EditWorkflow{
		ctrl: NewController[domain.EditRequest, domain.ImagePayload]("edit", validateEdit, svc.Edit),
	}
}

func validateEdit(req domain.EditRequest) error {
	if req.Image.IsZero() {
		return &domain.ValidationError{Field: "image", Message: "please upload an image to edit"}
	}
	return req.Validate()
}

// LoadImage は編集対象を差し替え、結果とエラーを消して Idle に戻します。
// 画像を先に差し替えるので、リセット後の送信は必ず新しい画像を使います。
func (w *EditWorkflow) LoadImage(p domain.ImagePayload) {
	w.source.set(p)
	w.ctrl.Reset()
}

// Image は読み込み済みの画像を返します。
func (w *EditWorkflow) Image() domain.ImagePayload { return w.source.get() }

// Submit は読み込み済みの画像に instruction を適用します。
func (w *EditWorkflow) Submit(ctx context.Context, instruction string) (State, error) {
	return w.ctrl.Submit(ctx, domain.EditRequest{Image: w.source.get(), Instruction: instruction})
}

func (w *EditWorkflow) State() State { return w.ctrl.State() }
func (w *EditWorkflow) Reset()       { w.ctrl.Reset() }

// AnalyzeWorkflow は読み込んだ画像について質問するワークフローです。
type AnalyzeWorkflow struct {
	ctrl   *Controller[domain.AnalysisRequest, string]
	source sourceImage
}

// NewAnalyzeWorkflow は svc を使う解析ワークフローを作成します。
func NewAnalyzeWorkflow(svc generator.ImageStudio) *AnalyzeWorkflow {
	return &AnalyzeWorkflow{
		ctrl: NewController[domain.AnalysisRequest, string]("analyze", validateAnalysis, svc.Analyze),
	}
}

func validateAnalysis(req domain.AnalysisRequest) error {
	if req.Image.IsZero() {
		return &domain.ValidationError{Field: "image", Message: "please upload an image to analyze"}
	}
	return req.Validate()
}

// LoadImage は解析対象を差し替え、結果とエラーを消して Idle に戻します。
func (w *AnalyzeWorkflow) LoadImage(p domain.ImagePayload) {
	w.source.set(p)
	w.ctrl.Reset()
}

// Image は読み込み済みの画像を返します。
func (w *AnalyzeWorkflow) Image() domain.ImagePayload { return w.source.get() }

// Submit は読み込み済みの画像について question を尋ねます。deep で拡張推論を使います。
func (w *AnalyzeWorkflow) Submit(ctx context.Context, question string, deep bool) (State, error) {
	depth := domain.DepthSimple
	if deep {
		depth = domain.DepthDeep
	}
	return w.ctrl.Submit(ctx, domain.AnalysisRequest{Image: w.source.get(), Question: question, Depth: depth})
}

func (w *AnalyzeWorkflow) State() State { return w.ctrl.State() }
func (w *AnalyzeWorkflow) Reset()       { w.ctrl.Reset() }
