package workflow

import (
	"context"
	"sync"

	"github.com/shouni/gemini-image-studio/pkg/domain"
)

// mockStudio は generator.ImageStudio のテスト用モックです。
type mockStudio struct {
	mu sync.Mutex

	generateFunc func(ctx context.Context, req domain.GenerationRequest) (domain.ImagePayload, error)
	editFunc     func(ctx context.Context, req domain.EditRequest) (domain.ImagePayload, error)
	analyzeFunc  func(ctx context.Context, req domain.AnalysisRequest) (string, error)

	generateCalls []domain.GenerationRequest
	editCalls     []domain.EditRequest
	analyzeCalls  []domain.AnalysisRequest
}

func (m *mockStudio) Generate(ctx context.Context, req domain.GenerationRequest) (domain.ImagePayload, error) {
	m.mu.Lock()
	m.generateCalls = append(m.generateCalls, req)
	m.mu.Unlock()
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	return domain.ImagePayload{}, nil
}

func (m *mockStudio) Edit(ctx context.Context, req domain.EditRequest) (domain.ImagePayload, error) {
	m.mu.Lock()
	m.editCalls = append(m.editCalls, req)
	m.mu.Unlock()
	if m.editFunc != nil {
		return m.editFunc(ctx, req)
	}
	return domain.ImagePayload{}, nil
}

func (m *mockStudio) Analyze(ctx context.Context, req domain.AnalysisRequest) (string, error) {
	m.mu.Lock()
	m.analyzeCalls = append(m.analyzeCalls, req)
	m.mu.Unlock()
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, req)
	}
	return "", nil
}

func (m *mockStudio) generateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.generateCalls)
}

// blockingGenerate は release が閉じられるか ctx がキャンセルされるまで戻らない Generate です。
// started には呼び出し開始時に1回送信されます。
func blockingGenerate(started chan<- struct{}, release <-chan struct{}, result domain.ImagePayload) func(ctx context.Context, req domain.GenerationRequest) (domain.ImagePayload, error) {
	return func(ctx context.Context, req domain.GenerationRequest) (domain.ImagePayload, error) {
		started <- struct{}{}
		select {
		case <-release:
			return result, nil
		case <-ctx.Done():
			return domain.ImagePayload{}, ctx.Err()
		}
	}
}
