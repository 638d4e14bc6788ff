package workflow

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shouni/gemini-image-studio/pkg/domain"
)

var (
	// ErrSubmissionInFlight は呼び出し中に再度送信された場合のエラーです。
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	// ErrSubmissionDiscarded は完了前に Reset された送信の結果を破棄したことを示します。
	ErrSubmissionDiscarded = errors.New("submission was reset before it completed")
)

// RunFunc はリモート呼び出し本体です。ctx のキャンセルに従う必要があります。
type RunFunc[Req, Res any] func(ctx context.Context, req Req) (Res, error)

// Controller は1つのワークフローの状態機械です。
// 同時に進行できる送信は1つだけです。
type Controller[Req, Res any] struct {
	name     string
	validate func(Req) error
	run      RunFunc[Req, Res]
	now      func() time.Time

	mu     sync.Mutex
	state  State
	seq    uint64
	cancel context.CancelFunc
}

// NewController は Idle 状態のコントローラーを作成します。
func NewController[Req, Res any](name string, validate func(Req) error, run RunFunc[Req, Res]) *Controller[Req, Res] {
	return &Controller[Req, Res]{
		name:     name,
		validate: validate,
		run:      run,
		now:      time.Now,
		state:    Idle{},
	}
}

// State は現在の状態を返します。
func (c *Controller[Req, Res]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit は入力を検証してから呼び出しを実行し、完了後の状態を返します。
//
// 入力不備の場合は呼び出さずに Idle{Validation} に留まります。
// 呼び出し中の再送信は ErrSubmissionInFlight を返し、状態は変わりません。
// 実行中に Reset された場合は結果を破棄して ErrSubmissionDiscarded を返します。
func (c *Controller[Req, Res]) Submit(ctx context.Context, req Req) (State, error) {
	c.mu.Lock()
	if _, busy := c.state.(Submitting); busy {
		st := c.state
		c.mu.Unlock()
		return st, ErrSubmissionInFlight
	}

	if err := c.validate(req); err != nil {
		c.state = Idle{Validation: err}
		c.mu.Unlock()
		slog.InfoContext(ctx, "入力が不足しているため送信しませんでした", "workflow", c.name, "reason", err)
		return Idle{Validation: err}, nil
	}

	c.seq++
	seq := c.seq
	requestID := uuid.NewString()
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = Submitting{RequestID: requestID, Started: c.now()}
	c.mu.Unlock()

	slog.InfoContext(ctx, "送信を開始します", "workflow", c.name, "request_id", requestID)
	res, err := c.run(runCtx, req)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		slog.InfoContext(ctx, "リセット済みの送信結果を破棄しました", "workflow", c.name, "request_id", requestID)
		return c.state, ErrSubmissionDiscarded
	}
	c.cancel = nil

	if err != nil {
		c.state = Failed{RequestID: requestID, Err: err, Message: domain.UserMessage(err)}
		slog.WarnContext(ctx, "送信が失敗しました", "workflow", c.name, "request_id", requestID, "error", err)
		return c.state, nil
	}

	c.state = Succeeded[Res]{RequestID: requestID, Result: res}
	slog.InfoContext(ctx, "送信が完了しました", "workflow", c.name, "request_id", requestID)
	return c.state, nil
}

// Reset は進行中の呼び出しをキャンセルし、結果とエラーを消して Idle に戻します。
func (c *Controller[Req, Res]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
	c.state = Idle{}
}
