package workflow

import "time"

// Phase はワークフローの状態の種類です。
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// State はワークフローの状態です。各バリアントは自分に関係するデータだけを持ちます。
type State interface {
	Phase() Phase
	state()
}

// Idle は入力待ちの状態です。
// 直前の送信が入力不備で拒否された場合は Validation にその理由が入ります。
type Idle struct {
	Validation error
}

// Submitting は呼び出しが進行中の状態です。
type Submitting struct {
	RequestID string
	Started   time.Time
}

// Succeeded は呼び出しが成功し、結果を保持している状態です。
type Succeeded[T any] struct {
	RequestID string
	Result    T
}

// Failed は呼び出しが失敗した状態です。Message は画面表示用です。
type Failed struct {
	RequestID string
	Err       error
	Message   string
}

func (Idle) Phase() Phase         { return PhaseIdle }
func (Submitting) Phase() Phase   { return PhaseSubmitting }
func (Succeeded[T]) Phase() Phase { return PhaseSucceeded }
func (Failed) Phase() Phase       { return PhaseFailed }

func (Idle) state()         {}
func (Submitting) state()   {}
func (Succeeded[T]) state() {}
func (Failed) state()       {}

// ResultOf は st が Succeeded[T] の場合にその結果を返します。
func ResultOf[T any](st State) (T, bool) {
	s, ok := st.(Succeeded[T])
	if !ok {
		var zero T
		return zero, false
	}
	return s.Result, true
}

// ErrorMessage は Failed の表示用メッセージ、または Idle の入力不備メッセージを返します。
func ErrorMessage(st State) string {
	switch s := st.(type) {
	case Failed:
		return s.Message
	case Idle:
		if s.Validation != nil {
			return s.Validation.Error()
		}
	}
	return ""
}
