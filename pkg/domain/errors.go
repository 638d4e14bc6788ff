package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation は呼び出し前に検出された入力不備です。
	ErrValidation = errors.New("validation error")
	// ErrCallFailure はリモート呼び出しの失敗です。空の成功応答も含みます。
	ErrCallFailure = errors.New("call failure")
	// ErrReadFailure はローカルファイルの読み込み失敗です。
	ErrReadFailure = errors.New("read failure")

	ErrNoImageData = errors.New("no image data in response")
	ErrNoTextData  = errors.New("no text in response")
	ErrEmptyFile   = errors.New("file is empty")
)

// Operation は失敗したリモート操作の種類です。
type Operation string

const (
	OpGenerate Operation = "generate"
	OpEdit     Operation = "edit"
	OpAnalyze  Operation = "analyze"
)

// ValidationError は必須入力の欠落などを表します。
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// CallError はリモートサービス呼び出しの失敗を表します。
// Op ごとに GenerationFailure / EditFailure / AnalysisFailure に相当します。
type CallError struct {
	Op  Operation
	Err error
}

func (e *CallError) Error() string {
	switch e.Op {
	case OpGenerate:
		return fmt.Sprintf("image generation failed: %v", e.Err)
	case OpEdit:
		return fmt.Sprintf("image editing failed: %v", e.Err)
	case OpAnalyze:
		return fmt.Sprintf("image analysis failed: %v", e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

func (e *CallError) Is(target error) bool {
	return target == ErrCallFailure
}

// ReadError はファイル読み込みの失敗を表します。
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to read file: %v", e.Err)
	}
	return fmt.Sprintf("failed to read file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func (e *ReadError) Is(target error) bool {
	return target == ErrReadFailure
}

// UserMessage はエラーを画面表示用の文字列に変換します。
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "an unknown error occurred"
}
