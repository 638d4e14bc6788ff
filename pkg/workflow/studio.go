package workflow

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/shouni/gemini-image-studio/pkg/generator"
)

// Tab は画面上のワークフロー選択タブです。
type Tab string

const (
	TabGenerate Tab = "generate"
	TabEdit     Tab = "edit"
	TabAnalyze  Tab = "analyze"
)

// ParseTab は文字列を Tab に変換します。
func ParseTab(s string) (Tab, error) {
	switch t := Tab(s); t {
	case TabGenerate, TabEdit, TabAnalyze:
		return t, nil
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// Studio は3つのワークフローと選択中のタブを保持します。
type Studio struct {
	mu       sync.Mutex
	active   Tab
	generate *GenerateWorkflow
	edit     *EditWorkflow
	analyze  *AnalyzeWorkflow
}

// NewStudio は Generate タブが選択された Studio を作成します。
func NewStudio(svc generator.ImageStudio) *Studio {
	return &Studio{
		active:   TabGenerate,
		generate: NewGenerateWorkflow(svc),
		edit:     NewEditWorkflow(svc),
		analyze:  NewAnalyzeWorkflow(svc),
	}
}

// ActiveTab は選択中のタブを返します。
func (s *Studio) ActiveTab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// SelectTab はタブを切り替えます。
// 離れるタブの進行中の呼び出しはキャンセルされ、両方のタブの結果とエラーは消えます。
// 未知のタブは何も変更せずにエラーを返します。
func (s *Studio) SelectTab(t Tab) error {
	if _, err := ParseTab(string(t)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t == s.active {
		return nil
	}
	s.reset(s.active)
	s.reset(t)
	slog.Debug("タブを切り替えました", "from", s.active, "to", t)
	s.active = t
	return nil
}

func (s *Studio) reset(t Tab) {
	switch t {
	case TabGenerate:
		s.generate.Reset()
	case TabEdit:
		s.edit.Reset()
	case TabAnalyze:
		s.analyze.Reset()
	}
}

func (s *Studio) Generate() *GenerateWorkflow { return s.generate }
func (s *Studio) Edit() *EditWorkflow         { return s.edit }
func (s *Studio) Analyze() *AnalyzeWorkflow   { return s.analyze }
