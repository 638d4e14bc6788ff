package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shouni/gemini-image-studio/pkg/config"
	"github.com/shouni/gemini-image-studio/pkg/generator"
	"github.com/shouni/gemini-image-studio/pkg/workflow"
)

// StudioFactory は設定から ImageStudio を組み立てます。テストで差し替えます。
type StudioFactory func(ctx context.Context, cfg *config.Config) (generator.ImageStudio, error)

// App はコマンド間で共有する依存関係です。
type App struct {
	Out    io.Writer
	ErrOut io.Writer

	LoadConfig func(path string) (*config.Config, error)
	NewStudio  StudioFactory

	configPath string
	verbose    bool
}

// NewApp は標準出力と本物の Gemini クライアントを使う App を返します。
func NewApp() *App {
	return &App{
		Out:        os.Stdout,
		ErrOut:     os.Stderr,
		LoadConfig: config.Load,
		NewStudio:  newGeminiStudio,
	}
}

func newGeminiStudio(ctx context.Context, cfg *config.Config) (generator.ImageStudio, error) {
	client, err := generator.NewClient(ctx, cfg.APIKey)
	if err != nil {
		return nil, err
	}
	return generator.NewGeminiStudio(client.Models, cfg.GeneratorOptions())
}

// NewRootCommand は imagestudio のルートコマンドを作成します。
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "imagestudio",
		Short:         "Generate, edit and analyze images with Gemini",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if app.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(app.ErrOut, &slog.HandlerOptions{Level: level})))
		},
	}
	root.SetOut(app.Out)
	root.SetErr(app.ErrOut)

	root.PersistentFlags().StringVar(&app.configPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newGenerateCommand(app),
		newEditCommand(app),
		newAnalyzeCommand(app),
		newSuggestionsCommand(app),
	)
	return root
}

// Execute はルートコマンドを実行します。
func Execute(ctx context.Context, app *App, args []string) error {
	root := NewRootCommand(app)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// studio は設定を読み込み、Studio を作成して tab を選択します。
// 設定エラーはリモート呼び出しの前に返ります。
func (a *App) studio(ctx context.Context, tab workflow.Tab) (*workflow.Studio, error) {
	cfg, err := a.LoadConfig(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	svc, err := a.NewStudio(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := workflow.NewStudio(svc)
	if err := s.SelectTab(tab); err != nil {
		return nil, err
	}
	return s, nil
}

// progress は端末に接続されている場合だけ進行中の表示を出します。
func (a *App) progress(msg string) {
	if f, ok := a.ErrOut.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintln(a.ErrOut, msg)
	}
}
