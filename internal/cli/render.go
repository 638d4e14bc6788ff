package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-image-studio/pkg/codec"
	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/imgutil"
	"github.com/shouni/gemini-image-studio/pkg/workflow"
)

// stateError は結果表示できない状態をコマンドのエラーに変換します。
func stateError(st workflow.State) error {
	switch s := st.(type) {
	case workflow.Idle:
		if s.Validation != nil {
			return s.Validation
		}
		return errors.New("nothing was submitted")
	case workflow.Failed:
		if s.Err != nil {
			return s.Err
		}
		return errors.New(s.Message)
	case workflow.Submitting:
		return workflow.ErrSubmissionInFlight
	}
	return nil
}

// saveImage は成功状態の画像を書き出します。out が空なら base から名前を決めます。
// asDataURL が true の場合はファイルを書かずに data URL を出力します。
func (a *App) saveImage(st workflow.State, out, base string, asDataURL bool) error {
	img, ok := workflow.ResultOf[domain.ImagePayload](st)
	if !ok {
		if err := stateError(st); err != nil {
			return err
		}
		return fmt.Errorf("unexpected state %s", st.Phase())
	}

	if asDataURL {
		fmt.Fprintln(a.Out, img.DataURL())
		return nil
	}

	if out == "" {
		out = codec.FileName(base, img)
	}
	if err := codec.WriteFile(out, img); err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "saved %s to %s\n", describe(img), out)
	return nil
}

// describe は寸法が読めれば "WxH format image"、読めなければメディアタイプを返します。
func describe(img domain.ImagePayload) string {
	raw, err := img.Bytes()
	if err != nil {
		return img.MediaType + " image"
	}
	info, err := imgutil.Probe(raw)
	if err != nil {
		slog.Debug("画像の寸法を取得できませんでした", "error", err)
		return img.MediaType + " image"
	}
	return fmt.Sprintf("%dx%d %s image", info.Width, info.Height, info.Format)
}

// printText は成功状態のテキストを出力します。
func (a *App) printText(st workflow.State) error {
	text, ok := workflow.ResultOf[string](st)
	if !ok {
		if err := stateError(st); err != nil {
			return err
		}
		return fmt.Errorf("unexpected state %s", st.Phase())
	}
	fmt.Fprintln(a.Out, text)
	return nil
}
