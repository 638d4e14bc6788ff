package codec

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/shouni/gemini-image-studio/pkg/domain"
)

// ReadFile はファイルを一度だけメモリに読み込み、ImagePayload に変換します。
// メディアタイプは内容から判定します。
func ReadFile(path string) (domain.ImagePayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ImagePayload{}, &domain.ReadError{Path: path, Err: err}
	}
	if len(data) == 0 {
		return domain.ImagePayload{}, &domain.ReadError{Path: path, Err: domain.ErrEmptyFile}
	}
	return domain.NewImagePayload(data, DetectMediaType(data)), nil
}

// Encode は r を読み切って ImagePayload を作ります。
// mediaType が空の場合は内容から判定します。
func Encode(r io.Reader, mediaType string) (domain.ImagePayload, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return domain.ImagePayload{}, &domain.ReadError{Err: err}
	}
	if buf.Len() == 0 {
		return domain.ImagePayload{}, &domain.ReadError{Err: domain.ErrEmptyFile}
	}
	if mediaType == "" {
		mediaType = DetectMediaType(buf.Bytes())
	}
	return domain.NewImagePayload(buf.Bytes(), mediaType), nil
}

// DetectMediaType はバイト列の先頭からメディアタイプを判定します。
// パラメータ (charset など) は取り除きます。
func DetectMediaType(data []byte) string {
	mt := mimetype.Detect(data).String()
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt
}

// WriteFile は payload をデコードして path に書き出します。
func WriteFile(path string, p domain.ImagePayload) error {
	data, err := p.Bytes()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("画像の書き込みに失敗しました: %w", err)
	}
	return nil
}

// FileName は base にメディアタイプに対応する拡張子を付けます。
func FileName(base string, p domain.ImagePayload) string {
	ext := ".png"
	if m := mimetype.Lookup(p.MediaType); m != nil && m.Extension() != "" {
		ext = m.Extension()
	}
	return base + ext
}
