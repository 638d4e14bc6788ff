package imgutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// JPEGMediaType は CompressToJPEG の出力メディアタイプです。
const JPEGMediaType = "image/jpeg"

// Info はピクセルをデコードせずに取得できる画像の概要です。
type Info struct {
	Width  int
	Height int
	Format string
}

// CompressToJPEG は PNG / GIF / JPEG / WebP を指定品質の JPEG に変換します。
// 透過部分は白で塗りつぶします。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("JPEG品質は1〜100で指定してください: %d", quality)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("画像のデコードに失敗しました: %w", err)
	}
	if format != "jpeg" {
		src = flatten(src)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("JPEGのエンコードに失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

// flatten はアルファを白背景に合成した不透明な画像を返します。
func flatten(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, b, src, b.Min, draw.Over)
	return dst
}

// Probe はヘッダーのみを読んで寸法とフォーマットを返します。
func Probe(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("画像ヘッダーを読み取れません: %w", err)
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}
