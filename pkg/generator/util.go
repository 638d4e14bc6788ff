package generator

import "strings"

// normalizeModel は "models/" 接頭辞と空白を取り除きます。空なら fallback を返します。
func normalizeModel(name, fallback string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), modelPrefix)
	if name == "" {
		return fallback
	}
	return name
}

// truncate はログ出力用にプロンプトを短くします。
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
