package generator

const (
	DefaultGenerationModel    = "imagen-4.0-generate-001"
	DefaultEditModel          = "gemini-2.5-flash-image"
	DefaultAnalysisModel      = "gemini-2.5-flash"
	DefaultDeepAnalysisModel  = "gemini-2.5-pro"
	DefaultThinkingBudget     = int32(32768)
	DefaultCompressionQuality = 75

	generatedMediaType    = "image/png"
	responseModalityImage = "IMAGE"
	modelPrefix           = "models/"
)

// Options は GeminiStudio のモデル選択と前処理の設定です。
// ゼロ値のフィールドにはデフォルト値が入ります。
type Options struct {
	GenerationModel   string
	EditModel         string
	AnalysisModel     string
	DeepAnalysisModel string
	ThinkingBudget    int32

	// EditClient は編集リクエストの送信先です。nil の場合は ModelClient を使います。
	EditClient PartsClient

	// CompressSource が true の場合、編集・解析に送る画像を JPEG に再圧縮します。
	CompressSource     bool
	CompressionQuality int
}

func (o Options) withDefaults() Options {
	o.GenerationModel = normalizeModel(o.GenerationModel, DefaultGenerationModel)
	o.EditModel = normalizeModel(o.EditModel, DefaultEditModel)
	o.AnalysisModel = normalizeModel(o.AnalysisModel, DefaultAnalysisModel)
	o.DeepAnalysisModel = normalizeModel(o.DeepAnalysisModel, DefaultDeepAnalysisModel)
	if o.ThinkingBudget <= 0 {
		o.ThinkingBudget = DefaultThinkingBudget
	}
	if o.CompressionQuality <= 0 {
		o.CompressionQuality = DefaultCompressionQuality
	}
	return o
}
