package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/shouni/gemini-image-studio/pkg/generator"
)

// ErrMissingAPIKey は API キーがどこにも設定されていないことを示します。
var ErrMissingAPIKey = errors.New("API key is not set: export GEMINI_API_KEY (or GOOGLE_API_KEY / API_KEY)")

// APIKeyEnvVars は API キーを探す環境変数です。先頭が優先されます。
var APIKeyEnvVars = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"}

// Config はアプリケーション全体の設定です。
type Config struct {
	APIKey string `toml:"api_key"`

	GenerationModel   string `toml:"generation_model"`
	EditModel         string `toml:"edit_model"`
	AnalysisModel     string `toml:"analysis_model"`
	DeepAnalysisModel string `toml:"deep_analysis_model"`
	ThinkingBudget    int32  `toml:"thinking_budget"`

	CompressSource     bool `toml:"compress_source"`
	CompressionQuality int  `toml:"compression_quality"`
}

// Default はデフォルトのモデル構成を返します。API キーは含みません。
func Default() *Config {
	return &Config{
		GenerationModel:    generator.DefaultGenerationModel,
		EditModel:          generator.DefaultEditModel,
		AnalysisModel:      generator.DefaultAnalysisModel,
		DeepAnalysisModel:  generator.DefaultDeepAnalysisModel,
		ThinkingBudget:     generator.DefaultThinkingBudget,
		CompressionQuality: generator.DefaultCompressionQuality,
	}
}

// Load はデフォルト値、TOML ファイル、.env、環境変数の順に設定を読み込みます。
// path が空の場合は TOML ファイルを読みません。
// API キーが見つからない場合は ErrMissingAPIKey を返します。
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("設定ファイル %s の読み込みに失敗しました: %w", path, err)
		}
	}

	// .env は任意。既存の環境変数は上書きしない。
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn(".env の読み込みに失敗しました", "error", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	for _, name := range APIKeyEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			cfg.APIKey = v
			break
		}
	}

	setString(&cfg.GenerationModel, "IMAGE_STUDIO_GENERATION_MODEL")
	setString(&cfg.EditModel, "IMAGE_STUDIO_EDIT_MODEL")
	setString(&cfg.AnalysisModel, "IMAGE_STUDIO_ANALYSIS_MODEL")
	setString(&cfg.DeepAnalysisModel, "IMAGE_STUDIO_DEEP_ANALYSIS_MODEL")

	if v := os.Getenv("IMAGE_STUDIO_THINKING_BUDGET"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("IMAGE_STUDIO_THINKING_BUDGET が不正です: %w", err)
		}
		cfg.ThinkingBudget = int32(n)
	}
	if v := os.Getenv("IMAGE_STUDIO_COMPRESS_SOURCE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("IMAGE_STUDIO_COMPRESS_SOURCE が不正です: %w", err)
		}
		cfg.CompressSource = b
	}
	if v := os.Getenv("IMAGE_STUDIO_COMPRESSION_QUALITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("IMAGE_STUDIO_COMPRESSION_QUALITY が不正です: %w", err)
		}
		cfg.CompressionQuality = n
	}
	return nil
}

func setString(dst *string, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = v
	}
}

// Validate は起動前に必須項目と範囲を確認します。
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	// 上位モデルは思考を無効にできないため 0 も受け付けない。
	if c.ThinkingBudget < 1 {
		return fmt.Errorf("thinking_budget must be positive: %d", c.ThinkingBudget)
	}
	if c.CompressionQuality < 1 || c.CompressionQuality > 100 {
		return fmt.Errorf("compression_quality must be between 1 and 100: %d", c.CompressionQuality)
	}
	return nil
}

// GeneratorOptions は generator.Options に変換します。
func (c *Config) GeneratorOptions() generator.Options {
	return generator.Options{
		GenerationModel:    c.GenerationModel,
		EditModel:          c.EditModel,
		AnalysisModel:      c.AnalysisModel,
		DeepAnalysisModel:  c.DeepAnalysisModel,
		ThinkingBudget:     c.ThinkingBudget,
		CompressSource:     c.CompressSource,
		CompressionQuality: c.CompressionQuality,
	}
}
