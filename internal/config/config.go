package config

import (
	"errors"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel          = "gemini-2.5-flash"
	DefaultImageModel     = "imagen-4.0-generate-001"
	DefaultChatModel      = "gemini-2.5-flash"
	DefaultAspectRatio    = "16:9"
	DefaultImageMimeType  = "image/jpeg"
	DefaultHTTPAddr       = ":8080"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultChatSessionTTL = 30 * time.Minute
	DefaultOutputDir      = "output"
)

// ErrMissingAPIKey は API キーが設定されていないことを表すのだ。起動時の致命的エラーとして扱うのだ。
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY (or API_KEY) environment variable not set")

// Config はアプリケーション全体の環境設定（APIキーやモデル名）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string
	GeminiChatModel  string
	ImageAspectRatio string
	ImageMimeType    string
	HTTPAddr         string
	ChatSessionTTL   time.Duration

	Options GenerateOptions
}

// LoadConfig は .env と環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	// .env が無いのは普通のことなので無視するのだ
	_ = godotenv.Load()

	apiKey := envutil.GetEnv("GEMINI_API_KEY", "")
	if apiKey == "" {
		apiKey = envutil.GetEnv("API_KEY", "")
	}

	cfg := &Config{
		GeminiAPIKey:     apiKey,
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		GeminiChatModel:  envutil.GetEnv("CHAT_GEMINI_MODEL", DefaultChatModel),
		ImageAspectRatio: envutil.GetEnv("IMAGE_ASPECT_RATIO", DefaultAspectRatio),
		ImageMimeType:    envutil.GetEnv("IMAGE_MIME_TYPE", DefaultImageMimeType),
		HTTPAddr:         envutil.GetEnv("HTTP_ADDR", DefaultHTTPAddr),
		ChatSessionTTL:   parseDuration("CHAT_SESSION_TTL", DefaultChatSessionTTL),
	}
	return cfg
}

// Validate は起動に必須の設定が揃っているか確認するのだ。
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// ApplyOptions は CLI フラグで指定された値を環境設定に上書きするのだ。空の値は無視するのだ。
func (c *Config) ApplyOptions(opts GenerateOptions) {
	c.Options = opts
	if opts.AIModel != "" {
		c.GeminiModel = opts.AIModel
	}
	if opts.ImageModel != "" {
		c.GeminiImageModel = opts.ImageModel
	}
	if opts.ChatModel != "" {
		c.GeminiChatModel = opts.ChatModel
	}
	if opts.AspectRatio != "" {
		c.ImageAspectRatio = opts.AspectRatio
	}
}

func parseDuration(key string, def time.Duration) time.Duration {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("Invalid duration in environment, using default", "key", key, "value", raw, "default", def)
		return def
	}
	return d
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	ScriptURL  string // --script-url
	ScriptFile string // --script-file ("-" で標準入力)
	OutputDir  string // --output-dir
	Title      string // --title

	// AI挙動設定
	AIModel     string // --model: 場面抽出用のGeminiモデル
	ImageModel  string // --image-model: 画像生成用のモデル
	ChatModel   string // --chat-model: チャット用のGeminiモデル
	AspectRatio string // --aspect-ratio

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
}

// ServeOptions は serve コマンドのパラメータなのだ。
type ServeOptions struct {
	Addr string // --addr
}
