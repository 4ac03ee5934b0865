package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultEndpoint       = "https://ebook-image-forge.mikegyver.workers.dev/api/generate"
	DefaultMaxPromptChars = 2048 // 生成ワーカー側のプロンプト文字数上限
	DefaultOutputWidth    = 1600
	DefaultOutputHeight   = 900
	DefaultOutputDir      = "output/assets" // generate コマンドの保存先なのだ
	DefaultListenAddr     = ":8080"

	// DefaultHTTPTimeout が 0 のときはタイムアウトなし（応答を待ち続ける）なのだ。
	DefaultHTTPTimeout time.Duration = 0
	// DefaultRequestInterval が 0 のときはリクエスト間の待機を入れないのだ。
	DefaultRequestInterval time.Duration = 0
)

// Config はアプリケーション全体の環境設定を保持する構造体なのだ。
type Config struct {
	Endpoint       string
	APIKey         string
	MaxPromptChars int
	OutputWidth    int
	OutputHeight   int

	Options GenerateOptions
}

// LoadConfig は .env と環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	// .env はあれば読む、なければそれでよし、なのだ
	_ = godotenv.Load()

	cfg := &Config{
		Endpoint:       envutil.GetEnv("FORGE_ENDPOINT", DefaultEndpoint),
		APIKey:         envutil.GetEnv("FORGE_API_KEY", ""),
		MaxPromptChars: DefaultMaxPromptChars,
		OutputWidth:    DefaultOutputWidth,
		OutputHeight:   DefaultOutputHeight,
	}
	return cfg
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	Premise     string // --premise
	PremiseFile string // --premise-file
	OutputDir   string // --output-dir

	// 接続設定
	Endpoint string // --endpoint
	APIKey   string // --api-key

	// 実行制御
	HTTPTimeout     time.Duration // --http-timeout
	RequestInterval time.Duration // --request-interval
	ListenAddr      string        // --listen (serve)
	SettingsDir     string        // --settings-dir
}

// DefaultSettingsDir は設定ストアの既定の置き場所を返すのだ。
// ユーザー設定ディレクトリが取れない環境ではカレント配下に退避するのだ。
func DefaultSettingsDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".ebook-studio-go"
	}
	return filepath.Join(base, "ebook-studio-go")
}
