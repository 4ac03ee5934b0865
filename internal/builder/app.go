package builder

import (
	"github.com/shouni/ebook-prompt-studio/internal/config"
	"github.com/shouni/ebook-prompt-studio/internal/store"
	"github.com/shouni/ebook-prompt-studio/pkg/prompts"
	"github.com/shouni/ebook-prompt-studio/pkg/registry"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config   *config.Config         // Configは、環境変数から読み込まれたグローバルな設定です。
	Options  config.GenerateOptions // Optionsは、コマンドラインから渡された実行時の設定です。
	Store    store.Store            // Storeは、プレミス・エンドポイント・認証トークンの永続化先です。
	Registry *registry.Registry     // Registryは、生成画像ハンドルの実行単位の保管庫です。
	Prompts  *prompts.Builder       // Promptsは、決定的なプロンプトビルダーです。
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(cfg *config.Config) *AppContext {
	settingsDir := cfg.Options.SettingsDir
	if settingsDir == "" {
		settingsDir = config.DefaultSettingsDir()
	}

	return &AppContext{
		Config:   cfg,
		Options:  cfg.Options,
		Store:    store.NewFileStore(settingsDir),
		Registry: registry.New(),
		Prompts:  prompts.NewBuilder(cfg.MaxPromptChars),
	}
}
