package cmd

import (
	"fmt"

	"github.com/shouni/ebook-prompt-studio/internal/builder"
	"github.com/shouni/ebook-prompt-studio/internal/config"
	"github.com/shouni/ebook-prompt-studio/internal/store"

	"github.com/spf13/cobra"
)

// settingsCmd は、保存済み設定の確認と認証トークンの破棄を行うのだ。
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "保存済みの設定を表示・整理するのだ。",
	Long: `プレミス・ワーカーURL・認証トークンの保存状態を表示するのだ。
トークンそのものは表示せず、設定の有無だけを伝えるのだよ。`,
	RunE: settingsCommand,
}

func init() {
	settingsCmd.Flags().Bool("clear-key", false, "保存済みの認証トークンを削除するのだ。")
}

func settingsCommand(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()
	cfg.Options = opts
	appCtx := builder.NewAppContext(cfg)

	clearKey, err := cmd.Flags().GetBool("clear-key")
	if err != nil {
		return fmt.Errorf("--clear-key フラグの解析に失敗したのだ: %w", err)
	}
	if clearKey {
		appCtx.Store.Remove(store.KeyAPIKey)
		fmt.Println("保存済みの認証トークンを削除したのだ。")
		return nil
	}

	premise := appCtx.Store.Load(store.KeyPremise)
	workerURL := appCtx.Store.Load(store.KeyWorkerURL)
	if workerURL == "" {
		workerURL = cfg.Endpoint + " (default)"
	}

	keyState := "未設定"
	if appCtx.Store.Load(store.KeyAPIKey) != "" {
		keyState = "設定済み"
	}

	fmt.Printf("premise:    %s\n", summarize(premise, 60))
	fmt.Printf("worker URL: %s\n", workerURL)
	fmt.Printf("API key:    %s\n", keyState)
	return nil
}

// summarize は長いプレミスを1行に収まる長さへ丸めるのだ。
func summarize(s string, maxRunes int) string {
	if s == "" {
		return "(未設定)"
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "…"
}
