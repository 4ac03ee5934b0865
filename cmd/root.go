package cmd

import (
	"fmt"

	"github.com/shouni/ebook-prompt-studio/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts はコマンドラインフラグを束ねる共有オプションなのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.Premise, "premise", "p", "", "物語のプレミス（あらすじ）なのだ。省略時は保存済みの値を使うのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.PremiseFile, "premise-file", "f", "", "プレミスを記したテキストファイルのパスなのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "生成された画像を保存するディレクトリなのだ。")

	// --- ワーカー接続設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.Endpoint, "endpoint", "u", "", "画像生成ワーカーのURLなのだ。省略時は保存済みの値かデフォルトを使うのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.APIKey, "api-key", "k", "", "ワーカー用のBearerトークンなのだ（任意）。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。0 なら無期限なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.RequestInterval, "request-interval", config.DefaultRequestInterval, "スロット間のリクエスト間隔なのだ。0 なら待機なしなのだ。")

	// --- 設定の保存先 ---
	rootCmd.PersistentFlags().StringVar(&opts.SettingsDir, "settings-dir", "", "設定（プレミス・URL・トークン）の保存先ディレクトリなのだ。")
}

// preRunAppE は、コマンド実行前に共通の入力チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	if opts.RequestInterval < 0 {
		return fmt.Errorf("エラー: --request-interval に負の値は指定できないのだ")
	}
	if opts.HTTPTimeout < 0 {
		return fmt.Errorf("エラー: --http-timeout に負の値は指定できないのだ")
	}
	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ebook-studio-go",
		addAppFlags,
		preRunAppE,
		promptsCmd,
		generateCmd,
		cropCmd,
		serveCmd,
		settingsCmd,
	)
}
