package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/ebook-prompt-studio/internal/api"
	"github.com/shouni/ebook-prompt-studio/internal/builder"
	"github.com/shouni/ebook-prompt-studio/internal/config"

	"github.com/spf13/cobra"
)

// serveCmd は、ブラウザ版と同じ1ページのスタジオUIをローカルで提供するのだ。
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "スタジオUIのWebサーバーを起動するのだ。",
	Long: `プレミスの編集、プロンプトの再生成、バッチ生成の開始、
生成画像のプレビューとダウンロードをブラウザから行えるのだ。
生成の進捗は /api/status のポーリングで観測するのだよ。`,
	Example: "  ebook-studio-go serve --listen :8080",
	RunE:    serveCommand,
}

func init() {
	serveCmd.Flags().StringVar(&opts.ListenAddr, "listen", config.DefaultListenAddr, "待ち受けアドレスなのだ。")
}

func serveCommand(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()
	cfg.Options = opts
	appCtx := builder.NewAppContext(cfg)
	batchRunner := builder.BuildBatchRunner(appCtx)

	router := api.SetupRouter(appCtx, batchRunner)

	slog.Info("スタジオUIを起動するのだ！", "listen", opts.ListenAddr)
	if err := router.Run(opts.ListenAddr); err != nil {
		return fmt.Errorf("サーバーの起動に失敗したのだ: %w", err)
	}
	return nil
}
