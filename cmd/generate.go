package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/ebook-prompt-studio/internal/builder"
	"github.com/shouni/ebook-prompt-studio/internal/config"

	"github.com/spf13/cobra"
)

// generateCmd は、プロンプト構築から画像生成・16:9変換・保存までを一気に実行するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "全スロットの画像を順番に生成して保存するのだ。",
	Long: `プレミスから組み立てたプロンプトを1件ずつワーカーへ送り、
返ってきたJPEGと16:9変換済みPNGを出力ディレクトリへ保存するのだ。
失敗したスロットはスキップされ、残りの生成は最後まで続くのだよ。`,
	Example: "  ebook-studio-go generate -p \"A brave turtle\" -o output/assets",
	RunE:    generateCommand,
}

func init() {
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := config.LoadConfig()
	cfg.Options = opts
	appCtx := builder.NewAppContext(cfg)

	premise, err := appCtx.ResolvePremise()
	if err != nil {
		return err
	}
	if premise == "" {
		return fmt.Errorf("プレミス（--premise または --premise-file）を指定してほしいのだ")
	}

	items := appCtx.Prompts.BuildAll(premise)
	batchRunner := builder.BuildBatchRunner(appCtx)

	slog.Info("画像生成パイプラインを起動するのだ！",
		"slots", len(items),
		"endpoint", appCtx.CurrentEndpoint(),
		"output_dir", opts.OutputDir)

	snapshot, err := batchRunner.Run(ctx, items)
	if err != nil {
		return fmt.Errorf("バッチ実行に失敗したのだ: %w", err)
	}

	if len(snapshot.Assets) == 0 {
		slog.Warn("1枚も生成できなかったのだ。ワーカーURLとトークンを確認してほしいのだ", "status", snapshot.Status)
		return nil
	}

	publishRunner := builder.BuildPublishRunner(appCtx)
	paths, err := publishRunner.Run(ctx, snapshot.Assets)
	if err != nil {
		return fmt.Errorf("アセットの保存に失敗したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！",
		"produced", len(snapshot.Assets),
		"requested", len(items),
		"files", len(paths))
	return nil
}
