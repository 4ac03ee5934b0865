package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/ebook-prompt-studio/internal/builder"
	"github.com/shouni/ebook-prompt-studio/internal/config"

	"github.com/spf13/cobra"
)

// promptsCmd は、プレミスから10スロット分のプロンプトを組み立てて表示するのだ。
// 生成リクエストは送らないので、文面の確認や手元コピーに使うのだ。
var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "プレミスから全スロットのプロンプトを組み立てて表示するのだ。",
	Long: `物語のプレミスを基に、表紙からクレジットまで10スロット分の
画像生成プロンプトを固定順で組み立てて標準出力に並べるのだ。
同じプレミスからは常に同じプロンプトが得られるのだよ。`,
	RunE: promptsCommand,
}

func init() {
}

func promptsCommand(cmd *cobra.Command, args []string) error {
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
	slog.Info("プロンプトを組み立てたのだ", "slots", len(items), "max_chars", cfg.MaxPromptChars)

	for _, item := range items {
		fmt.Printf("## %s • %s\n%s\n\n", item.Slot.DisplayName(), item.Filename, item.Prompt)
	}
	return nil
}
