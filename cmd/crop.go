package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/ebook-prompt-studio/internal/config"
	"github.com/shouni/ebook-prompt-studio/pkg/transform"

	"github.com/spf13/cobra"
)

// cropCmd は、手元の画像1枚を16:9のPNGへ変換する単発コマンドなのだ。
// 生成済みの画像を後から整形し直したいときに便利なのだ。
var cropCmd = &cobra.Command{
	Use:   "crop <input-image>",
	Short: "画像1枚を中央クロップで16:9のPNGに変換するのだ。",
	Long: `入力画像をデコードし、中央寄せの16:9クロップと1600x900への
リサイズを行ってPNGとして保存するのだ。元画像は変更しないのだよ。`,
	Example: "  ebook-studio-go crop cover.jpg --output cover_16x9.png",
	Args:    cobra.ExactArgs(1),
	RunE:    cropCommand,
}

func init() {
	cropCmd.Flags().String("output", "", "保存先のPNGパスなのだ。省略時は <入力名>_16x9.png になるのだ。")
}

func cropCommand(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("--output フラグの解析に失敗したのだ: %w", err)
	}
	if outputPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outputPath = base + "_16x9.png"
	}

	src, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("入力画像の読み込みに失敗したのだ: %w", err)
	}

	out, err := transform.CropToWide(src, config.DefaultOutputWidth, config.DefaultOutputHeight)
	if err != nil {
		return fmt.Errorf("16:9変換に失敗したのだ: %w", err)
	}

	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("変換結果の保存に失敗したのだ: %w", err)
	}

	slog.Info("16:9変換が完了したのだ！",
		"input", inputPath,
		"output", outputPath,
		"size", fmt.Sprintf("%dx%d", config.DefaultOutputWidth, config.DefaultOutputHeight))
	return nil
}
