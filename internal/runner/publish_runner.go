package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/shouni/ebook-prompt-studio/pkg/domain"
	"github.com/shouni/ebook-prompt-studio/pkg/registry"

	"golang.org/x/sync/errgroup"
)

// PublishRunner は生成済みアセットの永続化を担うインターフェースなのだ。
type PublishRunner interface {
	Run(ctx context.Context, assets []domain.RenderedAsset) ([]string, error)
}

// AssetPublishRunner は、レジストリ上のハンドルをローカルのファイルに書き出す実装なのだ。
// スロットごとに元JPEGと16:9 PNGの2ファイルが生まれるのだ。
type AssetPublishRunner struct {
	reg       *registry.Registry
	outputDir string
}

// NewAssetPublishRunner は、AssetPublishRunnerの新しいインスタンスを生成して返すのだ。
func NewAssetPublishRunner(reg *registry.Registry, outputDir string) *AssetPublishRunner {
	return &AssetPublishRunner{
		reg:       reg,
		outputDir: outputDir,
	}
}

// Run は全アセットを出力ディレクトリへ書き出し、保存したパスの一覧を返すのだ。
// 書き込みは並列だが、ハンドルはすでに確定済みなので競合しないのだ。
func (pr *AssetPublishRunner) Run(ctx context.Context, assets []domain.RenderedAsset) ([]string, error) {
	if err := os.MkdirAll(pr.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("出力ディレクトリの作成に失敗したのだ: %w", err)
	}

	var (
		mu    sync.Mutex
		paths []string
	)
	eg, _ := errgroup.WithContext(ctx)

	for _, asset := range assets {
		asset := asset // ゴルーチンのクロージャ対策なのだ

		eg.Go(func() error {
			written, err := pr.writeAsset(asset)
			if err != nil {
				return err
			}
			mu.Lock()
			paths = append(paths, written...)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

// writeAsset は1アセット分（プレビューとダウンロード）を書き出すのだ。
func (pr *AssetPublishRunner) writeAsset(asset domain.RenderedAsset) ([]string, error) {
	targets := []struct {
		key      string
		filename string
	}{
		{asset.PreviewKey, asset.PreviewFilename},
		{asset.DownloadKey, asset.DownloadFilename},
	}

	var written []string
	for _, t := range targets {
		handle, ok := pr.reg.Get(t.key)
		if !ok {
			return nil, fmt.Errorf("ハンドル '%s' がレジストリに見つからないのだ", t.key)
		}

		path := filepath.Join(pr.outputDir, t.filename)
		if err := os.WriteFile(path, handle.Data, 0644); err != nil {
			return nil, fmt.Errorf("アセットの保存に失敗したのだ %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
