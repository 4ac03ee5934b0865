package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shouni/ebook-prompt-studio/pkg/domain"
	"github.com/shouni/ebook-prompt-studio/pkg/forge"
	"github.com/shouni/ebook-prompt-studio/pkg/registry"
	"github.com/shouni/ebook-prompt-studio/pkg/transform"

	"golang.org/x/time/rate"
)

// ErrBusy は、バッチ実行中に新しい実行を開始しようとしたときに返るのだ。
// 呼び出し側はこれを「無視してよい」合図として扱うのだ。
var ErrBusy = errors.New("別のバッチ生成が実行中なのだ")

// 表示用ステータスの定型文なのだ。ブラウザ版の文言をそのまま踏襲するのだ。
const (
	statusStarted = "Generating images…"
	statusDone    = "Done ✅"
	statusStopped = "Generation stopped"
)

// ForgeClient は画像生成ワーカーへの呼び出しを抽象化するインターフェースなのだ。
type ForgeClient interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// BatchRunner は、プロンプトのリストを1件ずつ順番に処理するオーケストレーターなのだ。
// 同時に外へ出るリクエストは常に1本だけ。スロット単位の失敗はバッチを止めないのだ。
type BatchRunner struct {
	clientFor func() ForgeClient
	reg       *registry.Registry
	outW      int
	outH      int
	interval  time.Duration // リクエスト間隔。0 なら待機なしなのだ

	mu     sync.Mutex
	busy   bool
	status string
	assets []domain.RenderedAsset
}

// NewBatchRunner は、BatchRunnerの新しいインスタンスを生成して返すのだ。
// クライアントは実行のたびに clientFor から作り直すのだ。サーバー稼働中に
// 保存し直されたワーカーURLやトークンを、次の実行から反映するためなのだ。
func NewBatchRunner(clientFor func() ForgeClient, reg *registry.Registry, outW, outH int, interval time.Duration) *BatchRunner {
	return &BatchRunner{
		clientFor: clientFor,
		reg:       reg,
		outW:      outW,
		outH:      outH,
		interval:  interval,
	}
}

// Busy は実行中かどうかを返すのだ。
func (br *BatchRunner) Busy() bool {
	br.mu.Lock()
	defer br.mu.Unlock()
	return br.busy
}

// Snapshot は現在の実行状態のコピーを返すのだ。
// プレゼンテーション層はこのコピーだけを読むのだ。
func (br *BatchRunner) Snapshot() domain.RunSnapshot {
	br.mu.Lock()
	defer br.mu.Unlock()

	assets := make([]domain.RenderedAsset, len(br.assets))
	copy(assets, br.assets)
	return domain.RunSnapshot{
		Busy:   br.busy,
		Status: br.status,
		Assets: assets,
	}
}

// Run は全スロットを順番に処理するのだ。何件失敗しても必ず最後まで回り、
// 成功したスロットの分だけアセットが生まれるのだ。
// すでに実行中の場合は何もせず ErrBusy を返すのだ。
// コンテキストが打ち切られた場合だけは途中で止まり、完了扱いにはしないのだ。
func (br *BatchRunner) Run(ctx context.Context, items []domain.PromptItem) (domain.RunSnapshot, error) {
	if err := br.begin(); err != nil {
		return br.Snapshot(), err
	}
	defer br.finish()

	client := br.clientFor()

	var limiter *rate.Limiter
	if br.interval > 0 {
		limiter = rate.NewLimiter(rate.Every(br.interval), 1)
	}

	slog.Info("バッチ生成を開始するのだ", "slots", len(items), "interval", br.interval)

	for i, item := range items {
		br.setStatus(fmt.Sprintf("Generating %s (%d/%d)…", item.Slot.DisplayName(), i+1, len(items)))

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				br.setStatus(statusStopped)
				slog.Warn("待機中に中断されたのだ", "error", err)
				return br.Snapshot(), err
			}
		}

		data, err := client.Generate(ctx, item.Prompt)
		if err != nil {
			br.reportFailure(item, err)
			continue
		}

		br.appendAsset(br.renderAsset(item, data))
	}

	br.setStatus(statusDone)
	slog.Info("バッチ生成が完了したのだ", "produced", len(br.Snapshot().Assets), "requested", len(items))
	return br.Snapshot(), nil
}

// begin は busy ガードなのだ。フラグはここでのみ立てるのだ。
func (br *BatchRunner) begin() error {
	br.mu.Lock()
	defer br.mu.Unlock()

	if br.busy {
		return ErrBusy
	}
	br.busy = true
	br.assets = nil
	br.status = statusStarted

	// 前回の実行で生まれたハンドルはここでまとめて解放するのだ
	br.reg.Reset()
	return nil
}

func (br *BatchRunner) finish() {
	br.mu.Lock()
	br.busy = false
	br.mu.Unlock()
}

// renderAsset は1スロット分の応答バイト列からアセットを組み立てるのだ。
// 16:9変換に失敗したら、元のバイト列をそのままダウンロード用に流用するのだ。
func (br *BatchRunner) renderAsset(item domain.PromptItem, data []byte) domain.RenderedAsset {
	previewKey := br.reg.Put(item.Slot, registry.KindPreview, registry.Handle{
		Data:     data,
		MimeType: "image/jpeg",
	})

	downloadHandle := registry.Handle{Data: data, MimeType: "image/jpeg"}
	if cropped, err := transform.CropToWide(data, br.outW, br.outH); err != nil {
		slog.Warn("16:9変換に失敗したため元画像で代用するのだ", "slot", item.Slot.ID(), "error", err)
	} else {
		downloadHandle = registry.Handle{Data: cropped, MimeType: "image/png"}
	}
	downloadKey := br.reg.Put(item.Slot, registry.KindDownload, downloadHandle)

	return domain.RenderedAsset{
		Slot:             item.Slot,
		PreviewFilename:  item.Filename,
		PreviewKey:       previewKey,
		DownloadFilename: item.Slot.DownloadFilename(),
		DownloadKey:      downloadKey,
	}
}

// reportFailure はスロット失敗の扱いを分けるのだ。HTTPステータス異常だけは
// ユーザーに見えるステータス文へ反映し、それ以外は黙ってスキップなのだ。
func (br *BatchRunner) reportFailure(item domain.PromptItem, err error) {
	var statusErr *forge.StatusError
	if errors.As(err, &statusErr) {
		br.setStatus(fmt.Sprintf("%s failed: HTTP %d — %s",
			item.Slot.DisplayName(), statusErr.Code, statusErr.Body))
		slog.Warn("ワーカーがエラーを返したのだ",
			"slot", item.Slot.ID(), "code", statusErr.Code, "body", statusErr.Body)
		return
	}
	slog.Warn("スロットの生成に失敗したのでスキップするのだ", "slot", item.Slot.ID(), "error", err)
}

func (br *BatchRunner) setStatus(status string) {
	br.mu.Lock()
	br.status = status
	br.mu.Unlock()
}

func (br *BatchRunner) appendAsset(asset domain.RenderedAsset) {
	br.mu.Lock()
	br.assets = append(br.assets, asset)
	br.mu.Unlock()
}
