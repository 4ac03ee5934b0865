package api

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/shouni/ebook-prompt-studio/internal/builder"
	"github.com/shouni/ebook-prompt-studio/internal/runner"
	"github.com/shouni/ebook-prompt-studio/internal/store"
	"github.com/shouni/ebook-prompt-studio/pkg/domain"
	"github.com/shouni/ebook-prompt-studio/pkg/registry"
)

//go:embed studio.html
var studioPage []byte

// Handler はWeb UI向けのAPIハンドラーなのだ。
// プロンプトリストの現在世代だけをここで保持し、生成状態は BatchRunner が持つのだ。
type Handler struct {
	app   *builder.AppContext
	batch *runner.BatchRunner

	mu    sync.Mutex
	items []domain.PromptItem
}

// NewHandler は起動時点の保存済みプレミスでプロンプトを組み立てた Handler を返すのだ。
func NewHandler(appCtx *builder.AppContext, batch *runner.BatchRunner) *Handler {
	h := &Handler{
		app:   appCtx,
		batch: batch,
	}
	h.rebuildPrompts()
	return h
}

// IndexPage はブラウザ版と同じレイアウトの1ページを返すのだ。
func (h *Handler) IndexPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", studioPage)
}

// GetPrompts は現在のプロンプトリストを返すのだ。
func (h *Handler) GetPrompts(c *gin.Context) {
	h.mu.Lock()
	items := make([]domain.PromptItem, len(h.items))
	copy(items, h.items)
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"prompts": items})
}

// RegeneratePrompts は保存済みプレミスからリストを丸ごと作り直すのだ。
// 個別に編集された文面があっても引き継がないのだ。
func (h *Handler) RegeneratePrompts(c *gin.Context) {
	h.rebuildPrompts()
	h.GetPrompts(c)
}

// GetStatus は実行状態のスナップショットを返すのだ。UIはこれをポーリングするのだ。
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.batch.Snapshot())
}

// StartGenerate はバッチ生成を開始するのだ。実行中なら 409 を返して何もしないのだ。
func (h *Handler) StartGenerate(c *gin.Context) {
	if h.batch.Busy() {
		c.JSON(http.StatusConflict, gin.H{"error": "a batch run is already in progress"})
		return
	}

	h.mu.Lock()
	items := make([]domain.PromptItem, len(h.items))
	copy(items, h.items)
	h.mu.Unlock()

	// 実行はバックグラウンドで続き、進捗は /api/status で観測するのだ。
	// リクエストの寿命と切り離すため context はここで新しく作るのだ。
	// Run 自身も busy ガードを持つので、すれ違いの二重起動はそちらで弾かれるのだ。
	go func() {
		_, _ = h.batch.Run(context.Background(), items)
	}()

	c.JSON(http.StatusAccepted, gin.H{"started": true, "slots": len(items)})
}

// GetAsset はレジストリ上の画像バイト列を配信するのだ。
// スロットIDの検証はここが境界で、不正なIDは 404 なのだ。
func (h *Handler) GetAsset(c *gin.Context) {
	slot, ok := domain.ParseSlot(c.Param("slot"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown slot"})
		return
	}

	kind := c.Param("kind")
	if kind != registry.KindPreview && kind != registry.KindDownload {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown asset kind"})
		return
	}

	handle, ok := h.app.Registry.Get(registry.Key(slot, kind))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not generated"})
		return
	}

	filename := slot.SourceFilename()
	if kind == registry.KindDownload {
		filename = slot.DownloadFilename()
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Data(http.StatusOK, handle.MimeType, handle.Data)
}

// GetSettings は保存済み設定を返すのだ。トークンは有無だけを伝えるのだ。
func (h *Handler) GetSettings(c *gin.Context) {
	endpoint := h.app.Store.Load(store.KeyWorkerURL)
	if strings.TrimSpace(endpoint) == "" {
		endpoint = h.app.Config.Endpoint
	}

	c.JSON(http.StatusOK, gin.H{
		"premise":     h.app.Store.Load(store.KeyPremise),
		"worker_url":  endpoint,
		"api_key_set": strings.TrimSpace(h.app.Store.Load(store.KeyAPIKey)) != "",
	})
}

type settingsRequest struct {
	Premise   *string `json:"premise"`
	WorkerURL *string `json:"worker_url"`
	APIKey    *string `json:"api_key"`
}

// SaveSettings は渡されたキーだけを保存するのだ。保存はベストエフォートなのだ。
func (h *Handler) SaveSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Premise != nil {
		h.app.Store.Save(store.KeyPremise, *req.Premise)
	}
	if req.WorkerURL != nil {
		h.app.Store.Save(store.KeyWorkerURL, *req.WorkerURL)
	}
	if req.APIKey != nil {
		h.app.Store.Save(store.KeyAPIKey, *req.APIKey)
	}

	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// ClearAPIKey は保存済みトークンを破棄するのだ。
func (h *Handler) ClearAPIKey(c *gin.Context) {
	h.app.Store.Remove(store.KeyAPIKey)
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// rebuildPrompts は保存済みプレミスからプロンプトリストを作り直すのだ。
func (h *Handler) rebuildPrompts() {
	premise := h.app.Store.Load(store.KeyPremise)
	items := h.app.Prompts.BuildAll(premise)

	h.mu.Lock()
	h.items = items
	h.mu.Unlock()
}
