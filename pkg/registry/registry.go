package registry

import (
	"github.com/patrickmn/go-cache"

	"github.com/shouni/ebook-prompt-studio/pkg/domain"
)

// ハンドルの種別です。プレビューは元JPEG、ダウンロードは16:9 PNG
// （変換失敗時は元バイト列）を指します。
const (
	KindPreview  = "preview"
	KindDownload = "download"
)

// Handle は生成画像のバイト列とMIMEタイプの組です。
type Handle struct {
	Data     []byte
	MimeType string
}

// Registry は1回のバッチ実行に紐づく画像ハンドルの保管庫です。
// 実行開始時に Reset で前回分をまとめて解放することで、
// ハンドルがページ生存期間ぶん溜まり続けることを防ぎます。
type Registry struct {
	store *cache.Cache
}

// New は新しい Registry を生成します。有効期限は設けず、
// 解放は Reset による明示的な一括破棄のみです。
func New() *Registry {
	return &Registry{
		store: cache.New(cache.NoExpiration, 0),
	}
}

// Put はハンドルを登録し、参照用のキーを返します。
// 同じスロット・種別への再登録は上書きです。
func (r *Registry) Put(slot domain.Slot, kind string, h Handle) string {
	key := Key(slot, kind)
	r.store.Set(key, h, cache.NoExpiration)
	return key
}

// Get はキーに対応するハンドルを返します。
func (r *Registry) Get(key string) (Handle, bool) {
	v, ok := r.store.Get(key)
	if !ok {
		return Handle{}, false
	}
	h, ok := v.(Handle)
	return h, ok
}

// Reset は保持している全ハンドルを破棄します。
func (r *Registry) Reset() {
	r.store.Flush()
}

// Key はスロットと種別から参照キーを組み立てます。
func Key(slot domain.Slot, kind string) string {
	return slot.ID() + "/" + kind
}
