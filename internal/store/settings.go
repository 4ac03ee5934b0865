package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// 永続化キーの定義なのだ。ブラウザ版の localStorage キーをそのまま使うのだ。
const (
	KeyPremise   = "ebook_prompt_studio_premise"
	KeyWorkerURL = "ebook_prompt_studio_worker_url"
	KeyAPIKey    = "ebook_prompt_studio_api_key"
)

const settingsFilename = "settings.json"

// Store は文字列キー/値のベストエフォート永続化の契約なのだ。
// 読めなければ空文字、書けなければ黙って諦める。エラーで呼び出し側を
// 煩わせないのがこの層の仕事なのだ。
type Store interface {
	Load(key string) string
	Save(key, value string)
	Remove(key string)
}

// FileStore は1つのJSONファイルに全キーをまとめて保存する実装なのだ。
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore は baseDir 配下に設定ファイルを置く FileStore を生成するのだ。
func NewFileStore(baseDir string) *FileStore {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		slog.Debug("設定ディレクトリを作成できなかったのだ", "dir", baseDir, "error", err)
	}
	return &FileStore{
		path: filepath.Join(baseDir, settingsFilename),
	}
}

// Load はキーの値を返すのだ。ファイルがない・壊れている場合は空文字なのだ。
func (fs *FileStore) Load(key string) string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.readAll()[key]
}

// Save はキーの値を書き込むのだ。失敗してもエラーは返さないのだ。
func (fs *FileStore) Save(key, value string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values := fs.readAll()
	values[key] = value
	fs.writeAll(values)
}

// Remove はキーを削除するのだ。失敗してもエラーは返さないのだ。
func (fs *FileStore) Remove(key string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values := fs.readAll()
	if _, ok := values[key]; !ok {
		return
	}
	delete(values, key)
	fs.writeAll(values)
}

func (fs *FileStore) readAll() map[string]string {
	values := make(map[string]string)
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return values
	}
	if err := json.Unmarshal(data, &values); err != nil {
		slog.Debug("設定ファイルの解析に失敗したのだ", "path", fs.path, "error", err)
		return make(map[string]string)
	}
	return values
}

// writeAll は一時ファイル経由で原子的に書き換えるのだ。
func (fs *FileStore) writeAll(values map[string]string) {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		slog.Debug("設定のシリアライズに失敗したのだ", "error", err)
		return
	}

	tempPath := fs.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		slog.Debug("設定の一時保存に失敗したのだ", "path", tempPath, "error", err)
		return
	}
	if err := os.Rename(tempPath, fs.path); err != nil {
		slog.Debug("設定ファイルの置き換えに失敗したのだ", "path", fs.path, "error", err)
		_ = os.Remove(tempPath)
	}
}
