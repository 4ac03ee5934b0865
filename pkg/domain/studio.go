package domain

// PromptItem は1スロット分の画像生成プロンプトです。
// プレミス変更または明示的な再生成のたびにリスト全体が作り直されます。
type PromptItem struct {
	Slot     Slot   `json:"slot"`
	Filename string `json:"filename"`
	Prompt   string `json:"prompt"`
}

// RenderedAsset は1スロットの生成結果です。プレビュー（元JPEG）と
// ダウンロード（16:9 PNG、変換失敗時は元バイト列）の2つのハンドルを持ちます。
// 生成後に変更されることはありません。
type RenderedAsset struct {
	Slot             Slot   `json:"slot"`
	PreviewFilename  string `json:"preview_filename"`
	PreviewKey       string `json:"preview_key"`
	DownloadFilename string `json:"download_filename"`
	DownloadKey      string `json:"download_key"`
}

// RunSnapshot はバッチ実行の観測用スナップショットです。
// オーケストレーターだけが書き込み、プレゼンテーション層はコピーを読むだけです。
type RunSnapshot struct {
	Busy   bool            `json:"busy"`
	Status string          `json:"status"`
	Assets []RenderedAsset `json:"assets"`
}

// GenerateRequest は生成ワーカーへ送るJSONボディです。
// Seed は常にフィールドとして出力され、未指定なら null になります。
type GenerateRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
	Style  string `json:"style"`
	Steps  int    `json:"steps"`
	Seed   *int64 `json:"seed"`
}
