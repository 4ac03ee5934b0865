package forge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shouni/ebook-prompt-studio/pkg/domain"
)

// ワーカーへ渡す固定の生成パラメータです。
const (
	modelName = "flux"
	styleName = "animated3d"
	stepCount = 8
)

// fallbackErrorBody はエラーボディが読めなかったときの既定メッセージです。
const fallbackErrorBody = "Request failed"

// StatusError は 2xx 以外のHTTP応答を表します。スロットはスキップされますが、
// ステータス表示のためにコードとボディを保持します。
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d — %s", e.Code, e.Body)
}

// Client は画像生成ワーカーのHTTPクライアントです。
// リトライは行いません。失敗の扱いは呼び出し側の責務です。
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// NewClient は新しい Client を生成します。timeout が 0 の場合は無期限です。
func NewClient(endpoint, token string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		token:      token,
	}
}

// Generate はプロンプト1本をワーカーへPOSTし、成功時は応答ボディ
// （JPEGのバイト列）をそのまま返します。
func (c *Client) Generate(ctx context.Context, prompt string) ([]byte, error) {
	payload := domain.GenerateRequest{
		Prompt: prompt,
		Model:  modelName,
		Style:  styleName,
		Steps:  stepCount,
		Seed:   nil,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("forge: リクエストの組み立てに失敗しました: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("forge: リクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// 認証はオプションです。空白だけのトークンは未設定として扱います。
	if token := strings.TrimSpace(c.token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forge: リクエストの送信に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{Code: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("forge: 応答ボディの読み取りに失敗しました: %w", err)
	}
	return data, nil
}

// readErrorBody はエラー応答のテキストを読み取ります。読めない・空の場合は
// 既定メッセージを返します。
func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(r)
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return fallbackErrorBody
	}
	return string(data)
}
