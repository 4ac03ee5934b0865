package builder

import (
	"fmt"
	"os"
	"strings"

	"github.com/shouni/ebook-prompt-studio/internal/runner"
	"github.com/shouni/ebook-prompt-studio/internal/store"
	"github.com/shouni/ebook-prompt-studio/pkg/forge"
)

// BuildBatchRunner は、順次生成を担当するオーケストレーターを構築します。
// クライアントは実行ごとのファクトリとして渡します。サーバー稼働中にUIで
// 保存し直されたワーカーURLやトークンを、再起動なしで次の実行から使うためです。
func BuildBatchRunner(appCtx *AppContext) *runner.BatchRunner {
	// フラグで与えられた接続設定は、この時点でストアへ反映しておくのだ
	appCtx.ResolveEndpoint()
	appCtx.ResolveAPIKey()

	clientFor := func() runner.ForgeClient {
		return forge.NewClient(
			appCtx.CurrentEndpoint(),
			appCtx.CurrentAPIKey(),
			appCtx.Options.HTTPTimeout,
		)
	}

	return runner.NewBatchRunner(
		clientFor,
		appCtx.Registry,
		appCtx.Config.OutputWidth,
		appCtx.Config.OutputHeight,
		appCtx.Options.RequestInterval,
	)
}

// BuildPublishRunner は、アセット保存を担当する Runner を構築します。
func BuildPublishRunner(appCtx *AppContext) runner.PublishRunner {
	return runner.NewAssetPublishRunner(appCtx.Registry, appCtx.Options.OutputDir)
}

// ResolvePremise はプレミスを決定するのだ。優先順位は
// フラグ > ファイル > 保存済み設定。フラグやファイルで与えられた値は
// 次回のために保存するのだ（ブラウザ版が入力のたびに保存するのと同じなのだ）。
func (a *AppContext) ResolvePremise() (string, error) {
	if premise := strings.TrimSpace(a.Options.Premise); premise != "" {
		a.Store.Save(store.KeyPremise, premise)
		return premise, nil
	}

	if a.Options.PremiseFile != "" {
		data, err := os.ReadFile(a.Options.PremiseFile)
		if err != nil {
			return "", fmt.Errorf("プレミスファイルの読み込みに失敗したのだ: %w", err)
		}
		premise := strings.TrimSpace(string(data))
		if premise != "" {
			a.Store.Save(store.KeyPremise, premise)
			return premise, nil
		}
	}

	return a.Store.Load(store.KeyPremise), nil
}

// ResolveEndpoint はワーカーURLを決定するのだ。優先順位は
// フラグ > 保存済み設定 > 環境変数/デフォルト。空白の保存値は未設定扱いなのだ。
// フラグの値は保存されるので、以降は CurrentEndpoint からも同じ値が見えるのだ。
func (a *AppContext) ResolveEndpoint() string {
	if endpoint := strings.TrimSpace(a.Options.Endpoint); endpoint != "" {
		a.Store.Save(store.KeyWorkerURL, endpoint)
		return endpoint
	}
	return a.CurrentEndpoint()
}

// ResolveAPIKey は認証トークンを決定するのだ。未設定なら空文字で、
// その場合 Authorization ヘッダーは付かないのだ。
func (a *AppContext) ResolveAPIKey() string {
	if key := strings.TrimSpace(a.Options.APIKey); key != "" {
		a.Store.Save(store.KeyAPIKey, key)
		return key
	}
	return a.CurrentAPIKey()
}

// CurrentEndpoint は、いま保存されているワーカーURLを読み直して返すのだ。
// ブラウザ版が生成クリックのたびにフィールドを読むのと同じ意味を持つのだ。
func (a *AppContext) CurrentEndpoint() string {
	if saved := strings.TrimSpace(a.Store.Load(store.KeyWorkerURL)); saved != "" {
		return saved
	}
	return a.Config.Endpoint
}

// CurrentAPIKey は、いま保存されている認証トークンを読み直して返すのだ。
func (a *AppContext) CurrentAPIKey() string {
	if saved := a.Store.Load(store.KeyAPIKey); saved != "" {
		return saved
	}
	return a.Config.APIKey
}
