package api

import (
	"github.com/gin-gonic/gin"

	"github.com/shouni/ebook-prompt-studio/internal/builder"
	"github.com/shouni/ebook-prompt-studio/internal/runner"
)

// SetupRouter はWeb UIとAPIのルーティングを構成するのだ。
// 画面はブラウザ版と同じ1ページ構成で、APIはその裏側なのだ。
func SetupRouter(appCtx *builder.AppContext, batch *runner.BatchRunner) *gin.Engine {
	handler := NewHandler(appCtx, batch)

	r := gin.Default()

	// ページ
	r.GET("/", handler.IndexPage)

	// API
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/prompts", handler.GetPrompts)
		apiGroup.POST("/prompts/regenerate", handler.RegeneratePrompts)

		apiGroup.GET("/status", handler.GetStatus)
		apiGroup.POST("/generate", handler.StartGenerate)
		apiGroup.GET("/assets/:slot/:kind", handler.GetAsset)

		settingsGroup := apiGroup.Group("/settings")
		{
			settingsGroup.GET("", handler.GetSettings)
			settingsGroup.POST("", handler.SaveSettings)
			settingsGroup.DELETE("/key", handler.ClearAPIKey)
		}
	}

	return r
}
