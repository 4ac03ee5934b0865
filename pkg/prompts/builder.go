package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/ebook-prompt-studio/pkg/domain"
)

const (
	// baseFormat はプレミスをそのまま埋め込む導入文です。
	baseFormat = `Illustrated eBook scene for: "%s". Create a clean, family-friendly, storybook-cinematic image. Landscape orientation. Compose for a 16:9 wide cinematic frame (safe to crop). No text, no logos, no watermark.`

	// cropSafeClause は中央16:9クロップに耐える構図の指示です。
	cropSafeClause = "Keep key subjects centered with generous margins; avoid important details near edges (crop-safe 16:9)."

	// styleClause は特定スタジオ名を避けた3Dアニメ映画調の画風指定です。
	styleClause = "High-quality 3D animated family film look, soft global illumination, warm cinematic lighting, detailed materials, subtle subsurface scattering, clean shapes, crisp focus on subject, gentle depth of field, ultra clean render."

	closingClause = "Natural proportions."
)

// slotClauses はスロットごとのシーン指示です。Slotは閉じた列挙型なので
// ここは全スロットを網羅し、デフォルト分岐は持ちません。
var slotClauses = map[domain.Slot]string{
	domain.SlotCover:    "Cover art: iconic moment that communicates the theme, clear focal subject, inviting warm lighting.",
	domain.SlotPrologue: "Prologue scene: establish setting and mood, gentle intrigue, readable composition.",
	domain.SlotChapter1: "Chapter 1 scene: introduce protagonist doing a simple action that sets the story in motion.",
	domain.SlotChapter2: "Chapter 2 scene: friendly interaction or small challenge, upbeat tone.",
	domain.SlotChapter3: "Chapter 3 scene: discovery moment—visual clue, mild suspense without fear.",
	domain.SlotChapter4: "Chapter 4 scene: obstacle moment—show problem visually, still kid-safe.",
	domain.SlotChapter5: "Chapter 5 scene: teamwork or learning moment—progress and hope.",
	domain.SlotChapter6: "Chapter 6 scene: resolution moment—celebration or calm victory.",
	domain.SlotEpilogue: "Epilogue scene: peaceful wrap-up, cozy closing image.",
	domain.SlotCredits:  "Credits background: simple pleasing backdrop with space for overlay later (but generate with NO TEXT).",
}

// Builder は同一の入力から常に同一のプロンプトを組み立てます。
// maxChars は生成サービス側が課す文字数上限です。
type Builder struct {
	maxChars int
}

// NewBuilder は新しい Builder を生成します。
func NewBuilder(maxChars int) *Builder {
	return &Builder{maxChars: maxChars}
}

// Build は (プレミス, スロット) から最終プロンプト1本を組み立てます。
// 乱数や隠れた状態は使いません。
func (b *Builder) Build(premise string, slot domain.Slot) string {
	base := fmt.Sprintf(baseFormat, premise)

	full := strings.Join([]string{
		base,
		cropSafeClause,
		slotClauses[slot],
		styleClause,
		closingClause,
	}, " ")

	return trimToMaxChars(full, b.maxChars)
}

// BuildAll は固定スロット順の PromptItem リストを丸ごと作り直して返します。
// 以前のリストへの個別編集は引き継ぎません。
func (b *Builder) BuildAll(premise string) []domain.PromptItem {
	slots := domain.AllSlots()
	items := make([]domain.PromptItem, 0, len(slots))
	for _, s := range slots {
		items = append(items, domain.PromptItem{
			Slot:     s,
			Filename: s.SourceFilename(),
			Prompt:   b.Build(premise, s),
		})
	}
	return items
}

// trimToMaxChars は文字数（byteではなくrune）で上限を適用します。
// スタイルと安全指示は末尾にあるため、超過時は末尾側を残します。
func trimToMaxChars(s string, maxChars int) string {
	t := strings.TrimSpace(s)
	runes := []rune(t)
	if len(runes) <= maxChars {
		return t
	}
	return string(runes[len(runes)-maxChars:])
}
