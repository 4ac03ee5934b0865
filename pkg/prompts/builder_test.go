package prompts

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shouni/ebook-prompt-studio/pkg/domain"
)

const testMaxChars = 2048

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder(testMaxChars)

	t.Run("同じ入力からは常に同じプロンプトが得られるのだ", func(t *testing.T) {
		for _, slot := range domain.AllSlots() {
			first := b.Build("A brave turtle", slot)
			second := b.Build("A brave turtle", slot)
			if first != second {
				t.Errorf("スロット %s の出力が揺れているのだ", slot.ID())
			}
		}
	})

	t.Run("全スロットで文字数上限を超えないのだ", func(t *testing.T) {
		premises := []string{
			"",
			"A brave turtle",
			"ずんだ餅を探す小さなロボットの旅",
			strings.Repeat("Very long premise. ", 300),
		}
		for _, premise := range premises {
			for _, slot := range domain.AllSlots() {
				got := b.Build(premise, slot)
				if n := utf8.RuneCountInString(got); n > testMaxChars {
					t.Errorf("スロット %s が上限超過なのだ: %d 文字", slot.ID(), n)
				}
			}
		}
	})

	t.Run("表紙のプロンプトは決まった形で始まるのだ", func(t *testing.T) {
		got := b.Build("A brave turtle", domain.SlotCover)

		wantPrefix := `Illustrated eBook scene for: "A brave turtle".`
		if !strings.HasPrefix(got, wantPrefix) {
			t.Errorf("先頭が違うのだ。期待する先頭: %s\n実際: %s", wantPrefix, got)
		}
		if !strings.Contains(got, "Cover art: iconic moment") {
			t.Error("表紙用の節が含まれていないのだ")
		}
		if utf8.RuneCountInString(got) > testMaxChars {
			t.Error("上限を超えているのだ")
		}
	})
}

func TestBuilder_Truncation(t *testing.T) {
	t.Run("超過時は末尾N文字がそのまま残るのだ", func(t *testing.T) {
		premise := strings.Repeat("長い前提の文章なのだ。", 500)

		full := NewBuilder(1<<20).Build(premise, domain.SlotEpilogue)
		if utf8.RuneCountInString(full) <= testMaxChars {
			t.Fatal("テストの前提が崩れているのだ（未切り詰めが上限以下なのだ）")
		}

		got := NewBuilder(testMaxChars).Build(premise, domain.SlotEpilogue)

		runes := []rune(full)
		want := string(runes[len(runes)-testMaxChars:])
		if got != want {
			t.Error("末尾保持の切り詰め結果が一致しないのだ")
		}
		if !strings.HasSuffix(got, "Natural proportions.") {
			t.Error("末尾のスタイル指示が失われているのだ")
		}
	})

	t.Run("上限以下ならそのまま返るのだ", func(t *testing.T) {
		got := trimToMaxChars("  hello world  ", 100)
		if got != "hello world" {
			t.Errorf("前後の空白だけが落ちるはずなのだ: %q", got)
		}
	})

	t.Run("切り詰めはバイトではなく文字で数えるのだ", func(t *testing.T) {
		got := trimToMaxChars("あいうえお", 3)
		if got != "うえお" {
			t.Errorf("期待: うえお, 実際: %s", got)
		}
	})
}

func TestBuilder_BuildAll(t *testing.T) {
	b := NewBuilder(testMaxChars)

	t.Run("再生成は同じ順序で同じリストを返すのだ", func(t *testing.T) {
		first := b.BuildAll("A brave turtle")
		second := b.BuildAll("A brave turtle")

		if !reflect.DeepEqual(first, second) {
			t.Error("2回のBuildAllの結果が一致しないのだ")
		}
	})

	t.Run("固定スロット順の10件が得られるのだ", func(t *testing.T) {
		items := b.BuildAll("A brave turtle")

		slots := domain.AllSlots()
		if len(items) != len(slots) {
			t.Fatalf("件数が違うのだ。期待: %d, 実際: %d", len(slots), len(items))
		}
		for i, item := range items {
			if item.Slot != slots[i] {
				t.Errorf("位置 %d のスロットが違うのだ。期待: %s, 実際: %s", i, slots[i].ID(), item.Slot.ID())
			}
			if item.Filename != slots[i].SourceFilename() {
				t.Errorf("ファイル名が違うのだ。期待: %s, 実際: %s", slots[i].SourceFilename(), item.Filename)
			}
		}
	})
}
