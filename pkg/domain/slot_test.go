package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAllSlots_FixedOrder(t *testing.T) {
	t.Run("スロットの集合と順序は固定なのだ", func(t *testing.T) {
		want := []string{
			"cover", "prologue", "ch1", "ch2", "ch3", "ch4", "ch5", "ch6", "epilogue", "credits",
		}

		slots := AllSlots()
		if len(slots) != len(want) {
			t.Fatalf("スロット数が違うのだ。期待: %d, 実際: %d", len(want), len(slots))
		}
		for i, s := range slots {
			if s.ID() != want[i] {
				t.Errorf("順序が違うのだ。位置 %d の期待: %s, 実際: %s", i, want[i], s.ID())
			}
		}
	})

	t.Run("AllSlotsはコピーを返すのだ", func(t *testing.T) {
		first := AllSlots()
		first[0] = SlotCredits

		if AllSlots()[0] != SlotCover {
			t.Error("呼び出し側の書き換えが内部の並びに漏れているのだ")
		}
	})
}

func TestSlot_Names(t *testing.T) {
	t.Run("表示名とファイル名が正しく引けるのだ", func(t *testing.T) {
		cases := []struct {
			slot     Slot
			name     string
			source   string
			download string
		}{
			{SlotCover, "Cover", "cover.jpg", "cover.png"},
			{SlotChapter1, "Chapter 1", "ch1.jpg", "ch1.png"},
			{SlotChapter6, "Chapter 6", "ch6.jpg", "ch6.png"},
			{SlotCredits, "Credits", "credits.jpg", "credits.png"},
		}

		for _, c := range cases {
			if c.slot.DisplayName() != c.name {
				t.Errorf("表示名が違うのだ。期待: %s, 実際: %s", c.name, c.slot.DisplayName())
			}
			if c.slot.SourceFilename() != c.source {
				t.Errorf("元ファイル名が違うのだ。期待: %s, 実際: %s", c.source, c.slot.SourceFilename())
			}
			if c.slot.DownloadFilename() != c.download {
				t.Errorf("配布ファイル名が違うのだ。期待: %s, 実際: %s", c.download, c.slot.DownloadFilename())
			}
		}
	})
}

func TestParseSlot(t *testing.T) {
	t.Run("正規IDは全部パースできるのだ", func(t *testing.T) {
		for _, s := range AllSlots() {
			parsed, ok := ParseSlot(s.ID())
			if !ok || parsed != s {
				t.Errorf("'%s' のパースに失敗したのだ", s.ID())
			}
		}
	})

	t.Run("未知のIDは境界で弾かれるのだ", func(t *testing.T) {
		for _, id := range []string{"", "ch7", "Cover", "appendix"} {
			if _, ok := ParseSlot(id); ok {
				t.Errorf("'%s' が通ってしまったのだ", id)
			}
		}
	})
}

func TestPromptItem_JSON(t *testing.T) {
	t.Run("PromptItemが正しくJSON変換できるのだ", func(t *testing.T) {
		item := PromptItem{
			Slot:     SlotChapter3,
			Filename: "ch3.jpg",
			Prompt:   "Chapter 3 scene",
		}

		data, err := json.Marshal(item)
		if err != nil {
			t.Fatalf("Marshal失敗なのだ: %v", err)
		}

		var decoded PromptItem
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal失敗なのだ: %v", err)
		}

		if !reflect.DeepEqual(item, decoded) {
			t.Errorf("変換前後でデータが一致しないのだ。期待: %+v, 実際: %+v", item, decoded)
		}
	})

	t.Run("未知のスロットIDはデコードで失敗するのだ", func(t *testing.T) {
		var item PromptItem
		if err := json.Unmarshal([]byte(`{"slot":"ch9","filename":"x","prompt":"y"}`), &item); err == nil {
			t.Error("未知のIDがエラーにならなかったのだ")
		}
	})
}
