package domain

import (
	"encoding/json"
	"fmt"
)

// Slot は電子書籍の挿絵が収まる固定の位置（表紙、各章など）を表します。
// 集合と順序は実行時に変化しません。
type Slot int

const (
	SlotCover Slot = iota
	SlotPrologue
	SlotChapter1
	SlotChapter2
	SlotChapter3
	SlotChapter4
	SlotChapter5
	SlotChapter6
	SlotEpilogue
	SlotCredits
)

// allSlots は出力順そのものです。先頭が表紙、末尾がクレジットです。
var allSlots = []Slot{
	SlotCover,
	SlotPrologue,
	SlotChapter1,
	SlotChapter2,
	SlotChapter3,
	SlotChapter4,
	SlotChapter5,
	SlotChapter6,
	SlotEpilogue,
	SlotCredits,
}

var slotIDs = map[Slot]string{
	SlotCover:    "cover",
	SlotPrologue: "prologue",
	SlotChapter1: "ch1",
	SlotChapter2: "ch2",
	SlotChapter3: "ch3",
	SlotChapter4: "ch4",
	SlotChapter5: "ch5",
	SlotChapter6: "ch6",
	SlotEpilogue: "epilogue",
	SlotCredits:  "credits",
}

var slotNames = map[Slot]string{
	SlotCover:    "Cover",
	SlotPrologue: "Prologue",
	SlotChapter1: "Chapter 1",
	SlotChapter2: "Chapter 2",
	SlotChapter3: "Chapter 3",
	SlotChapter4: "Chapter 4",
	SlotChapter5: "Chapter 5",
	SlotChapter6: "Chapter 6",
	SlotEpilogue: "Epilogue",
	SlotCredits:  "Credits",
}

// AllSlots は固定順のスロット一覧のコピーを返します。
func AllSlots() []Slot {
	out := make([]Slot, len(allSlots))
	copy(out, allSlots)
	return out
}

// ParseSlot は外部入力の文字列IDをSlotに変換します。
// 未知のIDはここで弾くため、内部ロジックにデフォルト分岐は不要です。
func ParseSlot(id string) (Slot, bool) {
	for s, sid := range slotIDs {
		if sid == id {
			return s, true
		}
	}
	return 0, false
}

// ID は "cover" や "ch1" のような正規の識別子を返します。
func (s Slot) ID() string {
	return slotIDs[s]
}

// DisplayName は "Chapter 1" のような表示名を返します。
func (s Slot) DisplayName() string {
	return slotNames[s]
}

// SourceFilename はワーカーが返す元画像（JPEG）のファイル名です。
func (s Slot) SourceFilename() string {
	return s.ID() + ".jpg"
}

// DownloadFilename は16:9変換後の配布画像（PNG）のファイル名です。
func (s Slot) DownloadFilename() string {
	return s.ID() + ".png"
}

func (s Slot) String() string {
	return s.ID()
}

// MarshalJSON はスロットを正規IDの文字列として出力します。
func (s Slot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ID())
}

// UnmarshalJSON は文字列IDからスロットを復元します。未知のIDはエラーです。
func (s *Slot) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	parsed, ok := ParseSlot(id)
	if !ok {
		return fmt.Errorf("未知のスロットIDです: %q", id)
	}
	*s = parsed
	return nil
}
