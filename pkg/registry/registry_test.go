package registry

import (
	"testing"

	"github.com/shouni/ebook-prompt-studio/pkg/domain"
)

func TestRegistry(t *testing.T) {
	t.Run("登録したハンドルはキーで引けるのだ", func(t *testing.T) {
		reg := New()

		key := reg.Put(domain.SlotCover, KindPreview, Handle{
			Data:     []byte{1, 2, 3},
			MimeType: "image/jpeg",
		})
		if key != "cover/preview" {
			t.Errorf("キーの形式が違うのだ: %s", key)
		}

		h, ok := reg.Get(key)
		if !ok {
			t.Fatal("ハンドルが見つからないのだ")
		}
		if h.MimeType != "image/jpeg" || len(h.Data) != 3 {
			t.Errorf("ハンドルの中身が違うのだ: %+v", h)
		}
	})

	t.Run("同じスロット・種別への再登録は上書きなのだ", func(t *testing.T) {
		reg := New()

		reg.Put(domain.SlotCover, KindDownload, Handle{Data: []byte("old"), MimeType: "image/png"})
		key := reg.Put(domain.SlotCover, KindDownload, Handle{Data: []byte("new"), MimeType: "image/png"})

		h, _ := reg.Get(key)
		if string(h.Data) != "new" {
			t.Errorf("上書きされていないのだ: %s", h.Data)
		}
	})

	t.Run("Resetで全ハンドルが破棄されるのだ", func(t *testing.T) {
		reg := New()
		key1 := reg.Put(domain.SlotCover, KindPreview, Handle{Data: []byte("a")})
		key2 := reg.Put(domain.SlotCredits, KindDownload, Handle{Data: []byte("b")})

		reg.Reset()

		if _, ok := reg.Get(key1); ok {
			t.Error("Reset後もハンドルが残っているのだ")
		}
		if _, ok := reg.Get(key2); ok {
			t.Error("Reset後もハンドルが残っているのだ")
		}
	})

	t.Run("未知のキーは見つからない扱いなのだ", func(t *testing.T) {
		reg := New()
		if _, ok := reg.Get("cover/unknown"); ok {
			t.Error("存在しないキーが引けてしまったのだ")
		}
	})
}
