package transform

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"testing"

	"github.com/disintegration/imaging"
)

// encodeTestJPEG は指定サイズの単色JPEGをメモリ上で作るヘルパーなのだ。
func encodeTestJPEG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 120, G: 180, B: 90, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("テスト画像のエンコードに失敗したのだ: %v", err)
	}
	return buf.Bytes()
}

func TestWideCropRect(t *testing.T) {
	t.Run("横長の元画像は幅を削って水平中央に寄せるのだ", func(t *testing.T) {
		rect := WideCropRect(4000, 2000, 1600, 900)

		want := image.Rect(500, 0, 3500, 2000)
		if rect != want {
			t.Errorf("矩形が違うのだ。期待: %v, 実際: %v", want, rect)
		}
	})

	t.Run("縦長・同比の元画像は高さを削って垂直中央に寄せるのだ", func(t *testing.T) {
		rect := WideCropRect(1600, 1600, 1600, 900)

		want := image.Rect(0, 350, 1600, 1250)
		if rect != want {
			t.Errorf("矩形が違うのだ。期待: %v, 実際: %v", want, rect)
		}
	})

	t.Run("矩形は常に元画像に収まり目標比を保つのだ", func(t *testing.T) {
		cases := []struct{ iw, ih int }{
			{4000, 2000},
			{3200, 1800},
			{1600, 1600},
			{5000, 900},
			{999, 501},
			{640, 1280},
			{2, 2},
		}
		const targetRatio = 1600.0 / 900.0

		for _, c := range cases {
			rect := WideCropRect(c.iw, c.ih, 1600, 900)

			if rect.Min.X < 0 || rect.Min.Y < 0 {
				t.Errorf("%dx%d: 原点が負なのだ: %v", c.iw, c.ih, rect)
			}
			if rect.Max.X > c.iw || rect.Max.Y > c.ih {
				t.Errorf("%dx%d: 矩形が元画像をはみ出しているのだ: %v", c.iw, c.ih, rect)
			}

			ratio := float64(rect.Dx()) / float64(rect.Dy())
			// 整数ピクセルへの丸めぶんの誤差だけ許容するのだ
			tolerance := targetRatio * 2.0 / float64(rect.Dy())
			if math.Abs(ratio-targetRatio) > tolerance {
				t.Errorf("%dx%d: 比率がずれているのだ。期待: %.4f, 実際: %.4f", c.iw, c.ih, targetRatio, ratio)
			}
		}
	})
}

func TestCropToWide(t *testing.T) {
	t.Run("JPEGを16:9のPNGへ変換できるのだ", func(t *testing.T) {
		src := encodeTestJPEG(t, 400, 200)

		out, err := CropToWide(src, 160, 90)
		if err != nil {
			t.Fatalf("変換に失敗したのだ: %v", err)
		}

		// PNGシグネチャの確認なのだ
		if !bytes.HasPrefix(out, []byte("\x89PNG\r\n\x1a\n")) {
			t.Error("出力がPNGではないのだ")
		}

		decoded, err := imaging.Decode(bytes.NewReader(out))
		if err != nil {
			t.Fatalf("出力のデコードに失敗したのだ: %v", err)
		}
		bounds := decoded.Bounds()
		if bounds.Dx() != 160 || bounds.Dy() != 90 {
			t.Errorf("出力サイズが違うのだ。期待: 160x90, 実際: %dx%d", bounds.Dx(), bounds.Dy())
		}
	})

	t.Run("デコードできないバイト列はDecodeErrorなのだ", func(t *testing.T) {
		_, err := CropToWide([]byte("this is not an image"), 160, 90)
		if !errors.Is(err, ErrDecode) {
			t.Errorf("ErrDecodeを期待したのだ。実際: %v", err)
		}
	})

	t.Run("寸法が2未満の画像はDecodeErrorなのだ", func(t *testing.T) {
		src := encodeTestJPEG(t, 1, 1)

		_, err := CropToWide(src, 160, 90)
		if !errors.Is(err, ErrDecode) {
			t.Errorf("ErrDecodeを期待したのだ。実際: %v", err)
		}
	})
}
