package transform

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// 変換失敗の分類です。呼び出し側は errors.Is で判別できます。
var (
	// ErrDecode は元画像がデコードできない、または寸法が不正な場合です。
	ErrDecode = errors.New("transform: 元画像をデコードできません")
	// ErrEncode は出力画像のエンコードが失敗した場合です。
	ErrEncode = errors.New("transform: 出力画像をエンコードできません")
)

// minDimension を下回る寸法の画像は不正として扱います。
const minDimension = 2

// WideCropRect は (iw, ih) の元画像に対する、outW:outH 比を保つ中央クロップ矩形を返します。
//   - 元画像の方が横長なら幅を削り、水平方向に中央寄せします。
//   - それ以外（縦長または同比）なら高さを削り、垂直方向に中央寄せします。
//
// 返る矩形は必ず元画像の範囲内に収まります。
func WideCropRect(iw, ih, outW, outH int) image.Rectangle {
	targetRatio := float64(outW) / float64(outH)
	w := float64(iw)
	h := float64(ih)

	if w/h > targetRatio {
		newW := h * targetRatio
		x := (w - newW) / 2
		return image.Rect(round(x), 0, round(x+newW), ih)
	}

	newH := w / targetRatio
	y := (h - newH) / 2
	return image.Rect(0, round(y), iw, round(y+newH))
}

// CropToWide は元画像のバイト列をデコードし、中央クロップで outW×outH に
// 変換した PNG のバイト列を返します。いずれかの工程が失敗した時点で
// 分類付きエラーを返し、フォールバック判断は呼び出し側に委ねます。
func CropToWide(src []byte, outW, outH int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	iw := bounds.Dx()
	ih := bounds.Dy()
	if iw < minDimension || ih < minDimension {
		return nil, fmt.Errorf("%w: 寸法が不正です (%dx%d)", ErrDecode, iw, ih)
	}

	rect := WideCropRect(iw, ih, outW, outH)
	cropped := imaging.Crop(img, rect)
	resized := imaging.Resize(cropped, outW, outH, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: 出力が空です", ErrEncode)
	}

	return buf.Bytes(), nil
}

func round(v float64) int {
	return int(math.Round(v))
}
