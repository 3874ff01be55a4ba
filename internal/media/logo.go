package media

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	maxLogoSide = 512
	webpQuality = 85
)

var ErrUnsupportedImage = errors.New("unsupported image format")

// NormalizeLogo decodifica png/jpeg/webp, reduz para no máximo 512px no
// maior lado e reencoda em webp. Toda logo armazenada fica uniforme.
func NormalizeLogo(r io.Reader) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	img = downscale(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxLogoSide && h <= maxLogoSide {
		return img
	}

	if w >= h {
		h = h * maxLogoSide / w
		w = maxLogoSide
	} else {
		w = w * maxLogoSide / h
		h = maxLogoSide
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func init() {
	// registra o decoder webp para image.Decode
	image.RegisterFormat("webp", "RIFF????WEBP", webp.Decode, webp.DecodeConfig)
}
