package storage

import (
	"bytes"
	"crypto/md5"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
)

const (
	placeholderWidth  = 640
	placeholderHeight = 360
)

// PlaceholderJPEG renders a flat-color stand-in thumbnail for videos
// whose frame grab never materialized. The tint is derived from the
// prompt so cards stay visually distinct in the feed.
func PlaceholderJPEG(prompt string) ([]byte, error) {
	sum := md5.Sum([]byte(prompt))
	fill := color.RGBA{
		R: sum[0]/2 + 0x20,
		G: sum[1]/2 + 0x20,
		B: sum[2]/2 + 0x30,
		A: 0xff,
	}

	img := image.NewRGBA(image.Rect(0, 0, placeholderWidth, placeholderHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
