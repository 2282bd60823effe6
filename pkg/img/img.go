package img

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"math"

	"github.com/sunshineplan/imgconv"
)

// Downscale shrinks a JPEG so it holds at most maxMPXS megapixels. Images
// already small enough are returned unchanged.
func Downscale(imageData []byte, maxMPXS float64) ([]byte, error) {
	img, err := jpeg.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("error decoding JPEG: %v", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	currentMPXS := float64(width*height) / 1000000.0

	if currentMPXS <= maxMPXS {
		return imageData, nil
	}

	// Megapixels scale with the square of the side ratio.
	ratio := math.Sqrt(maxMPXS / currentMPXS)
	newWidth := max(1, int(float64(width)*ratio))
	newHeight := max(1, int(float64(height)*ratio))

	resized := imgconv.Resize(img, &imgconv.ResizeOption{
		Width:  newWidth,
		Height: newHeight,
	})

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, nil); err != nil {
		return nil, fmt.Errorf("error encoding JPEG: %v", err)
	}

	return buf.Bytes(), nil
}
