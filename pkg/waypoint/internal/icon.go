package internal

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const backChevronSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<path d="M15.5 3.5 L7 12 L15.5 20.5" fill="none" stroke="{{tint}}" stroke-width="2.5" stroke-linecap="round" stroke-linejoin="round"/>
</svg>`

var icons = NewIconCache()

// BackChevron rasterises the back affordance at size x size pixels in the
// given tint. Results are cached.
func BackChevron(tint color.Color, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("back chevron: invalid size %d", size)
	}
	hex := colorHex(tint)
	key := fmt.Sprintf("chevron:%s:%d", hex, size)
	if img := icons.Get(key); img != nil {
		return img, nil
	}

	svg := strings.ReplaceAll(backChevronSVG, "{{tint}}", hex)
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("back chevron: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	dasher := rasterx.NewDasher(size, size, scanner)
	icon.Draw(dasher, 1.0)

	icons.Set(key, img)
	return img, nil
}

func colorHex(c color.Color) string {
	if c == nil {
		c = GetTheme().TintColor
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
}
