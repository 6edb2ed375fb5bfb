package artwork

import (
	"image"
	"math"
	"sort"

	"github.com/EdlinOrg/prominentcolor"

	"karolbroda.com/lyricsync/internal/colors"
)

const gradientSteps = 20

type Palette struct {
	Primary   string
	Secondary string
	Accent    string
	Dim       string
	Gradient  []string
}

func DefaultPalette() *Palette {
	return &Palette{
		Primary:   "#8BA4E8",
		Secondary: "#E8A4C8",
		Accent:    "#B8A8E8",
		Dim:       "#6272A4",
		Gradient:  colors.GenerateGradient("#8BA4E8", "#E8A4C8", gradientSteps),
	}
}

type swatch struct {
	hex        string
	saturation float64
	brightness float64
}

// ExtractPalette derives display colors from the dominant colors of img.
func ExtractPalette(img image.Image) *Palette {
	if img == nil {
		return DefaultPalette()
	}

	items, err := prominentcolor.KmeansWithAll(5, img, prominentcolor.ArgumentDefault, prominentcolor.DefaultSize, nil)
	if err != nil || len(items) < 3 {
		return DefaultPalette()
	}

	swatches := make([]swatch, 0, len(items))
	for _, it := range items {
		swatches = append(swatches, measure(int(it.Color.R), int(it.Color.G), int(it.Color.B)))
	}

	// vivid, mid-bright colors first
	sort.SliceStable(swatches, func(i, j int) bool {
		return score(swatches[i]) > score(swatches[j])
	})

	primary := liftDark(swatches[0])
	secondary := liftDark(swatches[1])
	accent := liftDark(swatches[2])

	return &Palette{
		Primary:   primary,
		Secondary: secondary,
		Accent:    accent,
		Dim:       colors.Blend(primary, "#44475A", 0.6),
		Gradient:  colors.GenerateGradient(primary, secondary, gradientSteps),
	}
}

func measure(r, g, b int) swatch {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	hi := math.Max(math.Max(rf, gf), bf)
	lo := math.Min(math.Min(rf, gf), bf)

	sat := 0.0
	if hi > 0 {
		sat = (hi - lo) / hi
	}
	return swatch{hex: colors.RGBToHex(r, g, b), saturation: sat, brightness: hi}
}

func score(s swatch) float64 {
	return s.saturation * (1 - math.Abs(s.brightness-0.6))
}

// liftDark brightens colors that would vanish on a dark terminal.
func liftDark(s swatch) string {
	switch {
	case s.brightness == 0:
		return "#808080"
	case s.brightness >= 0.4:
		return s.hex
	}
	return colors.Scale(s.hex, math.Min(0.4/s.brightness, 2.5))
}
