package colors

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// GenerateGradient returns steps colors from start to end inclusive.
// distant colors are eased so the midpoint does not turn muddy too early.
func GenerateGradient(startHex string, endHex string, steps int) []string {
	if steps < 2 {
		steps = 2
	}

	sr, sg, sb := HexToRGB(startHex)
	er, eg, eb := HexToRGB(endHex)
	ease := distance(sr, sg, sb, er, eg, eb) > 200

	gradient := make([]string, steps)
	for i := range gradient {
		t := float64(i) / float64(steps-1)
		if ease {
			t = smoothStep(t)
		}
		gradient[i] = RGBToHex(lerp(sr, er, t), lerp(sg, eg, t), lerp(sb, eb, t))
	}
	return gradient
}

// Blend mixes two colors; t=0 yields a, t=1 yields b.
func Blend(a string, b string, t float64) string {
	ar, ag, ab := HexToRGB(a)
	br, bg, bb := HexToRGB(b)
	return RGBToHex(lerp(ar, br, t), lerp(ag, bg, t), lerp(ab, bb, t))
}

// Scale multiplies each channel by factor.
func Scale(hex string, factor float64) string {
	r, g, b := HexToRGB(hex)
	return RGBToHex(int(float64(r)*factor), int(float64(g)*factor), int(float64(b)*factor))
}

func RGBToHex(r int, g int, b int) string {
	return fmt.Sprintf("#%02X%02X%02X", clamp(r), clamp(g), clamp(b))
}

// HexToRGB parses "#RRGGBB". malformed input yields white.
func HexToRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 255, 255, 255
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}

func RenderGradientText(text string, gradient []string, bold bool) string {
	if text == "" {
		return ""
	}
	if len(gradient) == 0 {
		return text
	}

	runes := []rune(text)
	var out strings.Builder
	for i, r := range runes {
		idx := 0
		if len(runes) > 1 {
			idx = i * (len(gradient) - 1) / (len(runes) - 1)
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradient[idx])).Bold(bold)
		out.WriteString(style.Render(string(r)))
	}
	return out.String()
}

// FormatTime renders seconds as m:ss.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int64(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func lerp(a, b int, t float64) int {
	return int(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func smoothStep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func distance(r1, g1, b1, r2, g2, b2 int) float64 {
	dr, dg, db := float64(r1-r2), float64(g1-g2), float64(b1-b2)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func clamp(v int) int {
	return max(0, min(255, v))
}
