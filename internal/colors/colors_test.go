package colors

import "testing"

func TestHexRoundTrip(t *testing.T) {
	r, g, b := HexToRGB("#8BA4E8")
	if r != 0x8B || g != 0xA4 || b != 0xE8 {
		t.Fatalf("HexToRGB() = %d,%d,%d", r, g, b)
	}
	if got := RGBToHex(r, g, b); got != "#8BA4E8" {
		t.Errorf("RGBToHex() = %s", got)
	}
	if got := RGBToHex(300, -5, 16); got != "#FF0010" {
		t.Errorf("RGBToHex() clamp = %s", got)
	}
	if r, g, b := HexToRGB("nope"); r != 255 || g != 255 || b != 255 {
		t.Errorf("HexToRGB(invalid) = %d,%d,%d, want white", r, g, b)
	}
}

func TestGenerateGradientEndpoints(t *testing.T) {
	g := GenerateGradient("#000000", "#FFFFFF", 5)
	if len(g) != 5 {
		t.Fatalf("len = %d, want 5", len(g))
	}
	if g[0] != "#000000" || g[4] != "#FFFFFF" {
		t.Errorf("endpoints = %s..%s", g[0], g[4])
	}
	if g[2] != "#808080" {
		t.Errorf("midpoint = %s, want #808080", g[2])
	}
}

func TestFormatTime(t *testing.T) {
	tests := map[float64]string{
		0:      "0:00",
		9.9:    "0:09",
		61:     "1:01",
		3599.5: "59:59",
		-3:     "0:00",
	}
	for in, want := range tests {
		if got := FormatTime(in); got != want {
			t.Errorf("FormatTime(%v) = %q, want %q", in, got, want)
		}
	}
}
