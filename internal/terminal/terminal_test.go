package terminal

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestDetectKitty(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"on", true},
		{"TRUE", true},
		{"0", false},
		{"", false},
		{"maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(KittyEnv, tt.value)
			t.Setenv("TERM_PROGRAM", "")
			caps := Detect()
			if caps.KittyGraphics != tt.want {
				t.Errorf("KittyGraphics = %v, want %v", caps.KittyGraphics, tt.want)
			}
			if tt.want && caps.TermProgram != "kitty" {
				t.Errorf("TermProgram = %q, want kitty", caps.TermProgram)
			}
		})
	}
}

func TestEncodeKitty(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 6), B: 120, A: 255})
		}
	}

	out := EncodeKitty(img, 8, 4)
	if !strings.HasPrefix(out, "\x1b_Ga=T,f=100,c=8,r=4,") {
		t.Errorf("EncodeKitty() prefix = %q", out[:min(len(out), 30)])
	}
	if !strings.HasSuffix(out, "\x1b\\") {
		t.Error("EncodeKitty() is not terminated")
	}
}

func TestEncodeKittyEmpty(t *testing.T) {
	if got := EncodeKitty(nil, 8, 4); got != "" {
		t.Errorf("EncodeKitty(nil) = %q, want empty", got)
	}
	if got := EncodeKitty(image.NewRGBA(image.Rect(0, 0, 0, 0)), 8, 4); got != "" {
		t.Errorf("EncodeKitty(empty) = %q, want empty", got)
	}
}

func TestFitBox(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		maxW, maxH int
		wantW      int
		wantH      int
	}{
		{"square into wide", 100, 100, 120, 80, 80, 80},
		{"wide into square", 200, 100, 100, 100, 100, 50},
		{"tiny floor", 1000, 10, 50, 50, 50, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitBox(tt.w, tt.h, tt.maxW, tt.maxH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("fitBox() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestReset(t *testing.T) {
	var buf bytes.Buffer
	Reset(&buf)
	if !strings.HasPrefix(buf.String(), "\033[?25h") {
		t.Errorf("Reset() = %q", buf.String())
	}
}
