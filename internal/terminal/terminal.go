package terminal

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/nfnt/resize"
)

// KittyEnv opts in to inline artwork through the kitty graphics protocol.
const KittyEnv = "LYRICSYNC_KITTY"

const kittyChunk = 4096

type Capabilities struct {
	KittyGraphics bool
	Interactive   bool
	TermProgram   string
}

// Detect inspects the environment and stdout.
func Detect() *Capabilities {
	caps := &Capabilities{
		TermProgram: os.Getenv("TERM_PROGRAM"),
		Interactive: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}

	switch strings.ToLower(os.Getenv(KittyEnv)) {
	case "1", "true", "yes", "on":
		caps.KittyGraphics = true
		if caps.TermProgram == "" {
			caps.TermProgram = "kitty"
		}
	}

	return caps
}

// Reset restores the cursor, attributes and main screen after an unclean exit.
func Reset(w io.Writer) {
	for _, seq := range []string{
		"\033[?25h",
		"\033[0m",
		"\033[?1049l",
		"\033[?1000l",
		"\033[?1002l",
		"\033[?1003l",
		"\033[?1006l",
	} {
		io.WriteString(w, seq)
	}
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}

// EncodeKitty returns the escape sequence that places img in a cols x rows
// cell box. it returns "" when the image cannot be encoded.
func EncodeKitty(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return ""
	}

	// assume roughly 10x20 pixel cells
	w, h := fitBox(b.Dx(), b.Dy(), cols*10, rows*20)
	scaled := resize.Resize(uint(w), uint(h), img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return ""
	}
	payload := base64.StdEncoding.EncodeToString(buf.Bytes())

	var out strings.Builder
	for start := 0; start < len(payload); start += kittyChunk {
		end := min(start+kittyChunk, len(payload))
		more := 0
		if end < len(payload) {
			more = 1
		}

		if start == 0 {
			fmt.Fprintf(&out, "\x1b_Ga=T,f=100,c=%d,r=%d,m=%d;%s\x1b\\", cols, rows, more, payload[start:end])
		} else {
			fmt.Fprintf(&out, "\x1b_Gm=%d;%s\x1b\\", more, payload[start:end])
		}
	}
	return out.String()
}

// fitBox scales w x h to fit maxW x maxH keeping the aspect ratio.
func fitBox(w, h, maxW, maxH int) (int, int) {
	aspect := float64(w) / float64(h)
	if aspect > float64(maxW)/float64(maxH) {
		maxH = int(float64(maxW) / aspect)
	} else {
		maxW = int(float64(maxH) * aspect)
	}
	return max(maxW, 10), max(maxH, 10)
}
