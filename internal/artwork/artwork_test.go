package artwork

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"karolbroda.com/lyricsync/internal/track"
)

func TestITunesUpscalesArtwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("term") != "Y Z" || q.Get("media") != "music" || q.Get("entity") != "album" || q.Get("limit") != "1" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"resultCount":1,"results":[{"artworkUrl100":"https://is1.mzstatic.com/image/thumb/abc/100x100bb.jpg"}]}`))
	}))
	defer server.Close()

	p := &ITunes{BaseURL: server.URL, Client: server.Client()}
	got, err := p.Lookup(context.Background(), "Y Z")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if want := "https://is1.mzstatic.com/image/thumb/abc/600x600bb.jpg"; got != want {
		t.Errorf("Lookup() = %q, want %q", got, want)
	}
}

func TestDeezerCoverXL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "Y Z" || r.URL.Query().Get("limit") != "1" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"data":[{"album":{"cover_xl":"https://e-cdns-images.dzcdn.net/xl.jpg"}}]}`))
	}))
	defer server.Close()

	got, err := (&Deezer{BaseURL: server.URL, Client: server.Client()}).Lookup(context.Background(), "Y Z")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got != "https://e-cdns-images.dzcdn.net/xl.jpg" {
		t.Errorf("Lookup() = %q", got)
	}
}

func TestProvidersMiss(t *testing.T) {
	itunes := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resultCount":0,"results":[]}`))
	}))
	defer itunes.Close()
	deezer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer deezer.Close()

	if _, err := (&ITunes{BaseURL: itunes.URL}).Lookup(context.Background(), "x"); !errors.Is(err, ErrNoArtwork) {
		t.Errorf("ITunes.Lookup() error = %v, want ErrNoArtwork", err)
	}
	if _, err := (&Deezer{BaseURL: deezer.URL}).Lookup(context.Background(), "x"); !errors.Is(err, ErrNoArtwork) {
		t.Errorf("Deezer.Lookup() error = %v, want ErrNoArtwork", err)
	}
}

type stubProvider struct {
	name  string
	url   string
	err   error
	calls atomic.Int32
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Lookup(ctx context.Context, term string) (string, error) {
	s.calls.Add(1)
	return s.url, s.err
}

func TestClientFallback(t *testing.T) {
	tests := []struct {
		name        string
		first       *stubProvider
		second      *stubProvider
		want        string
		secondCalls int32
	}{
		{
			name:        "first hit",
			first:       &stubProvider{name: "a", url: "https://a/600x600.jpg"},
			second:      &stubProvider{name: "b", url: "https://b/xl.jpg"},
			want:        "https://a/600x600.jpg",
			secondCalls: 0,
		},
		{
			name:        "first miss second hit",
			first:       &stubProvider{name: "a", err: ErrNoArtwork},
			second:      &stubProvider{name: "b", url: "https://b/xl.jpg"},
			want:        "https://b/xl.jpg",
			secondCalls: 1,
		},
		{
			name:        "first failure second hit",
			first:       &stubProvider{name: "a", err: errors.New("status 503")},
			second:      &stubProvider{name: "b", url: "https://b/xl.jpg"},
			want:        "https://b/xl.jpg",
			secondCalls: 1,
		},
		{
			name:        "both miss",
			first:       &stubProvider{name: "a", err: ErrNoArtwork},
			second:      &stubProvider{name: "b", err: errors.New("status 500")},
			want:        "",
			secondCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewClient(tt.first, tt.second).Lookup(context.Background(), "Y Z")
			if got != tt.want {
				t.Errorf("Lookup() = %q, want %q", got, tt.want)
			}
			if n := tt.second.calls.Load(); n != tt.secondCalls {
				t.Errorf("second provider called %d times, want %d", n, tt.secondCalls)
			}
		})
	}
}

func TestClientDoesNotRemember(t *testing.T) {
	p := &stubProvider{name: "a", url: "https://a/x.jpg"}
	c := NewClient(p)
	c.Lookup(context.Background(), "same")
	c.Lookup(context.Background(), "same")
	if n := p.calls.Load(); n != 2 {
		t.Errorf("provider called %d times, want 2", n)
	}
}

func TestForSnapshot(t *testing.T) {
	p := &stubProvider{name: "a", url: "https://a/looked-up.jpg"}
	c := NewClient(p)

	got := c.ForSnapshot(context.Background(), &track.Snapshot{Name: "X", Artist: "Y", ArtworkURL: "https://i.scdn.co/image/own"})
	if got != "https://i.scdn.co/image/own" || p.calls.Load() != 0 {
		t.Errorf("ForSnapshot() = %q with %d lookups, want snapshot url and none", got, p.calls.Load())
	}

	got = c.ForSnapshot(context.Background(), &track.Snapshot{Name: "X", Artist: "Y", Album: "Z"})
	if got != "https://a/looked-up.jpg" {
		t.Errorf("ForSnapshot() = %q", got)
	}
}

func checker(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 200, G: 40, B: 40, A: 255}
			if (x/4+y/4)%2 == 0 {
				c = color.RGBA{R: 30, G: 90, B: 210, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRenderHalfBlock(t *testing.T) {
	rows := RenderHalfBlock(checker(32, 32), 8, 4)
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	for i, row := range rows {
		if row == "" {
			t.Errorf("row %d is empty", i)
		}
	}

	if RenderHalfBlock(nil, 8, 4) != nil {
		t.Error("nil image rendered")
	}
	if RenderHalfBlock(checker(8, 8), 2, 4) != nil {
		t.Error("too narrow target rendered")
	}
}

func TestFetchImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, checker(16, 16)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := FetchImage(context.Background(), nil, "file://"+path)
	if err != nil {
		t.Fatalf("FetchImage() error = %v", err)
	}
	if img.Bounds().Dx() != 16 {
		t.Errorf("width = %d, want 16", img.Bounds().Dx())
	}
}

func TestFetchImageHTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := FetchImage(context.Background(), server.Client(), server.URL+"/x.jpg"); err == nil {
		t.Error("FetchImage() error = nil for 404")
	}
}

func TestExtractPaletteNil(t *testing.T) {
	p := ExtractPalette(nil)
	if p.Primary != DefaultPalette().Primary || len(p.Gradient) != gradientSteps {
		t.Errorf("ExtractPalette(nil) = %+v, want default", p)
	}
}
