package track

import "testing"

func TestIsSameTrack(t *testing.T) {
	a := &Snapshot{Name: "X", Artist: "Y", Position: 10}
	tests := []struct {
		name string
		a, b *Snapshot
		want bool
	}{
		{"same name and artist", a, &Snapshot{Name: "X", Artist: "Y", Position: 90}, true},
		{"different artist", a, &Snapshot{Name: "X", Artist: "Z"}, false},
		{"different album ignored", a, &Snapshot{Name: "X", Artist: "Y", Album: "Live"}, true},
		{"nil vs value", nil, a, false},
		{"nil vs nil", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.IsSameTrack(tt.b); got != tt.want {
				t.Errorf("IsSameTrack() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	if (&Snapshot{Name: "X"}).IsValid() {
		t.Error("snapshot without artist reported valid")
	}
	if (&Snapshot{Name: "X", Artist: "Y", Position: -1}).IsValid() {
		t.Error("negative position reported valid")
	}
	if !(&Snapshot{Name: "X", Artist: "Y", Duration: 200}).IsValid() {
		t.Error("complete snapshot reported invalid")
	}
}

func TestArtworkTerm(t *testing.T) {
	s := &Snapshot{Name: "X", Artist: "Y", Album: "Z"}
	if got := s.ArtworkTerm(); got != "Y Z" {
		t.Errorf("ArtworkTerm() = %q, want %q", got, "Y Z")
	}
	s.Album = ""
	if got := s.ArtworkTerm(); got != "Y" {
		t.Errorf("ArtworkTerm() = %q, want %q", got, "Y")
	}
}

func TestParseState(t *testing.T) {
	tests := map[string]State{
		"playing": StatePlaying,
		"Playing": StatePlaying,
		"paused":  StatePaused,
		"Stopped": StateStopped,
		"":        StateStopped,
	}
	for in, want := range tests {
		if got := ParseState(in); got != want {
			t.Errorf("ParseState(%q) = %q, want %q", in, got, want)
		}
	}
}
