package lyrics

// InstrumentalText is shown in place of lyrics for instrumental tracks.
const InstrumentalText = "Instrumental"

// Document is one lyrics record as served by lrclib.
type Document struct {
	ID           int64   `json:"id"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  string  `json:"plainLyrics,omitempty"`
	SyncedLyrics string  `json:"syncedLyrics,omitempty"`
}

func (d *Document) HasSynced() bool {
	return d != nil && d.SyncedLyrics != ""
}

func (d *Document) HasLyrics() bool {
	return d != nil && (d.SyncedLyrics != "" || d.PlainLyrics != "")
}

// Lines derives the timed line sequence. callers keep the result; it is not cached here.
func (d *Document) Lines() []Line {
	if d == nil {
		return []Line{}
	}
	return ParseTimedLines(d.SyncedLyrics)
}

// DisplayText is the static, non-scrolling rendering of the document.
func (d *Document) DisplayText() string {
	switch {
	case d == nil:
		return ""
	case d.SyncedLyrics != "":
		return StripTimestamps(d.SyncedLyrics)
	case d.PlainLyrics != "":
		return d.PlainLyrics
	}
	return InstrumentalText
}

// wireDocument mirrors the lrclib json, where lyric fields may be null
// and search results carry the title under "name".
type wireDocument struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  *string `json:"plainLyrics"`
	SyncedLyrics *string `json:"syncedLyrics"`
}

func (w wireDocument) document() Document {
	doc := Document{
		ID:           w.ID,
		TrackName:    w.TrackName,
		ArtistName:   w.ArtistName,
		AlbumName:    w.AlbumName,
		Duration:     w.Duration,
		Instrumental: w.Instrumental,
	}
	if doc.TrackName == "" {
		doc.TrackName = w.Name
	}
	if doc.Duration < 0 {
		doc.Duration = 0
	}
	if w.PlainLyrics != nil {
		doc.PlainLyrics = *w.PlainLyrics
	}
	if w.SyncedLyrics != nil {
		doc.SyncedLyrics = *w.SyncedLyrics
	}
	return doc
}
