package engine

import (
	"sort"

	"karolbroda.com/lyricsync/internal/lyrics"
)

// Window is the active line with its neighbours. Index is -1 and Current nil
// when the position precedes the first line.
type Window struct {
	Index   int
	Prev    *lyrics.Line
	Current *lyrics.Line
	Next    *lyrics.Line
}

// ResolveCurrentLine finds the last line whose offset is at or before position.
// lines must be ordered by non-decreasing offset. positions past the end
// resolve to the last line.
func ResolveCurrentLine(lines []lyrics.Line, position float64) Window {
	if len(lines) == 0 {
		return Window{Index: -1}
	}
	return windowAt(lines, searchIndex(lines, position))
}

func searchIndex(lines []lyrics.Line, position float64) int {
	return sort.Search(len(lines), func(i int) bool {
		return lines[i].Offset > position
	}) - 1
}

func windowAt(lines []lyrics.Line, idx int) Window {
	w := Window{Index: idx}
	if idx >= 0 {
		w.Current = &lines[idx]
	}
	if idx > 0 {
		w.Prev = &lines[idx-1]
	}
	if idx+1 < len(lines) {
		w.Next = &lines[idx+1]
	}
	return w
}
