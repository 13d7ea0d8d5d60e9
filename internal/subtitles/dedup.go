package subtitles

import (
	"fmt"
	"math"
	"os"
	"strings"
	"unicode"
)

// DedupStats reports what a Dedup pass did.
type DedupStats struct {
	Parsed  int
	Written int
	Skipped bool
}

// Merged returns how many cues were folded into a predecessor.
func (s DedupStats) Merged() int {
	return s.Parsed - s.Written
}

// Dedup rewrites the SRT file at path, merging each cue into the previous one
// when both carry the same normalized text and the gap between them is at most
// mergeGapSec. An unreadable or blank file is left alone and reported as
// skipped.
func Dedup(path string, mergeGapSec float64) (DedupStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DedupStats{Skipped: true}, nil
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	if strings.TrimSpace(content) == "" {
		return DedupStats{Skipped: true}, nil
	}

	cues, err := parseCues(content)
	if err != nil {
		return DedupStats{}, err
	}
	merged := mergeCues(cues, toleranceMS(mergeGapSec))

	if err := os.WriteFile(path, []byte(renderCues(merged)), 0o644); err != nil {
		return DedupStats{}, fmt.Errorf("write deduplicated subtitles: %w", err)
	}
	return DedupStats{Parsed: len(cues), Written: len(merged)}, nil
}

// mergeCues folds cue i into the last kept cue when keys match and cue i
// starts no later than the kept cue's end plus tolerance. The kept cue's start
// and text win; its end becomes the later of the two ends.
func mergeCues(cues []cue, tolerance int64) []cue {
	merged := make([]cue, 0, len(cues))
	for _, c := range cues {
		if n := len(merged); n > 0 {
			prev := &merged[n-1]
			if prev.key == c.key && c.startMS <= prev.endMS+tolerance {
				prev.endMS = max(prev.endMS, c.endMS)
				continue
			}
		}
		merged = append(merged, c)
	}
	return merged
}

func toleranceMS(mergeGapSec float64) int64 {
	return int64(math.Round(mergeGapSec * 1000))
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}
