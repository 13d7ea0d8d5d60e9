package subtitles

import (
	"errors"
	"testing"

	"gpu-runtime/internal/services"
)

func TestParseTimestamp(t *testing.T) {
	cases := map[string]int64{
		"00:00:00,000": 0,
		"00:00:01,500": 1500,
		"01:02:03,004": 3723004,
		"123:00:00,000": 442800000,
	}
	for input, want := range cases {
		got, err := parseTimestamp(input)
		if err != nil {
			t.Fatalf("parseTimestamp(%q) error: %v", input, err)
		}
		if got != want {
			t.Fatalf("parseTimestamp(%q) = %d, want %d", input, got, want)
		}
		if back := formatTimestamp(got); back != input {
			t.Fatalf("formatTimestamp(%d) = %q, want %q", got, back, input)
		}
	}
}

func TestParseTimestampRejectsMalformed(t *testing.T) {
	for _, input := range []string{
		"",
		"00:00:01.000",
		"00:01,000",
		"00:00:01,",
		"aa:00:01,000",
		"00:00:01,000,1",
		"-1:00:01,000",
		"+1:00:01,000",
	} {
		_, err := parseTimestamp(input)
		if err == nil {
			t.Fatalf("parseTimestamp(%q) expected error", input)
		}
		if !errors.Is(err, services.ErrSubtitleParse) {
			t.Fatalf("parseTimestamp(%q) error %v not marked as subtitle parse", input, err)
		}
	}
}

func TestParseCuesSkipsBlocksWithoutTiming(t *testing.T) {
	content := "header only\n\n1\nnot timing\ntext\n\n2\n00:00:01,000 --> 00:00:02,000\n   \n\n3\n00:00:03,000 --> 00:00:04,000\nKept line\nsecond\n"
	cues, err := parseCues(content)
	if err != nil {
		t.Fatalf("parseCues: %v", err)
	}
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d: %+v", len(cues), cues)
	}
	if cues[0].text != "Kept line\nsecond" {
		t.Fatalf("unexpected text %q", cues[0].text)
	}
	if cues[0].key != "kept line second" {
		t.Fatalf("unexpected key %q", cues[0].key)
	}
}

func TestRenderCuesReindexes(t *testing.T) {
	got := renderCues([]cue{
		{startMS: 1000, endMS: 2000, text: "A"},
		{startMS: 5000, endMS: 6000, text: "B"},
	})
	want := "1\n00:00:01,000 --> 00:00:02,000\nA\n\n2\n00:00:05,000 --> 00:00:06,000\nB\n"
	if got != want {
		t.Fatalf("renderCues mismatch\nwant: %q\ngot:  %q", want, got)
	}
}
