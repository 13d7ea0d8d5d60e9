package subtitles

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"gpu-runtime/internal/services"
)

const timingSeparator = "-->"

// cue is one timed subtitle entry. key is the comparison form of text.
type cue struct {
	startMS int64
	endMS   int64
	text    string
	key     string
}

// parseCues splits normalized SRT content into cues. Blocks whose second line
// carries no timing separator are skipped, as are cues without text; a timing
// line with a malformed timestamp fails the whole parse.
func parseCues(content string) ([]cue, error) {
	lower := cases.Lower(language.Und)
	var cues []cue
	for _, block := range strings.Split(content, "\n\n") {
		lines := strings.Split(block, "\n")
		if len(lines) < 2 || !strings.Contains(lines[1], timingSeparator) {
			continue
		}
		parts := strings.Split(lines[1], timingSeparator)
		start, err := parseTimestamp(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, err
		}
		end, err := parseTimestamp(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, err
		}
		text := strings.TrimSpace(strings.Join(lines[2:], "\n"))
		if text == "" {
			continue
		}
		cues = append(cues, cue{
			startMS: start,
			endMS:   end,
			text:    text,
			key:     lower.String(strings.Join(strings.Fields(text), " ")),
		})
	}
	return cues, nil
}

// renderCues re-indexes from 1 and returns the file body with exactly one
// trailing newline.
func renderCues(cues []cue) string {
	var b strings.Builder
	for i, c := range cues {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\n')
		b.WriteString(formatTimestamp(c.startMS))
		b.WriteString(" --> ")
		b.WriteString(formatTimestamp(c.endMS))
		b.WriteByte('\n')
		b.WriteString(c.text)
		b.WriteString("\n\n")
	}
	return strings.TrimRightFunc(b.String(), isSpace) + "\n"
}

// parseTimestamp converts HH:MM:SS,mmm into milliseconds. Every component must
// be a non-empty run of ASCII digits.
func parseTimestamp(value string) (int64, error) {
	clock, millisText, ok := strings.Cut(value, ",")
	if !ok || strings.Contains(millisText, ",") {
		return 0, invalidTimestamp(value)
	}
	hms := strings.Split(clock, ":")
	if len(hms) != 3 {
		return 0, invalidTimestamp(value)
	}
	var fields [4]int64
	for i, part := range []string{hms[0], hms[1], hms[2], millisText} {
		n, err := parseDigits(part)
		if err != nil {
			return 0, invalidTimestamp(value)
		}
		fields[i] = n
	}
	hours, minutes, seconds, millis := fields[0], fields[1], fields[2], fields[3]
	return (hours*3600+minutes*60+seconds)*1000 + millis, nil
}

func parseDigits(part string) (int64, error) {
	if part == "" {
		return 0, strconv.ErrSyntax
	}
	for _, r := range part {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.ParseInt(part, 10, 64)
}

func invalidTimestamp(value string) error {
	return services.Mark(services.ErrSubtitleParse, fmt.Errorf("invalid timestamp %q", value))
}

// formatTimestamp renders milliseconds as HH:MM:SS,mmm; hours may exceed 99.
func formatTimestamp(ms int64) string {
	hours := ms / 3_600_000
	ms %= 3_600_000
	minutes := ms / 60_000
	ms %= 60_000
	seconds := ms / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
