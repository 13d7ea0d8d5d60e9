// Package subtitles post-processes SRT files produced by the speech
// recognizer.
//
// Dedup parses a file into timed cues, folds adjacent cues that repeat the
// same text within a small gap into one cue, and rewrites the file with
// contiguous indices. The transform is lossy but order-preserving, and running
// it on its own output changes nothing.
package subtitles
