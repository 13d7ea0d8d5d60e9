// Package transcribe turns a transcribe request into subtitle files.
//
// Params carries the loosely typed request fields. Resolve fills every
// default and locates the model files and tool binaries, producing a Config
// that needs no further optional handling. Service.Run then enumerates the
// media files, skips those whose subtitles are already newer than the source,
// and for the rest extracts a mono 16 kHz track with ffmpeg, runs whisper-cli
// over it and deduplicates the resulting SRT.
package transcribe
