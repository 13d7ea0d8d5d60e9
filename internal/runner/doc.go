// Package runner launches the external tools a transcription job depends on.
//
// An Invocation either runs for real, with the child's stdout and stderr
// discarded, or in dry-run mode where the rendered command line is reported
// through the event sink instead of being executed.
package runner
