// Package preflight reports whether the tools and models a transcription
// would use are in place, without running a job.
//
// The check_assets method and the CLI "check" command both call CheckAssets
// with a resolved configuration; a failing check never aborts the report.
package preflight
