// Package main hosts the gpu-runtime entrypoint and command graph.
//
// Invoked without a subcommand, gpu-runtime serves line-delimited JSON
// requests on stdin and writes responses and progress events to stdout. Logs
// go to stderr, or to the file named in the configuration, and never to
// stdout.
//
// The remaining subcommands are operator conveniences: "check" prints the
// asset preflight table, "devices" lists graphics adapters, and "config"
// scaffolds and validates the configuration file.
package main
