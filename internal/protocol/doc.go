// Package protocol serves line-delimited JSON requests over a pair of byte
// streams, normally the process's stdin and stdout.
//
// Each input line is one Request. The Dispatcher answers every decoded line
// with exactly one Response and may precede it with any number of Event
// lines emitted by the handler. Every line is flushed as soon as it is
// written, and the next request is read only after the previous response is
// out, so callers can pair responses to requests by order as well as by id.
//
// Failures to decode a line or to find a method are reported in-band. A read
// or write failure on the streams themselves ends Serve with an error.
package protocol
