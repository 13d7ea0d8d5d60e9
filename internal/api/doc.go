// Package api binds the runtime's methods to a protocol.Dispatcher.
//
// Methods:
//
//	ping          adapter summary, or CPU fallback
//	list_devices  every adapter the prober reports
//	smoke_test    fails when no adapter is available
//	transcribe    runs a transcription batch, streaming "log" events
//	check_assets  reports whether tools and models are in place
//
// Handlers decode their own params; decode failures surface as the
// response's error message.
package api
