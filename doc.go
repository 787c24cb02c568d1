// Package twidge provides keyboard-driven terminal widgets that run inline in
// a terminal session.
//
// A widget consumes events and renders itself as text:
//
//   - Echo and EchoBytes show every key or raw byte received
//   - EditString edits a single line of text
//   - Form edits a set of labelled lines
//   - SearchList filters a list of options by a typed query
//   - SelectList picks options by their numbers
//   - Close, Abort, Framed and Labelled wrap another widget
//
// An App reads raw bytes from the terminal, decodes them into events with a
// Decoder, dispatches them to the root widget and redraws the widget below
// the cursor after each change:
//
//	app, err := twidge.NewApp()
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//
//	name, err := twidge.Run(ctx, app, twidge.NewEditString("Hello World!"))
//
// The terminal is in raw mode only while Run executes and is restored on every
// exit path. One App runs one widget at a time; running widgets on the same
// terminal through several Apps at once is undefined behaviour.
//
// Set TWIDGE_DEBUG to a file path to log decoded events and run state there.
package twidge
