// Package app provides the Bubbletea application framework for the
// NV-Stats watch mode. It defines the event types, root model, and widget
// interface that form the Elm-architecture skeleton around the collector
// runner.
package app

import "time"

// DataUpdateEvent carries new data from a collector goroutine back into
// the bubbletea update loop. Receivers type-assert Data based on Source.
type DataUpdateEvent struct {
	Source    string      // collector name ("gpustats", "hostmetrics")
	Data      interface{} // type-asserted by the receiver
	Err       error       // non-nil if the collection failed
	Timestamp time.Time
}

// TickEvent is sent periodically by the render ticker to trigger UI
// refresh and stale-data checks.
type TickEvent struct {
	Time time.Time
}

// ThemeChangeEvent switches the active color theme.
type ThemeChangeEvent struct {
	Theme string
}
