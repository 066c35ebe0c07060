// Package storage persists the seen-tournament identity set and the CSV batch
// artifact of the last scrape.
//
// Both files live in a single data directory (by default
// $XDG_DATA_HOME/padel-events). The identity set is a JSON array of
// [club, date, time, name] arrays, rewritten atomically on every run so an
// interrupted run leaves the last fully written set in place.
package storage
