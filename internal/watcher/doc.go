// Package watcher runs the check cycle: scrape, normalize, diff against the
// persisted identity set, notify, persist.
//
// A run moves through Idle, Scraped, Diffed, Notifying and Persisted before
// returning to Idle. Nothing is written until the batch is known to be
// non-empty, and the identity set only ever grows by union, so a failed or
// partial scrape never causes a tournament to be reported twice.
package watcher
