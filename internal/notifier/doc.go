// Package notifier delivers new-tournament notifications.
//
// Channels implement Notifier and receive one tournament at a time. The email
// channel also implements DigestNotifier to send a single summary for a whole
// run. Every channel is best effort: a failure is returned to the caller and
// never retried.
package notifier
