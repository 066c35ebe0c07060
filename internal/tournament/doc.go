// Package tournament provides types and functions for managing 4PADEL tournament listings.
//
// The tournament package handles record representation, identity, the localized
// datetime phrase parser used by the card extractor, and change detection through
// identity-set diffing. A tournament's identity is the (club, date, time, name)
// tuple; identities are persisted across runs so that each listing is reported once.
package tournament
