// Package cli implements the padel-events command line.
//
// The root command runs one check (or a loop with --watch) against the
// 4PADEL tournament listing and reports the tournaments that appeared since
// the previous run. Subcommands export the current listing, print the last
// batch, manage the configuration file and seal secrets.
package cli
