// Package discovery lets game servers running on the same host find each
// other and lets players list them.
//
// Every announcing instance serves a small JSON description of itself over
// HTTP on the first free port of a range, then probes the other ports of the
// range and delivers what it finds on the Entries channel. Search performs a
// single probe pass without announcing anything, which is what a player
// looking for a table needs.
package discovery
