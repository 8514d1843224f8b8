// Package storage provides JSON-based persistence for slot snapshots.
//
// A snapshot records the slots one search returned, so a later run of the same search
// can report only what is new. Each distinct filter gets its own file under the data
// directory (snapshot_<hash>.json); the unfiltered search uses snapshot.json. The default
// location is ~/.local/share/venue-slots/.
package storage
