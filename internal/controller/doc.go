// Package controller owns the presentation state of a slot search.
//
// A Controller runs one fetch per search and keeps the resulting slot list, the
// filter that produced it, the multi-venue flag, the drill-down selection, and the
// neighborhood filter. Fetch and clear failures stop here: they become error toasts on
// the injected queue and the previous slot list is left as it was.
//
// Searches may overlap. The most recently started search is the only one allowed to
// update state; starting a new search cancels the request of the previous one.
package controller
