// Package aggregate groups and sorts availability slots for display.
//
// A single aggregator handles both venue-first and date-first grouping, and both date
// directions: the venue detail view lists dates ascending, while the multi-date dashboard
// lists them descending. Aggregation is a pure function of its input.
package aggregate
