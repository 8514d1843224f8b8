// Package slot provides the availability slot record returned by the scraping backend.
//
// Every field of a Slot is optional because the backend is an untyped JSON source. Records are
// decoded and normalized once, at the fetch boundary, so that rendering and aggregation code can
// rely on trimmed strings, canonical ISO dates, and a typed guest count.
package slot
