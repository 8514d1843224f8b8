// Package api is the HTTP client for the scraping backend.
//
// The backend exposes a small JSON API under a base URL such as http://host:8010/api:
//
//	GET  /data                 stored slots, filtered by city, venue_name, date_from, date_to, guests
//	POST /clear_data           delete every stored slot
//	GET  /status               progress of the current scrape
//	GET  /scraping_durations   how long recent scrapes took, per website
//
// FetchSlots follows a fixed response cascade. A non-2xx status becomes a *StatusError whose
// message is the body's "error" or "message" field, the raw body text, or "<code> <status>",
// in that order. A 2xx response with an empty body is ErrEmptyResponse and one that is not
// JSON is ErrInvalidResponse. A JSON object without a "data" field means zero results.
package api
