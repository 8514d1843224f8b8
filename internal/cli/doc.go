// Package cli implements the command-line interface for venue-slots.
//
// The Cobra command tree drives a search controller against the scraping backend:
// searching with city, venue, date and guest filters, rendering the grouped results as
// text, JSON or iCalendar, clearing backend data, reporting scrape status, watching for
// new slots, announcing them on Twitter or Telegram, and serving the state over HTTP.
package cli
