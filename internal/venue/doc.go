// Package venue provides static metadata for the venues the scraping backend covers.
//
// Metadata (neighborhood, description, card image, activities) is a read-only lookup table
// keyed by the venue name the backend reports. Lookups tolerate spacing, case, and
// "(City - Location)" naming differences.
package venue
