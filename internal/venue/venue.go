package venue

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/venue-slots/internal/format"
	"github.com/pfrederiksen/venue-slots/internal/slot"
)

// DefaultImage is shown for venues without a dedicated card image
const DefaultImage = "sample.webp"

// Metadata describes a venue for display
type Metadata struct {
	Name         string   `json:"name"`
	BaseName     string   `json:"base_name"`
	Location     string   `json:"location,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	Description  string   `json:"description,omitempty"`
	City         string   `json:"city"`
	Image        string   `json:"image,omitempty"`
	Activities   []string `json:"activities,omitempty"`
}

// Lookup finds metadata for a venue name as the backend reports it.
// It tries an exact match, then a whitespace/case-insensitive match, then a match on
// base name plus location (so "Five Iron Golf (FiDi)" finds "Five Iron Golf (NYC - FiDi)").
func Lookup(name string) (Metadata, bool) {
	if name == "" {
		return Metadata{}, false
	}

	if md, exists := catalog[name]; exists {
		return withName(name, md), true
	}

	normalized := normalizeName(name)
	for _, key := range sortedKeys() {
		if normalizeName(key) == normalized {
			return withName(key, catalog[key]), true
		}
	}

	base := format.BaseVenueName(name)
	location := format.LocationFromVenueName(name)
	if base == "" || location == "" {
		return Metadata{}, false
	}
	for _, key := range sortedKeys() {
		md := catalog[key]
		keyLocation := format.LocationFromVenueName(key)
		if keyLocation == "" {
			keyLocation = md.Location
		}
		if normalizeName(format.BaseVenueName(key)) == normalizeName(base) &&
			normalizeName(keyLocation) == normalizeName(location) {
			return withName(key, md), true
		}
	}

	return Metadata{}, false
}

// All returns every catalog entry for a city ("" for all cities), sorted by name
func All(city string) []Metadata {
	result := make([]Metadata, 0, len(catalog))
	for _, key := range sortedKeys() {
		md := catalog[key]
		if city != "" && !strings.EqualFold(md.City, city) {
			continue
		}
		result = append(result, withName(key, md))
	}
	return result
}

// Neighborhoods returns the sorted, unique neighborhoods of a city
func Neighborhoods(city string) []string {
	seen := make(map[string]bool)
	for _, md := range catalog {
		if strings.EqualFold(md.City, city) && md.Neighborhood != "" {
			seen[md.Neighborhood] = true
		}
	}

	neighborhoods := make([]string, 0, len(seen))
	for n := range seen {
		neighborhoods = append(neighborhoods, n)
	}
	sort.Strings(neighborhoods)
	return neighborhoods
}

// VenuesIn returns the sorted venue names in a neighborhood of a city
func VenuesIn(neighborhood, city string) []string {
	var venues []string
	for _, key := range sortedKeys() {
		md := catalog[key]
		if strings.EqualFold(md.Neighborhood, neighborhood) && strings.EqualFold(md.City, city) {
			venues = append(venues, key)
		}
	}
	return venues
}

// BaseNames returns the sorted, unique base names of all venues
func BaseNames() []string {
	seen := make(map[string]bool)
	for _, md := range catalog {
		seen[md.BaseName] = true
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Image returns the card image file for a venue, or DefaultImage
func Image(name string) string {
	if md, ok := Lookup(name); ok && md.Image != "" {
		return md.Image
	}
	if img, ok := images[name]; ok {
		return img
	}
	return DefaultImage
}

// FilterByNeighborhoods keeps the slots whose venue lies in one of the given neighborhoods.
// An empty neighborhood list keeps every slot. Venues without metadata are dropped when
// filtering is active, since their neighborhood is unknown.
func FilterByNeighborhoods(slots []slot.Slot, neighborhoods []string) []slot.Slot {
	if len(neighborhoods) == 0 {
		return slots
	}

	wanted := make(map[string]bool, len(neighborhoods))
	for _, n := range neighborhoods {
		wanted[strings.ToLower(strings.TrimSpace(n))] = true
	}

	filtered := make([]slot.Slot, 0, len(slots))
	for _, s := range slots {
		md, ok := Lookup(s.DisplayName())
		if !ok {
			continue
		}
		if wanted[strings.ToLower(md.Neighborhood)] {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func withName(name string, md Metadata) Metadata {
	md.Name = name
	return md
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// sortedKeys gives lookups a deterministic order over the catalog map
func sortedKeys() []string {
	keys := make([]string, 0, len(catalog))
	for k := range catalog {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
