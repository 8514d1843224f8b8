package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/venue-slots/internal/venue"
	"github.com/spf13/cobra"
)

var (
	flagVenueCity string
	flagBrands    bool
)

func newVenuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "venues",
		Short: "List known venues and their neighborhoods",
		Args:  cobra.NoArgs,
		RunE:  runVenues,
	}
	cmd.Flags().StringVar(&flagVenueCity, "city", "", "Only list venues in this city (NYC or London)")
	cmd.Flags().StringSliceVar(&flagNeighborhoods, "neighborhood", nil, "Only list venues in these neighborhoods")
	cmd.Flags().BoolVar(&flagBrands, "brands", false, "List venue brands (base names) instead of locations")
	cmd.MarkFlagsMutuallyExclusive("brands", "city")
	cmd.MarkFlagsMutuallyExclusive("brands", "neighborhood")
	return cmd
}

func runVenues(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	if flagBrands {
		return writeBrands(cmd.OutOrStdout(), format)
	}

	city := strings.TrimSpace(flagVenueCity)
	if strings.EqualFold(city, "new york") {
		city = "NYC"
	}

	var list []venue.Metadata
	for _, md := range venue.All(city) {
		if len(flagNeighborhoods) > 0 && !containsFold(flagNeighborhoods, md.Neighborhood) {
			continue
		}
		list = append(list, md)
	}

	w := cmd.OutOrStdout()
	switch format {
	case FormatJSON:
		if list == nil {
			list = []venue.Metadata{}
		}
		return writeJSON(w, list)
	case FormatText:
	default:
		return fmt.Errorf("format %s is not supported by venues", format)
	}

	if len(list) == 0 {
		fmt.Fprintln(w, "No venues found.")
		return nil
	}
	for _, md := range list {
		where := md.City
		if md.Neighborhood != "" {
			where = md.Neighborhood + ", " + md.City
		}
		fmt.Fprintf(w, "%s (%s)\n", md.Name, where)
		if flagVerbose {
			if md.Description != "" {
				fmt.Fprintf(w, "  %s\n", md.Description)
			}
			if len(md.Activities) > 0 {
				fmt.Fprintf(w, "  Activities: %s\n", strings.Join(md.Activities, ", "))
			}
		}
	}
	fmt.Fprintf(w, "\nTotal: %d venue%s\n", len(list), plural(len(list)))
	return nil
}

// writeBrands lists each venue brand once, whatever its number of locations
func writeBrands(w io.Writer, format OutputFormat) error {
	names := venue.BaseNames()
	switch format {
	case FormatJSON:
		return writeJSON(w, names)
	case FormatText:
	default:
		return fmt.Errorf("format %s is not supported by venues", format)
	}

	for _, n := range names {
		fmt.Fprintln(w, n)
	}
	fmt.Fprintf(w, "\nTotal: %d brand%s\n", len(names), plural(len(names)))
	return nil
}

func containsFold(list []string, want string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), want) {
			return true
		}
	}
	return false
}
