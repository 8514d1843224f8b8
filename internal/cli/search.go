package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/venue-slots/internal/aggregate"
	"github.com/pfrederiksen/venue-slots/internal/filter"
	"github.com/spf13/cobra"
)

var (
	flagCity          string
	flagVenue         string
	flagDate          string
	flagFrom          string
	flagTo            string
	flagDates         string
	flagNextDays      int
	flagGuests        int
	flagNeighborhoods []string

	flagGroupBy string
	flagOrder   string
	flagFlat    bool
	flagSelect  string
)

// addFilterFlags registers the search panel flags shared by search, watch and announce
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagCity, "city", "nyc", "City to search: nyc or london")
	cmd.Flags().StringVar(&flagVenue, "venue", "", "Single venue: a venue key (e.g. swingers_nyc) or backend venue name")
	cmd.Flags().StringVar(&flagDate, "date", "", "Single day: YYYY-MM-DD, today or tomorrow")
	cmd.Flags().StringVar(&flagFrom, "from", "", "Range start (YYYY-MM-DD); needs --to")
	cmd.Flags().StringVar(&flagTo, "to", "", "Range end (YYYY-MM-DD); needs --from")
	cmd.Flags().StringVar(&flagDates, "dates", "", `Date range in words: "Mar 1-15", "next 7 days", "2025-03-01..2025-03-07"`)
	cmd.Flags().IntVar(&flagNextDays, "next-days", 0, "Today and the following N-1 days")
	cmd.Flags().IntVar(&flagGuests, "guests", filter.DefaultGuests, "Number of guests")
	cmd.Flags().StringSliceVar(&flagNeighborhoods, "neighborhood", nil, "Only show venues in these neighborhoods (repeatable)")

	cmd.MarkFlagsMutuallyExclusive("city", "venue")
	cmd.MarkFlagsMutuallyExclusive("date", "dates", "next-days", "from")
	cmd.MarkFlagsMutuallyExclusive("date", "dates", "next-days", "to")
}

// buildFilter turns the filter flags into a backend filter, using the same rules as the search panel
func buildFilter(t time.Time) (filter.Filter, bool, error) {
	b := filter.NewBuilder()

	if flagVenue != "" {
		if loc, err := filter.ParseLocation(flagVenue); err == nil && !loc.IsCity() {
			b.Location = loc
		} else {
			// Unknown keys are sent as the venue name itself
			b.Location = filter.Location(strings.TrimSpace(flagVenue))
		}
	} else {
		loc, err := filter.ParseLocation(flagCity)
		if err != nil {
			return filter.Filter{}, false, err
		}
		b.Location = loc
	}

	b.SetGuests(flagGuests)

	switch {
	case flagDate != "":
		from, to, err := filter.ParseDateRange(flagDate, t)
		if err != nil {
			return filter.Filter{}, false, fmt.Errorf("parsing --date: %w", err)
		}
		b.ApplyRange(from, to)
	case flagDates != "":
		from, to, err := filter.ParseDateRange(flagDates, t)
		if err != nil {
			return filter.Filter{}, false, fmt.Errorf("parsing --dates: %w", err)
		}
		b.ApplyRange(from, to)
	case flagNextDays > 0:
		b.Mode = filter.ModeNextDays
		b.NextDays = flagNextDays
	case flagFrom != "" || flagTo != "":
		b.Mode = filter.ModeRange
		var err error
		if b.RangeFrom, err = parseDay(flagFrom, t); err != nil {
			return filter.Filter{}, false, fmt.Errorf("parsing --from: %w", err)
		}
		if b.RangeTo, err = parseDay(flagTo, t); err != nil {
			return filter.Filter{}, false, fmt.Errorf("parsing --to: %w", err)
		}
	}

	f, multiVenue := b.Build(t)
	return f, multiVenue, nil
}

// parseDay parses one range endpoint; an empty value stays unset
func parseDay(value string, t time.Time) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	day, _, err := filter.ParseDateRange(value, t)
	return day, err
}

// viewOptions validates --group-by and --order. Without --order, a multi-venue search lists
// dates newest first and a single venue lists them oldest first.
func viewOptions(multiVenue bool) (aggregate.Options, error) {
	opts := aggregate.Options{DateOrder: aggregate.Asc}
	if multiVenue {
		opts.DateOrder = aggregate.Desc
	}

	switch strings.ToLower(flagGroupBy) {
	case "", "venue":
		opts.Primary = aggregate.ByVenue
	case "date":
		opts.Primary = aggregate.ByDate
	default:
		return opts, fmt.Errorf("invalid --group-by: %s (must be 'venue' or 'date')", flagGroupBy)
	}

	switch strings.ToLower(flagOrder) {
	case "":
	case "asc":
		opts.DateOrder = aggregate.Asc
	case "desc":
		opts.DateOrder = aggregate.Desc
	default:
		return opts, fmt.Errorf("invalid --order: %s (must be 'asc' or 'desc')", flagOrder)
	}
	return opts, nil
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search available slots",
		Long: `Search the slots the backend has collected.

Results are grouped by venue (or by date with --group-by date). Use --flat for a
single table, or --select to show one venue's dates in detail.`,
		Example: `  venue-slots search --city london --guests 4 --dates "next 7 days"
  venue-slots search --venue swingers_nyc --date tomorrow --format json
  venue-slots search --city nyc --neighborhood Midtown --format ics > slots.ics`,
		Args: cobra.NoArgs,
		RunE: runSearch,
	}

	addFilterFlags(cmd)
	cmd.Flags().StringVar(&flagGroupBy, "group-by", "venue", "Group results by venue or date")
	cmd.Flags().StringVar(&flagOrder, "order", "", "Date order: asc or desc (default desc for a city, asc for one venue)")
	cmd.Flags().BoolVar(&flagFlat, "flat", false, "Print one table sorted by date, venue and time")
	cmd.Flags().StringVar(&flagSelect, "select", "", "Show the detail view of one venue")
	cmd.MarkFlagsMutuallyExclusive("flat", "select")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	t := now()
	f, multiVenue, err := buildFilter(t)
	if err != nil {
		return err
	}
	opts, err := viewOptions(multiVenue)
	if err != nil {
		return err
	}

	if flagVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Searching %s\n", flagAPIBase)
		fmt.Fprintf(cmd.ErrOrStderr(), "Filter: %s\n", f)
	}

	ctrl := newController(newClient(), cmd.ErrOrStderr())
	ctrl.SetNeighborhoods(flagNeighborhoods)
	if err := ctrl.Search(commandContext(cmd), f, multiVenue); err != nil {
		return fmt.Errorf("searching slots: %w", err)
	}

	result := &SearchResult{
		CheckedAt:  t.UTC(),
		Filter:     f,
		MultiVenue: multiVenue,
		Primary:    opts.Primary,
	}
	visible := ctrl.Visible()
	result.TotalCount = len(visible)

	switch {
	case flagSelect != "":
		ctrl.SelectVenue(flagSelect)
		result.Venue = ctrl.VenueSlots()
		result.TotalCount = result.Venue.SlotCount()
	case flagFlat:
		result.Slots = aggregate.SortFlat(visible, opts.DateOrder)
	default:
		result.Groups = ctrl.Groups(opts)
	}

	return WriteSearch(cmd.OutOrStdout(), result, format, flagVerbose, t)
}
