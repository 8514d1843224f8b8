package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pfrederiksen/venue-slots/internal/aggregate"
	"github.com/pfrederiksen/venue-slots/internal/api"
	"github.com/pfrederiksen/venue-slots/internal/calendar"
	"github.com/pfrederiksen/venue-slots/internal/controller"
	"github.com/pfrederiksen/venue-slots/internal/filter"
	"github.com/pfrederiksen/venue-slots/internal/logger"
	"github.com/pfrederiksen/venue-slots/internal/toast"
	"github.com/pfrederiksen/venue-slots/internal/venue"
)

func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) stateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
	}
}

type statsResponse struct {
	controller.Stats
	Metrics map[string]interface{} `json:"metrics"`
}

func (s *Server) statsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, statsResponse{
			Stats:   s.ctrl.Stats(r.Context(), s.status),
			Metrics: logger.GetMetricsSnapshot(),
		})
	}
}

// metricsHandler returns the process counters, gauges and timings
func (s *Server) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, logger.GetMetricsSnapshot())
	}
}

func (s *Server) metricsResetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.DefaultMetrics().Reset()
		w.WriteHeader(http.StatusNoContent)
	}
}

// searchHandler runs a search from query parameters.
// multi_venue=true marks a whole-city search.
func (s *Server) searchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f, err := filter.FromQuery(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		multiVenue, _ := strconv.ParseBool(q.Get("multi_venue"))

		s.respondSearch(w, s.ctrl.Search(r.Context(), f, multiVenue))
	}
}

func (s *Server) refreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respondSearch(w, s.ctrl.Refresh(r.Context()))
	}
}

func (s *Server) respondSearch(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
	case errors.Is(err, controller.ErrSuperseded):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

// slotListHandler returns the visible slots in flat table order
func (s *Server) slotListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, ok := parseOrder(r.URL.Query().Get("order"), aggregate.Asc)
		if !ok {
			writeError(w, http.StatusBadRequest, "order must be asc or desc")
			return
		}
		slots := aggregate.SortFlat(s.ctrl.Visible(), order)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"slots":       nonNil(slots),
			"total_count": len(slots),
		})
	}
}

// clearHandler deletes all backend data. The caller must pass confirm=true.
func (s *Server) clearHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
		if !confirmed {
			writeError(w, http.StatusPreconditionRequired, controller.ClearConfirmation)
			return
		}

		if err := s.ctrl.Clear(r.Context(), nil); err != nil {
			status := http.StatusBadGateway
			var statusErr *api.StatusError
			if errors.As(err, &statusErr) && statusErr.Code < 500 {
				status = statusErr.Code
			}
			writeError(w, status, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": controller.ClearedMessage})
	}
}

func (s *Server) calendarHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slots := s.ctrl.Visible()
		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="venue-slots.ics"`)
		w.Header().Set("X-Event-Count", strconv.Itoa(calendar.CountEvents(slots)))
		_, _ = w.Write([]byte(calendar.GenerateICS(slots, s.now())))
	}
}

// groupListHandler returns the two-level grouping.
// primary is venue (default) or date; order is asc (default) or desc.
func (s *Server) groupListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		primary := aggregate.Primary(strings.ToLower(q.Get("primary")))
		switch primary {
		case "":
			primary = aggregate.ByVenue
		case aggregate.ByVenue, aggregate.ByDate:
		default:
			writeError(w, http.StatusBadRequest, "primary must be venue or date")
			return
		}
		order, ok := parseOrder(q.Get("order"), aggregate.Asc)
		if !ok {
			writeError(w, http.StatusBadRequest, "order must be asc or desc")
			return
		}

		groups := s.ctrl.Groups(aggregate.Options{Primary: primary, DateOrder: order})
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"groups":      groups,
			"total_count": aggregate.Count(groups),
		})
	}
}

// venueListHandler returns the venue cards of the dashboard, dates descending by default
func (s *Server) venueListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, ok := parseOrder(r.URL.Query().Get("order"), aggregate.Desc)
		if !ok {
			writeError(w, http.StatusBadRequest, "order must be asc or desc")
			return
		}
		writeJSON(w, http.StatusOK, s.ctrl.VenueGroups(order))
	}
}

// venueDetailHandler returns one venue's dates ascending, with catalog metadata when known
func (s *Server) venueDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		// chi matches on RawPath when the request has one; the parameter is still escaped then
		if r.URL.RawPath != "" {
			unescaped, err := url.PathUnescape(name)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid venue name")
				return
			}
			name = unescaped
		}

		detail := s.ctrl.VenueDetail(name)
		md, known := venue.Lookup(name)
		if detail.SlotCount() == 0 && !known {
			writeError(w, http.StatusNotFound, "venue not found")
			return
		}

		resp := map[string]interface{}{
			"venue":      detail,
			"slot_count": detail.SlotCount(),
			"image":      venue.Image(name),
		}
		if known {
			resp["metadata"] = md
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type selectionRequest struct {
	VenueName string `json:"venue_name"`
}

func (s *Server) selectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.VenueName) == "" {
			writeError(w, http.StatusBadRequest, "venue_name is required")
			return
		}
		s.ctrl.SelectVenue(req.VenueName)
		writeJSON(w, http.StatusOK, s.ctrl.VenueSlots())
	}
}

func (s *Server) backHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ctrl.Back()
		w.WriteHeader(http.StatusNoContent)
	}
}

// neighborhoodListHandler lists the catalog neighborhoods of ?city=
func (s *Server) neighborhoodListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, nonNil(venue.Neighborhoods(r.URL.Query().Get("city"))))
	}
}

func (s *Server) neighborhoodSetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var neighborhoods []string
		if err := json.NewDecoder(r.Body).Decode(&neighborhoods); err != nil {
			writeError(w, http.StatusBadRequest, "body must be a JSON list of neighborhoods")
			return
		}
		s.ctrl.SetNeighborhoods(neighborhoods)
		writeJSON(w, http.StatusOK, s.ctrl.Stats(r.Context(), nil))
	}
}

func (s *Server) toastListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, nonNil(s.ctrl.Toasts().List()))
	}
}

func (s *Server) toastDismissHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid toast id")
			return
		}
		if !s.ctrl.Toasts().Dismiss(toast.ID(id)) {
			writeError(w, http.StatusNotFound, "toast not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseOrder(raw string, fallback aggregate.Order) (aggregate.Order, bool) {
	switch aggregate.Order(strings.ToLower(raw)) {
	case "":
		return fallback, true
	case aggregate.Asc:
		return aggregate.Asc, true
	case aggregate.Desc:
		return aggregate.Desc, true
	}
	return "", false
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
