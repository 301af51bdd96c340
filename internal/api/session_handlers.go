package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/vytor/cognitrain/internal/errors"
	"github.com/vytor/cognitrain/internal/models"
)

func (s *Server) handleRecordSession(w http.ResponseWriter, r *http.Request) {
	profileID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var metrics models.SessionMetrics
	if err := decodeJSON(w, r, &metrics); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.SessionService.RecordSession(r.Context(), profileID, metrics)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, session)
}

// handleListSessions accepts ?game=, ?limit= (most recent N) and ?since=
// (RFC 3339 or YYYY-MM-DD).
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	profileID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	filter := models.SessionFilter{
		ProfileID: profileID,
		GameType:  strings.TrimSpace(r.URL.Query().Get("game")),
	}
	if limit, ok, err := queryInt(r, "limit"); err != nil {
		handleError(w, r, err)
		return
	} else if ok {
		filter.Limit = limit
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("since")); raw != "" {
		since, err := parseSince(raw)
		if err != nil {
			handleError(w, r, err)
			return
		}
		filter.Since = &since
	}

	sessions, err := s.SessionService.ListSessions(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	profileID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	sessionID, err := pathID(r, "sessionID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.SessionService.GetSession(r.Context(), profileID, sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, session)
}

func parseSince(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, errors.NewBadRequestError("invalid since: " + raw)
}
