package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sampark-health/sampark/internal/dashboard"
	"github.com/sampark-health/sampark/internal/models"
)

// ServerErrorMessage is the conversational apology for an unclassified
// fault in a turn. The user-facing contract is "never crash silently,
// always return a reply".
const ServerErrorMessage = "⚠️ Oops — server error. Please type 'menu' to continue."

// recoverJSON wraps a JSON handler with the outermost panic boundary.
func (s *Server) recoverJSON(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Server: recovered panic in JSON handler", "panic", rec, "path", r.URL.Path)
				writeJSONResponse(w, http.StatusInternalServerError, models.Error("Internal server error"))
			}
		}()
		next(w, r)
	}
}

// incomingHandler handles the Twilio inbound webhook: one form-encoded
// message in, a TwiML document with one or more reply segments out.
func (s *Server) incomingHandler(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Server.incomingHandler: recovered panic in turn", "panic", rec)
			writeTwiML(w, []string{ServerErrorMessage})
		}
	}()

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.Error("Server.incomingHandler: failed to parse webhook form", "error", err)
		writeTwiML(w, []string{ServerErrorMessage})
		return
	}

	from := r.FormValue("From")
	body := r.FormValue("Body")

	identity, err := s.msgService.ValidateAndCanonicalizeRecipient(strings.TrimPrefix(from, "whatsapp:"))
	if err != nil {
		slog.Error("Server.incomingHandler: invalid sender", "error", err, "from", from)
		writeTwiML(w, []string{ServerErrorMessage})
		return
	}

	segments, err := s.engine.HandleMessage(r.Context(), identity, body)
	if err != nil {
		slog.Error("Server.incomingHandler: turn failed", "error", err, "identity", identity)
		writeTwiML(w, []string{ServerErrorMessage})
		return
	}

	writeTwiML(w, segments)
}

// dashboardHandler returns the aggregate summary the operator UI renders.
func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	profiles, err := s.store.ListProfiles()
	if err != nil {
		slog.Error("Server.dashboardHandler: failed to list profiles", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("failed to load profiles"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(dashboard.BuildSummary(profiles)))
}

// profilesHandler returns the raw profile records.
func (s *Server) profilesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	profiles, err := s.store.ListProfiles()
	if err != nil {
		slog.Error("Server.profilesHandler: failed to list profiles", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("failed to load profiles"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(profiles))
}

// eventsHandler returns the engagement log for one identity.
func (s *Server) eventsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("phone query parameter is required"))
		return
	}
	identity, err := s.msgService.ValidateAndCanonicalizeRecipient(phone)
	if err != nil {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("invalid phone"))
		return
	}
	events, err := s.store.ListEvents(identity)
	if err != nil {
		slog.Error("Server.eventsHandler: failed to list events", "error", err, "identity", identity)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("failed to load events"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(events))
}

// sendRequest is the payload for operator-initiated outbound messages.
type sendRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// sendHandler pushes one outbound message through the messaging service.
func (s *Server) sendHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("invalid request body"))
		return
	}
	if req.Body == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error(models.ErrEmptyBody.Error()))
		return
	}
	if err := s.msgService.SendMessage(r.Context(), req.To, req.Body); err != nil {
		slog.Error("Server.sendHandler: send failed", "error", err, "to", req.To)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("failed to send message"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("message sent", nil))
}

// healthHandler reports liveness.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]string{"status": "healthy"}))
}
