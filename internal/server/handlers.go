package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nkoval/hiveportal/internal/auth"
	"github.com/nkoval/hiveportal/internal/database"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// --- Auth API ---

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// handleRegister validates the credential format before calling the auth
// service; the service itself only guards against duplicates.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if ok, reason := auth.ValidateUsername(req.Username); !ok {
		writeError(w, http.StatusBadRequest, reason)
		return
	}
	if ok, reason := auth.ValidatePassword(req.Password); !ok {
		writeError(w, http.StatusBadRequest, reason)
		return
	}
	if !auth.ValidRole(req.Role) {
		writeError(w, http.StatusBadRequest, "unknown role")
		return
	}

	id, err := s.auth.Register(req.Username, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "username": req.Username, "role": req.Role})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user, err := s.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUnknownUser) || errors.Is(err, auth.ErrWrongPassword) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := auth.GenerateToken(
		auth.Session{Username: user.Username, Role: user.Role},
		[]byte(s.cfg.Auth.TokenSecret), time.Duration(s.cfg.Auth.TokenTTL),
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

// --- Record API ---

// handleRecords serves the collection routes: GET returns the full-table
// snapshot for in-memory filtering, POST creates one record with a
// caller-chosen id.
func (s *Server) handleRecords(kind string, t database.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			rows, err := s.db.Snapshot(t)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if rows == nil {
				rows = []database.Row{}
			}
			writeJSON(w, http.StatusOK, rows)

		case http.MethodPost:
			id, values, errMsg := decodeRecord(kind, r)
			if errMsg != "" {
				writeError(w, http.StatusBadRequest, errMsg)
				return
			}
			if err := s.db.InsertRow(t, values...); err != nil {
				if errors.Is(err, database.ErrConflict) {
					writeError(w, http.StatusConflict, fmt.Sprintf("%s id %d already exists", kind, id))
					return
				}
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			s.hub.Broadcast(ChangeEvent{Kind: kind, Action: "created", ID: id})
			writeJSON(w, http.StatusCreated, map[string]any{"id": id})

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleRecord serves /api/{kind}/{id}: GET returns the single row, PUT
// applies a partial column set, DELETE removes the row. All three answer
// 404 when the id matches nothing.
func (s *Server) handleRecord(kind string, t database.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimPrefix(r.URL.Path, "/api/"+kind+"/")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid record id")
			return
		}

		switch r.Method {
		case http.MethodGet:
			row, err := s.db.GetRow(t, id)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if row == nil {
				writeError(w, http.StatusNotFound, fmt.Sprintf("%s id %d not found", kind, id))
				return
			}
			writeJSON(w, http.StatusOK, row)

		case http.MethodPut:
			var changes map[string]any
			if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
				writeError(w, http.StatusBadRequest, "invalid JSON")
				return
			}
			n, err := s.db.UpdateRow(t, id, changes)
			if err != nil {
				if errors.Is(err, database.ErrUnknownColumn) {
					writeError(w, http.StatusBadRequest, err.Error())
					return
				}
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if n == 0 {
				writeError(w, http.StatusNotFound, fmt.Sprintf("%s id %d not found", kind, id))
				return
			}
			s.hub.Broadcast(ChangeEvent{Kind: kind, Action: "updated", ID: id})
			writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})

		case http.MethodDelete:
			n, err := s.db.DeleteRow(t, id)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if n == 0 {
				writeError(w, http.StatusNotFound, fmt.Sprintf("%s id %d not found", kind, id))
				return
			}
			s.hub.Broadcast(ChangeEvent{Kind: kind, Action: "deleted", ID: id})
			writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// decodeRecord decodes a create payload for the given kind into the full
// positional row. An empty errMsg means success.
func decodeRecord(kind string, r *http.Request) (id int64, values []any, errMsg string) {
	switch kind {
	case auth.KindIncidents:
		var in database.Incident
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return 0, nil, "invalid JSON"
		}
		if in.ID == 0 {
			return 0, nil, "incident_id is required"
		}
		if in.Timestamp == "" || in.Severity == "" || in.Category == "" || in.Status == "" {
			return 0, nil, "timestamp, severity, category, and status are required"
		}
		return in.ID, in.Values(), ""

	case auth.KindDatasets:
		var d database.Dataset
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			return 0, nil, "invalid JSON"
		}
		if d.ID == 0 {
			return 0, nil, "dataset_id is required"
		}
		if d.Name == "" || d.UploadedBy == "" || d.UploadDate == "" {
			return 0, nil, "name, uploaded_by, and upload_date are required"
		}
		if d.Rows < 0 || d.Columns < 1 {
			return 0, nil, "rows must be non-negative and columns positive"
		}
		return d.ID, d.Values(), ""

	case auth.KindTickets:
		var t database.Ticket
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			return 0, nil, "invalid JSON"
		}
		if t.ID == 0 {
			return 0, nil, "ticket_id is required"
		}
		if t.Priority == "" || t.Description == "" || t.Status == "" || t.AssignedTo == "" || t.CreatedAt == "" {
			return 0, nil, "priority, description, status, assigned_to, and created_at are required"
		}
		if t.ResolutionTimeHours != nil && *t.ResolutionTimeHours < 0 {
			return 0, nil, "resolution_time_hours must be non-negative"
		}
		return t.ID, t.Values(), ""
	}
	return 0, nil, "unknown record kind"
}

// --- Aggregates ---

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetStats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSummaryReport(w http.ResponseWriter, r *http.Request) {
	content, err := s.gen.GenerateSummary()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(content))
}
