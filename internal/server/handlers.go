package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"weekplan/internal/auth"
	"weekplan/internal/calendar"
	"weekplan/internal/reports"
	"weekplan/internal/schedule"
	"weekplan/internal/storage"
	"weekplan/internal/views"
)

// maxBodySize bounds JSON request bodies on the auth API.
const maxBodySize = 64 << 10

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
	Error    string `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type importResponse struct {
	Schedules         int    `json:"schedules"`
	Activities        int    `json:"activities"`
	CurrentScheduleID string `json:"currentScheduleId"`
}

// ===== Auth API =====

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Username and password are required"})
		return
	}
	if !s.creds.Check(req.Username, req.Password) {
		s.log.Info("login rejected", zap.String("username", req.Username), zap.String("ip", r.RemoteAddr))
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid credentials"})
		return
	}

	token, err := s.tokens.Issue(req.Username)
	if err != nil {
		s.log.Error("issue token", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}
	auth.SetCookie(w, token, int(s.tokens.TTL().Seconds()))
	writeJSON(w, http.StatusOK, loginResponse{Token: token, Username: req.Username})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if req.Token == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Token is required"})
		return
	}
	username, err := s.tokens.Verify(req.Token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, verifyResponse{Valid: false, Error: "Invalid token"})
		return
	}
	writeJSON(w, http.StatusOK, verifyResponse{Valid: true, Username: username})
}

func (s *Server) handleLoginInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "POST /api/auth/login with {\"username\", \"password\"} to obtain a token.\n"+
		"Send it back as the %s cookie or an Authorization: Bearer header.\n", auth.CookieName)
}

// ===== Schedule endpoints =====

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	mode := schedule.ViewMode(r.URL.Query().Get("mode"))
	if mode != "" && !mode.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("unknown view mode %q", mode)})
		return
	}
	v := views.Project(s.store.Snapshot(), mode, views.Options{
		Focus: r.URL.Query().Get("day"),
		Slots: s.slots,
		Now:   s.now,
	})
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := storage.Export(s.store.Snapshot())
	if err != nil {
		s.log.Error("export", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "export failed"})
		return
	}
	filename := storage.ExportFilename(s.now())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	st, err := storage.Import(r.Body)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "Error importing: " + err.Error()})
		return
	}
	if err := s.store.Replace(st); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "Error importing: " + err.Error()})
		return
	}

	activities := 0
	for _, sch := range st.Schedules {
		activities += sch.ActivityCount()
	}
	user, _ := auth.UsernameFrom(r.Context())
	s.log.Info("schedules imported",
		zap.String("username", user),
		zap.Int("schedules", len(st.Schedules)),
		zap.Int("activities", activities))

	writeJSON(w, http.StatusOK, importResponse{
		Schedules:         len(st.Schedules),
		Activities:        activities,
		CurrentScheduleID: st.CurrentScheduleID,
	})
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	cur, ok := s.store.Current()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no current schedule"})
		return
	}
	data := calendar.Export(cur, s.now(), s.loc)
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="weekplan.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	cur, ok := s.store.Current()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no current schedule"})
		return
	}
	gen := reports.NewGenerator()
	gen.SetNowFunc(s.now)
	report := gen.GenerateWeekly(cur)

	if strings.EqualFold(r.URL.Query().Get("format"), "json") {
		data, err := reports.FormatWeeklyJSON(report)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "report failed"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, reports.FormatWeeklyMarkdown(report))
}

// ===== Helpers =====

func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
