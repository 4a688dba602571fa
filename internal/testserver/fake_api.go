// Package testserver runs an in-process stand-in for the remote report API.
package testserver

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"go-fraud-console/internal/models"
)

const (
	BasePath   = "/api/admin"
	cookieName = "admin_session"
)

type account struct {
	password string
	admin    models.Admin
}

// FakeAPI implements the report API endpoints over in-memory state.
type FakeAPI struct {
	Server *httptest.Server

	mu       sync.Mutex
	accounts map[string]account
	sessions map[string]string
	reports  map[string]*models.Report
	order    []string
	notes    map[string][]models.Note
	overview models.AnalyticsOverview
	calls    map[string]int
	nextNote int

	requireSession     bool
	loginFailureStatus int
	logoutStatus       int
	logoutDelay        time.Duration
	failStatus         int
	exportBody         []byte
}

func New(t testing.TB) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		accounts:           make(map[string]account),
		sessions:           make(map[string]string),
		reports:            make(map[string]*models.Report),
		notes:              make(map[string][]models.Note),
		calls:              make(map[string]int),
		loginFailureStatus: http.StatusUnauthorized,
		exportBody:         []byte("reference_id,status\nREF-1,NEW\n"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+BasePath+"/login", f.login)
	mux.HandleFunc("POST "+BasePath+"/logout", f.logout)
	mux.HandleFunc("GET "+BasePath+"/reports", f.guard(f.listReports))
	mux.HandleFunc("GET "+BasePath+"/reports/{id}", f.guard(f.getReport))
	mux.HandleFunc("PUT "+BasePath+"/reports/{id}/status", f.guard(f.updateStatus))
	mux.HandleFunc("POST "+BasePath+"/reports/{id}/notes", f.guard(f.addNote))
	mux.HandleFunc("GET "+BasePath+"/export", f.guard(f.export))
	mux.HandleFunc("GET "+BasePath+"/analytics/overview", f.guard(f.analytics))

	f.Server = httptest.NewServer(f.count(mux))
	t.Cleanup(f.Server.Close)
	return f
}

// BaseURL is the value for API_BASE_URL.
func (f *FakeAPI) BaseURL() string {
	return f.Server.URL + BasePath
}

// RequireSession makes every call except login/logout demand the session cookie.
func (f *FakeAPI) RequireSession() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requireSession = true
}

// SetLoginFailureStatus sets the status sent for bad credentials (default 401).
func (f *FakeAPI) SetLoginFailureStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginFailureStatus = status
}

// SetLogoutBehavior makes logout answer with status (when non-zero) after delay.
func (f *FakeAPI) SetLogoutBehavior(status int, delay time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutStatus = status
	f.logoutDelay = delay
}

// FailWith makes every call except login/logout answer with status; 0 restores normal service.
func (f *FakeAPI) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failStatus = status
}

func (f *FakeAPI) AddAdmin(password string, admin models.Admin) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[admin.Username] = account{password: password, admin: admin}
}

func (f *FakeAPI) AddReport(r models.Report, notes ...models.Note) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := r.ID.String()
	if _, exists := f.reports[id]; !exists {
		f.order = append(f.order, id)
	}
	f.reports[id] = &r
	f.notes[id] = append(f.notes[id], notes...)
}

func (f *FakeAPI) SetOverview(o models.AnalyticsOverview) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overview = o
}

// Report returns a copy of the stored report.
func (f *FakeAPI) Report(id string) (models.Report, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	if !ok {
		return models.Report{}, false
	}
	return *r, true
}

func (f *FakeAPI) Notes(id string) []models.Note {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Note(nil), f.notes[id]...)
}

// Calls counts requests by "METHOD /path" (path relative to BasePath).
func (f *FakeAPI) Calls(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method+" "+path]
}

// TotalCalls counts every request the server received.
func (f *FakeAPI) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *FakeAPI) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[r.Method+" "+strings.TrimPrefix(r.URL.Path, BasePath)]++
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		failStatus := f.failStatus
		requireSession := f.requireSession
		valid := false
		if c, err := r.Cookie(cookieName); err == nil {
			_, valid = f.sessions[c.Value]
		}
		f.mu.Unlock()

		if failStatus != 0 {
			writeJSON(w, failStatus, map[string]any{"error": http.StatusText(failStatus)})
			return
		}
		if requireSession && !valid {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Authentication required"})
			return
		}
		next(w, r)
	}
}

func (f *FakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid request body"})
		return
	}

	f.mu.Lock()
	acct, ok := f.accounts[req.Username]
	if !ok || acct.password != req.Password {
		status := f.loginFailureStatus
		f.mu.Unlock()
		writeJSON(w, status, map[string]any{"success": false, "error": "Invalid credentials"})
		return
	}
	token := randomToken()
	f.sessions[token] = req.Username
	f.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: token, Path: "/", HttpOnly: true})
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "admin": acct.admin})
}

func (f *FakeAPI) logout(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	delay, status := f.logoutDelay, f.logoutStatus
	if c, err := r.Cookie(cookieName); err == nil {
		delete(f.sessions, c.Value)
	}
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}
	if status != 0 {
		writeJSON(w, status, map[string]any{"error": "logout failed"})
		return
	}
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (f *FakeAPI) listReports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := atoiDefault(q.Get("page"), 1)
	perPage := atoiDefault(q.Get("per_page"), 20)
	status := q.Get("status")

	f.mu.Lock()
	var matched []models.Report
	// newest first
	for i := len(f.order) - 1; i >= 0; i-- {
		rep := f.reports[f.order[i]]
		if status != "" && string(rep.Status) != status {
			continue
		}
		matched = append(matched, *rep)
	}
	f.mu.Unlock()

	start := (page - 1) * perPage
	if start > len(matched) {
		start = len(matched)
	}
	end := start + perPage
	if end > len(matched) {
		end = len(matched)
	}
	writeJSON(w, http.StatusOK, models.ReportPage{
		Reports: append([]models.Report{}, matched[start:end]...),
		Total:   len(matched),
		Page:    page,
		PerPage: perPage,
	})
}

func (f *FakeAPI) getReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	f.mu.Lock()
	rep, ok := f.reports[id]
	var detail models.ReportDetail
	if ok {
		copied := *rep
		detail = models.ReportDetail{Report: &copied, Notes: append([]models.Note{}, f.notes[id]...)}
	}
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Report not found"})
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (f *FakeAPI) updateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req models.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}

	f.mu.Lock()
	rep, ok := f.reports[id]
	if ok {
		rep.Status = req.Status
		rep.Priority = req.Priority
		rep.UpdatedAt = models.Timestamp{Time: time.Now().UTC()}
	}
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Report not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (f *FakeAPI) addNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req models.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}

	f.mu.Lock()
	_, ok := f.reports[id]
	if ok {
		f.nextNote++
		author := "Admin"
		if c, err := r.Cookie(cookieName); err == nil {
			if username, found := f.sessions[c.Value]; found {
				acct := f.accounts[username]
				author = acct.admin.DisplayName()
			}
		}
		f.notes[id] = append(f.notes[id], models.Note{
			ID:        models.ID(strconv.Itoa(f.nextNote)),
			FullName:  author,
			Note:      req.Note,
			Type:      req.Type,
			CreatedAt: models.Timestamp{Time: time.Now().UTC()},
		})
	}
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Report not found"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true})
}

func (f *FakeAPI) export(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	body := append([]byte(nil), f.exportBody...)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="reports.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (f *FakeAPI) analytics(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	overview := f.overview
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, overview)
}

// OverviewFromReports derives an analytics snapshot from the stored reports,
// the way the real API computes it server-side.
func (f *FakeAPI) OverviewFromReports() models.AnalyticsOverview {
	f.mu.Lock()
	defer f.mu.Unlock()

	o := models.AnalyticsOverview{TotalReports: len(f.reports)}
	statuses := map[models.ReportStatus]int{}
	mediums := map[string]int{}
	states := map[string]int{}
	days := map[string]int{}
	for _, r := range f.reports {
		o.TotalAmountInvolved += r.AmountInvolved
		statuses[r.Status]++
		mediums[r.FraudMedium]++
		states[r.LocationState]++
		if !r.CreatedAt.IsZero() {
			days[r.CreatedAt.Format("2006-01-02")]++
		}
	}
	for _, s := range models.ReportStatuses {
		if n := statuses[s]; n > 0 {
			o.StatusBreakdown = append(o.StatusBreakdown, models.StatusCount{Status: s, Count: n})
		}
	}
	for k, n := range mediums {
		o.FraudMediumBreakdown = append(o.FraudMediumBreakdown, models.FraudMediumCount{FraudMedium: k, Count: n})
	}
	sort.Slice(o.FraudMediumBreakdown, func(i, j int) bool {
		return o.FraudMediumBreakdown[i].Count > o.FraudMediumBreakdown[j].Count
	})
	for k, n := range states {
		o.StateBreakdown = append(o.StateBreakdown, models.StateCount{LocationState: k, Count: n})
	}
	sort.Slice(o.StateBreakdown, func(i, j int) bool {
		return o.StateBreakdown[i].Count > o.StateBreakdown[j].Count
	})
	for k, n := range days {
		o.DailyTrend = append(o.DailyTrend, models.DailyCount{Date: k, Count: n})
	}
	sort.Slice(o.DailyTrend, func(i, j int) bool { return o.DailyTrend[i].Date < o.DailyTrend[j].Date })
	return o
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func atoiDefault(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func randomToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("random token: %v", err))
	}
	return hex.EncodeToString(b)
}
