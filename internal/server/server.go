package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jpalmerr/monthpicker"
)

const (
	// sseWriteTimeout is the maximum time allowed for a single SSE write operation.
	// This prevents goroutine leaks when clients are slow or disconnected.
	// Must be <= shutdown timeout to ensure clean shutdown.
	sseWriteTimeout = 5 * time.Second

	// defaultTitle is used when no custom title is configured.
	defaultTitle = "Month Picker"

	// titlePlaceholder is the marker in HTML that gets replaced with the actual title.
	titlePlaceholder = "{{.Title}}"

	// maxBodyBytes caps JSON request bodies.
	maxBodyBytes = 64 << 10
)

// Server handles HTTP requests for the picker demo page and its JSON API.
//
// Server provides these endpoints:
//   - GET /: Serves the embedded demo page
//   - GET /api/selection: Current selection as display text and structured values
//   - POST /api/toggle: Toggles one month/year
//   - POST /api/pick: Picks a cell on the current grid page, closing the popup in single-select mode
//   - POST /api/show: Shows the popup for the posted geometry
//   - POST /api/hide: Hides the popup
//   - POST /api/value: Replaces the selection from display text
//   - POST /api/navigate: Moves the grid by pages
//   - GET /api/grid: Current grid cells
//   - POST /api/position: Places a popup for the posted geometry, recording it while the popup is shown
//   - GET /api/sse: Server-Sent Events stream of selection changes
//
// The server is designed for graceful shutdown via context cancellation.
type Server struct {
	picker     *monthpicker.Picker
	port       int
	httpServer *http.Server
	assets     fs.FS
	title      string
	logger     *slog.Logger
	done       chan struct{}

	// page is the geometry the dashboard last reported. The picker re-reads
	// it on the deferred refresh after Show.
	page pageGeometry
}

// pageGeometry is a [monthpicker.GeometrySource] updated by HTTP requests.
type pageGeometry struct {
	mu   sync.Mutex
	geom monthpicker.Geometry
}

// Geometry implements [monthpicker.GeometrySource].
func (g *pageGeometry) Geometry() monthpicker.Geometry {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.geom
}

func (g *pageGeometry) set(geom monthpicker.Geometry) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.geom = geom
}

// NewServer creates a new HTTP [Server].
//
// Parameters:
//   - picker: The picker instance the API drives
//   - port: TCP port to listen on
//   - assets: Embedded filesystem containing dashboard assets (may be nil)
//   - title: Page title (defaults to "Month Picker" if empty)
//   - logger: Logger for server events
//
// The server is not started until [Server.Start] is called.
func NewServer(picker *monthpicker.Picker, port int, assets fs.FS, title string, logger *slog.Logger) *Server {
	return &Server{
		picker: picker,
		port:   port,
		assets: assets,
		title:  title,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Done returns a channel closed once the server has shut down after its
// context was cancelled.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the server
// is listening. The server will continue running until the context is
// cancelled, at which point it initiates a graceful shutdown with a 5-second
// timeout.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server) Start(ctx context.Context) error {
	// create listener first to verify port availability synchronously
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	s.httpServer = &http.Server{
		Handler: s.routes(),
		// BaseContext derives all request contexts from the server context.
		// When ctx is cancelled, all request contexts are also cancelled,
		// enabling graceful shutdown of long-running handlers like SSE.
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	// shutdown on context cancellation
	go func() {
		defer close(s.done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	s.logger.Info("server listening", "port", s.port)
	return nil
}

// routes builds the request multiplexer.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("/api/selection", s.handleSelection)
	mux.HandleFunc("/api/toggle", s.handleToggle)
	mux.HandleFunc("/api/pick", s.handlePick)
	mux.HandleFunc("/api/show", s.handleShow)
	mux.HandleFunc("/api/hide", s.handleHide)
	mux.HandleFunc("/api/value", s.handleValue)
	mux.HandleFunc("/api/navigate", s.handleNavigate)
	mux.HandleFunc("/api/grid", s.handleGrid)
	mux.HandleFunc("/api/position", s.handlePosition)
	mux.HandleFunc("/api/sse", s.handleSSE)

	// serve dashboard assets
	if s.assets != nil {
		mux.HandleFunc("/", s.handleDashboard)
	}

	return mux
}

// selectionResponse is the JSON body describing the current selection.
type selectionResponse struct {
	Value       string                          `json:"value"`
	Selections  []monthpicker.ExternalSelection `json:"selections"`
	Mode        monthpicker.Mode                `json:"mode"`
	MultiSelect bool                            `json:"multi_select"`
}

// gridResponse is the JSON body describing the current grid page.
type gridResponse struct {
	Year    int            `json:"year"`
	Columns int            `json:"columns"`
	Cells   []cellResponse `json:"cells"`
}

// cellResponse is one grid cell with its month in external numbering.
type cellResponse struct {
	Label    string `json:"label"`
	Month    *int   `json:"month,omitempty"`
	Year     *int   `json:"year,omitempty"`
	Selected bool   `json:"selected"`
	Disabled bool   `json:"disabled"`
}

// toggleRequest names a value to toggle. Month is in external numbering.
type toggleRequest struct {
	Month *int `json:"month"`
	Year  *int `json:"year"`
}

// toggleResponse reports whether the toggle was applied.
type toggleResponse struct {
	Applied   bool              `json:"applied"`
	Selection selectionResponse `json:"selection"`
}

// pickResponse reports a grid pick and whether the popup is still open.
type pickResponse struct {
	Applied   bool              `json:"applied"`
	Visible   bool              `json:"visible"`
	Selection selectionResponse `json:"selection"`
}

// popupResponse reports popup visibility and, on show, its placement.
type popupResponse struct {
	Visible   bool                   `json:"visible"`
	Placement *monthpicker.Placement `json:"placement,omitempty"`
}

type valueRequest struct {
	Value string `json:"value"`
}

type navigateRequest struct {
	Delta int `json:"delta"`
}

// handleDashboard serves the main dashboard page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if s.assets == nil {
		http.Error(w, "Dashboard not found", http.StatusInternalServerError)
		return
	}

	// read index.html from embedded assets
	content, err := fs.ReadFile(s.assets, "assets/index.html")
	if err != nil {
		http.Error(w, "Dashboard not found", http.StatusInternalServerError)
		return
	}

	// apply title substitution with HTML escaping to prevent XSS
	title := s.title
	if title == "" {
		title = defaultTitle
	}
	safeTitle := html.EscapeString(title)
	rendered := strings.ReplaceAll(string(content), titlePlaceholder, safeTitle)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err = w.Write([]byte(rendered)); err != nil {
		s.logger.Error("failed to write dashboard response", "error", err)
	}
}

// handleSelection returns the current selection.
func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, s.selection())
}

// handleToggle toggles one value. A value vetoed by the disabled rule is
// reported with applied=false rather than as an error.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req toggleRequest
	if !s.decode(w, r, &req) {
		return
	}
	month, year, ok := s.requestedValue(w, req)
	if !ok {
		return
	}

	applied := s.picker.Toggle(month, year)
	s.logger.Debug("toggle request", "month", month, "year", year, "applied", applied)
	s.writeJSON(w, toggleResponse{Applied: applied, Selection: s.selection()})
}

// handlePick picks the matching cell on the current grid page, as a click
// on the popup would. Single-select picks close the popup.
func (s *Server) handlePick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req toggleRequest
	if !s.decode(w, r, &req) {
		return
	}
	month, year, ok := s.requestedValue(w, req)
	if !ok {
		return
	}

	mode := s.picker.Mode()
	for _, c := range s.picker.Grid() {
		if mode != monthpicker.ModeYear && c.Selection.Month != month {
			continue
		}
		if mode != monthpicker.ModeMonth && c.Selection.Year != year {
			continue
		}
		applied := s.picker.Pick(c)
		s.logger.Debug("pick request", "month", month, "year", year, "applied", applied)
		s.writeJSON(w, pickResponse{Applied: applied, Visible: s.picker.Visible(), Selection: s.selection()})
		return
	}
	http.Error(w, "value is not on the current grid page", http.StatusBadRequest)
}

// requestedValue converts a toggle request into internal month and year,
// writing a 400 response if a component the mode needs is missing or out
// of range.
func (s *Server) requestedValue(w http.ResponseWriter, req toggleRequest) (month, year int, ok bool) {
	mode := s.picker.Mode()
	if mode != monthpicker.ModeYear {
		if req.Month == nil {
			http.Error(w, "month is required", http.StatusBadRequest)
			return 0, 0, false
		}
		month = *req.Month - s.picker.MonthBase()
		if month < 0 || month > 11 {
			http.Error(w, fmt.Sprintf("month %d out of range", *req.Month), http.StatusBadRequest)
			return 0, 0, false
		}
	}
	if mode != monthpicker.ModeMonth {
		if req.Year == nil {
			http.Error(w, "year is required", http.StatusBadRequest)
			return 0, 0, false
		}
		year = *req.Year
	}
	return month, year, true
}

// handleShow records the posted geometry and shows the popup. The picker
// recomputes the placement after its refresh delay from whatever geometry
// has been posted by then.
func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var geom monthpicker.Geometry
	if !s.decode(w, r, &geom) {
		return
	}

	s.page.set(geom)
	placement := s.picker.Show(&s.page)
	s.writeJSON(w, popupResponse{Visible: s.picker.Visible(), Placement: &placement})
}

// handleHide hides the popup.
func (s *Server) handleHide(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.picker.Hide()
	s.writeJSON(w, popupResponse{Visible: s.picker.Visible()})
}

// handleValue replaces the selection from display text.
func (s *Server) handleValue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req valueRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.picker.SetValue(req.Value)
	s.writeJSON(w, s.selection())
}

// handleNavigate moves the grid and returns the new page.
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req navigateRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.picker.Navigate(req.Delta)
	s.writeJSON(w, s.grid())
}

// handleGrid returns the current grid page.
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, s.grid())
}

// handlePosition computes a popup placement for the posted geometry. While
// the popup is shown the geometry also replaces the one the deferred
// refresh reads.
func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var geom monthpicker.Geometry
	if !s.decode(w, r, &geom) {
		return
	}
	if s.picker.Visible() {
		s.page.set(geom)
	}

	s.writeJSON(w, monthpicker.ComputePosition(geom))
}

// handleSSE streams selection updates via Server-Sent Events.
//
// The handler uses write deadlines to prevent goroutine leaks when clients are
// slow or disconnected. Without deadlines, a blocked Fprintf call would prevent
// the handler from detecting context cancellation or channel closure.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	// check if flushing is supported
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	rc := http.NewResponseController(w)

	// track if write deadlines are supported (may not be for some ResponseWriter impls)
	deadlinesSupported := true

	writeAndFlush := func(data []byte) error {
		if deadlinesSupported {
			if err := rc.SetWriteDeadline(time.Now().Add(sseWriteTimeout)); err != nil {
				s.logger.Warn("sse write deadlines not supported", "error", err)
				deadlinesSupported = false
			}
		}

		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}
		return rc.Flush()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	ch := s.picker.Subscribe()
	defer s.picker.Unsubscribe(ch)

	send := func() error {
		data, err := json.Marshal(s.selection())
		if err != nil {
			s.logger.Error("failed to encode selection event", "error", err)
			return nil
		}
		return writeAndFlush(data)
	}

	// initial state (also protected by write deadline)
	if err := send(); err != nil {
		return
	}

	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
			if err := send(); err != nil {
				return
			}

		case <-r.Context().Done():
			// request context is derived from server context via BaseContext,
			// so this fires on both client disconnect AND server shutdown
			return
		}
	}
}

func (s *Server) selection() selectionResponse {
	return selectionResponse{
		Value:       s.picker.Value(),
		Selections:  s.picker.Export(),
		Mode:        s.picker.Mode(),
		MultiSelect: s.picker.MultiSelect(),
	}
}

func (s *Server) grid() gridResponse {
	cells := s.picker.Grid()
	out := gridResponse{
		Year:    s.picker.CurrentYear(),
		Columns: s.picker.GridColumns(),
		Cells:   make([]cellResponse, len(cells)),
	}

	mode := s.picker.Mode()
	for i, c := range cells {
		cr := cellResponse{Label: c.Label, Selected: c.Selected, Disabled: c.Disabled}
		if mode != monthpicker.ModeYear {
			month := c.Selection.Month + s.picker.MonthBase()
			cr.Month = &month
		}
		if c.Selection.HasYear {
			year := c.Selection.Year
			cr.Year = &year
		}
		out.Cells[i] = cr
	}
	return out
}

// decode reads a JSON request body into v, writing a 400 response on
// failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
