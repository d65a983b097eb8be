// Package session implements the search box orchestration state machine:
// debounced query issuing, last-query-wins supersession, keyboard-driven
// selection, and suggestion/result phase transitions. The machine is pure;
// the host owns timers and transport and drives the machine through inputs.
package session

import (
	"time"

	"beacon_backend/internal/search/domain"
)

// Phase is the mode of the search surface.
type Phase string

const (
	PhaseClosed      Phase = "closed"
	PhaseSuggestions Phase = "suggestions"
	PhaseTyping      Phase = "typing"
	PhaseLoading     Phase = "loading"
	PhaseResults     Phase = "results"
	PhaseEmpty       Phase = "empty"
	PhaseError       Phase = "error"
)

// Key is a keyboard input the machine understands.
type Key string

const (
	KeyArrowUp   Key = "arrow_up"
	KeyArrowDown Key = "arrow_down"
	KeyEnter     Key = "enter"
	KeyEscape    Key = "escape"
	KeyShiftTab  Key = "shift_tab"
)

// DefaultDebounce is the keystroke settle time before a search is issued.
const DefaultDebounce = 250 * time.Millisecond

// Request tells the host to execute a search. Generation tags the request so
// a stale response can be recognized and dropped; a non-empty Cursor marks a
// load-more continuation of the current result list.
type Request struct {
	Generation uint64
	Query      string
	Filters    domain.Filters
	Cursor     string
}

// Options configures a machine. The zero value is usable.
type Options struct {
	Debounce time.Duration
	// Now is the machine's clock, injectable for tests.
	Now func() time.Time
	// OnNavigate receives the navigation intent when the user opens a result.
	OnNavigate func(domain.NavigationIntent)
	// OnCommit receives every committed query (explicit submit or result
	// selection); hosts typically forward it to the history store.
	OnCommit func(query string)
}

// Machine is the search session state machine. Not safe for concurrent use;
// hosts serialize inputs.
type Machine struct {
	opts Options

	phase       Phase
	query       string
	filters     domain.Filters
	results     []domain.Result
	suggestions []domain.Suggestion
	selection   int
	panelOpen   bool

	cursor  string
	hasMore bool
	total   int
	errMsg  string

	generation       uint64
	debounceDeadline time.Time
	debouncePending  bool
	loadingMore      bool
}

func New(opts Options) *Machine {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Machine{opts: opts, phase: PhaseClosed}
}

func (m *Machine) Phase() Phase                     { return m.phase }
func (m *Machine) Query() string                    { return m.query }
func (m *Machine) Filters() domain.Filters          { return m.filters }
func (m *Machine) Results() []domain.Result         { return m.results }
func (m *Machine) Suggestions() []domain.Suggestion { return m.suggestions }
func (m *Machine) Selection() int                   { return m.selection }
func (m *Machine) FilterPanelOpen() bool            { return m.panelOpen }
func (m *Machine) HasMore() bool                    { return m.hasMore }
func (m *Machine) Total() int                       { return m.total }
func (m *Machine) Error() string                    { return m.errMsg }
func (m *Machine) Generation() uint64               { return m.generation }

// Open activates the surface. With no query typed the surface shows
// suggestions.
func (m *Machine) Open() {
	if m.phase != PhaseClosed {
		return
	}
	m.phase = PhaseSuggestions
	m.selection = 0
}

// Close deactivates the surface and discards all transient state. Any
// in-flight response becomes stale through the generation bump. History and
// saved searches live outside the machine and survive.
func (m *Machine) Close() {
	m.generation++
	m.phase = PhaseClosed
	m.query = ""
	m.filters = domain.Filters{}
	m.results = nil
	m.suggestions = nil
	m.selection = 0
	m.panelOpen = false
	m.cursor = ""
	m.hasMore = false
	m.total = 0
	m.errMsg = ""
	m.debouncePending = false
	m.loadingMore = false
}

// SetText records a keystroke edit and (re)arms the debounce. Every edit
// invalidates any in-flight search; clearing the text returns the surface
// to suggestions.
func (m *Machine) SetText(text string) {
	if m.phase == PhaseClosed {
		return
	}
	if text == m.query {
		return
	}
	m.query = text
	m.errMsg = ""
	m.loadingMore = false

	if text == "" && m.filters.IsZero() {
		m.generation++
		m.phase = PhaseSuggestions
		m.results = nil
		m.selection = 0
		m.cursor = ""
		m.hasMore = false
		m.total = 0
		m.debouncePending = false
		return
	}

	// The edit supersedes whatever is in flight; a response for the old
	// text (first page or load-more) must not land under the new text.
	m.generation++
	m.phase = PhaseTyping
	m.debouncePending = true
	m.debounceDeadline = m.opts.Now().Add(m.opts.Debounce)
}

// SetFilters applies the filter panel state. Filter changes bypass the
// debounce and issue immediately.
func (m *Machine) SetFilters(filters domain.Filters) *Request {
	if m.phase == PhaseClosed {
		return nil
	}
	m.filters = filters
	m.errMsg = ""
	if m.query == "" && filters.IsZero() {
		m.generation++
		m.phase = PhaseSuggestions
		m.results = nil
		m.selection = 0
		m.debouncePending = false
		return nil
	}
	return m.issue()
}

// DebounceFire is called by the host timer. It issues the pending search if
// the settle time has elapsed; an early fire is ignored.
func (m *Machine) DebounceFire() *Request {
	if !m.debouncePending || m.opts.Now().Before(m.debounceDeadline) {
		return nil
	}
	return m.issue()
}

// LoadMore requests the next page of the current result list. Only valid
// while showing results with more available and no page already in flight.
func (m *Machine) LoadMore() *Request {
	if m.phase != PhaseResults || !m.hasMore || m.loadingMore || m.cursor == "" {
		return nil
	}
	m.loadingMore = true
	return &Request{
		Generation: m.generation,
		Query:      m.query,
		Filters:    m.filters,
		Cursor:     m.cursor,
	}
}

// Deliver applies a search response. Responses tagged with a stale
// generation lost the race to a newer query and are dropped.
func (m *Machine) Deliver(generation uint64, page *domain.Page, err error) {
	if m.phase == PhaseClosed || generation != m.generation {
		return
	}

	if err != nil {
		m.phase = PhaseError
		m.errMsg = err.Error()
		m.results = nil
		m.selection = 0
		m.cursor = ""
		m.hasMore = false
		m.loadingMore = false
		return
	}

	if m.loadingMore {
		m.loadingMore = false
		m.results = append(m.results, page.Results...)
		m.cursor = page.NextCursor
		m.hasMore = page.HasMore
		m.total = page.Total
		m.clampSelection()
		return
	}

	m.results = page.Results
	m.selection = 0
	m.cursor = page.NextCursor
	m.hasMore = page.HasMore
	m.total = page.Total
	m.errMsg = ""
	if len(page.Results) == 0 {
		m.phase = PhaseEmpty
		return
	}
	m.phase = PhaseResults
}

// SetSuggestions installs the suggestion panel content fetched by the host.
func (m *Machine) SetSuggestions(suggestions []domain.Suggestion) {
	if m.phase != PhaseSuggestions {
		return
	}
	m.suggestions = suggestions
	m.selection = 0
}

// Key applies a keyboard input. It may return a Request when the key forces
// an immediate search (Enter while typing, Enter on a suggestion).
func (m *Machine) Key(key Key) *Request {
	if m.phase == PhaseClosed {
		return nil
	}

	switch key {
	case KeyArrowDown:
		m.selection++
		m.clampSelection()
	case KeyArrowUp:
		m.selection--
		m.clampSelection()
	case KeyShiftTab:
		m.panelOpen = !m.panelOpen
	case KeyEscape:
		if m.panelOpen {
			m.panelOpen = false
		} else {
			m.Close()
		}
	case KeyEnter:
		return m.enter()
	}
	return nil
}

func (m *Machine) enter() *Request {
	switch m.phase {
	case PhaseResults:
		if m.selection >= 0 && m.selection < len(m.results) {
			selected := m.results[m.selection]
			if m.opts.OnCommit != nil {
				m.opts.OnCommit(m.query)
			}
			if m.opts.OnNavigate != nil {
				m.opts.OnNavigate(domain.NavigationIntent{
					Type:     selected.Type,
					ID:       selected.ID.String(),
					Metadata: selected.Metadata,
				})
			}
		}
		return nil
	case PhaseSuggestions:
		if m.selection >= 0 && m.selection < len(m.suggestions) {
			m.query = m.suggestions[m.selection].Text
			m.debouncePending = false
			if m.opts.OnCommit != nil {
				m.opts.OnCommit(m.query)
			}
			return m.issue()
		}
		return nil
	case PhaseTyping, PhaseError, PhaseEmpty:
		// Enter flushes the debounce and retries errors immediately.
		if m.query == "" && m.filters.IsZero() {
			return nil
		}
		if m.opts.OnCommit != nil {
			m.opts.OnCommit(m.query)
		}
		return m.issue()
	default:
		return nil
	}
}

// issue starts a new search generation, superseding whatever is in flight.
func (m *Machine) issue() *Request {
	m.generation++
	m.phase = PhaseLoading
	m.debouncePending = false
	m.loadingMore = false
	m.errMsg = ""
	return &Request{
		Generation: m.generation,
		Query:      m.query,
		Filters:    m.filters,
	}
}

// clampSelection keeps the selection inside the active list without
// wrapping.
func (m *Machine) clampSelection() {
	length := len(m.results)
	if m.phase == PhaseSuggestions {
		length = len(m.suggestions)
	}
	if length == 0 {
		m.selection = 0
		return
	}
	if m.selection < 0 {
		m.selection = 0
	}
	if m.selection >= length {
		m.selection = length - 1
	}
}
