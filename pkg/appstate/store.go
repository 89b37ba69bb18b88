// Package appstate holds the session-scoped UI state: which view is active,
// which category and date are selected, the search query and the sidebar
// flag. The store is an explicit dependency handed to whoever needs it,
// never a package-level singleton, and it is never persisted.
package appstate

import "sync"

// View names one of the task-list perspectives.
type View string

const (
	ViewMyDay     View = "my-day"
	ViewImportant View = "important"
	ViewActive    View = "active"
	ViewAll       View = "all"
	ViewCategory  View = "category"
	ViewWelcome   View = "welcome"
)

// Field identifies a single store field for subscription purposes. A change
// to field X notifies only subscribers of X.
type Field int

const (
	FieldCurrentView Field = iota
	FieldSelectedCategoryID
	FieldSelectedDate
	FieldSearchQuery
	FieldSidebarOpen
)

type subscriber struct {
	field Field
	ch    chan struct{}
}

// Store is the single mutable view-state container for one session.
type Store struct {
	mu sync.Mutex

	currentView        View
	selectedCategoryID string
	selectedDate       string
	searchQuery        string
	sidebarOpen        bool

	nextSubID int
	subs      map[int]subscriber
}

// New returns a store in its session-start state, showing the welcome view.
func New() *Store {
	return &Store{
		currentView: ViewWelcome,
		subs:        make(map[int]subscriber),
	}
}

// SetCurrentView switches the active view. categoryID is meaningful only for
// ViewCategory; passing "" clears any stale selection, which is how primary
// navigation to a non-category view drops the previous category.
func (s *Store) SetCurrentView(view View, categoryID string) {
	s.mu.Lock()
	viewChanged := s.currentView != view
	categoryChanged := s.selectedCategoryID != categoryID
	s.currentView = view
	s.selectedCategoryID = categoryID
	s.mu.Unlock()

	if viewChanged {
		s.notify(FieldCurrentView)
	}
	if categoryChanged {
		s.notify(FieldSelectedCategoryID)
	}
}

// SetSearchQuery sets the global search query. A non-empty trimmed query
// overrides the current view entirely; that rule lives in the filter engine,
// the store just records the text.
func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	changed := s.searchQuery != query
	s.searchQuery = query
	s.mu.Unlock()
	if changed {
		s.notify(FieldSearchQuery)
	}
}

// SetSelectedDate sets the My Day date override, or clears it with "" to
// mean "use today".
func (s *Store) SetSelectedDate(date string) {
	s.mu.Lock()
	changed := s.selectedDate != date
	s.selectedDate = date
	s.mu.Unlock()
	if changed {
		s.notify(FieldSelectedDate)
	}
}

// SetSidebarOpen toggles the sidebar. Presentation-only.
func (s *Store) SetSidebarOpen(open bool) {
	s.mu.Lock()
	changed := s.sidebarOpen != open
	s.sidebarOpen = open
	s.mu.Unlock()
	if changed {
		s.notify(FieldSidebarOpen)
	}
}

func (s *Store) CurrentView() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentView
}

func (s *Store) SelectedCategoryID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedCategoryID
}

func (s *Store) SelectedDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedDate
}

func (s *Store) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

func (s *Store) SidebarOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sidebarOpen
}

// Snapshot returns a consistent copy of every field, for the filter engine.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		CurrentView:        s.currentView,
		SelectedCategoryID: s.selectedCategoryID,
		SelectedDate:       s.selectedDate,
		SearchQuery:        s.searchQuery,
		SidebarOpen:        s.sidebarOpen,
	}
}

// Snapshot is an immutable copy of the store's fields.
type Snapshot struct {
	CurrentView        View
	SelectedCategoryID string
	SelectedDate       string
	SearchQuery        string
	SidebarOpen        bool
}

// Subscribe registers interest in one field. The returned channel receives a
// signal after each change to that field; a pending signal is coalesced with
// later ones. cancel removes the subscription.
func (s *Store) Subscribe(field Field) (<-chan struct{}, func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	ch := make(chan struct{}, 1)
	s.subs[id] = subscriber{field: field, ch: ch}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Store) notify(field Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subs {
		if sub.field != field {
			continue
		}
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}
