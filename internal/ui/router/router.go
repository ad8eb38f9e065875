package router

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/esports-earnings/internal/ui"
)

// Screen represents a screen that can be navigated to
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Factory builds the screen for a route. It returns nil for unknown routes.
type Factory func(route ui.Route) Screen

// Router manages navigation between screens using a stack-based approach
type Router struct {
	stack   []Screen
	routes  []ui.Route
	factory Factory
	width   int
	height  int
}

// New creates a router showing the root route.
func New(factory Factory, root ui.Route) *Router {
	r := &Router{factory: factory}
	if s := factory(root); s != nil {
		r.stack = []Screen{s}
		r.routes = []ui.Route{root}
	}
	return r
}

// Init initializes the router
func (r *Router) Init() tea.Cmd {
	if current := r.Current(); current != nil {
		return current.Init()
	}
	return nil
}

// Update processes messages and updates the current screen
func (r *Router) Update(msg tea.Msg) (*Router, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.RouterMsg:
		return r, r.Navigate(msg.To)

	case tea.WindowSizeMsg:
		r.SetSize(msg.Width, msg.Height)
		return r, nil

	case tea.KeyMsg:
		if msg.String() == "esc" && r.CanGoBack() {
			return r, r.Pop()
		}

	case ui.FileLoadedMsg, ui.ExportedMsg, ui.ErrorMsg:
		return r, r.broadcast(msg)
	}

	current := r.Current()
	if current == nil {
		return r, nil
	}
	updated, cmd := current.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return r, cmd
}

// broadcast delivers results of background work to every screen on the
// stack, so a load finishing while the logs screen is open is not lost.
func (r *Router) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(r.stack))
	for i, s := range r.stack {
		updated, cmd := s.Update(msg)
		r.stack[i] = updated
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// View renders the current screen
func (r *Router) View() string {
	if current := r.Current(); current != nil {
		return current.View()
	}
	return "No screen available"
}

// SetSize sets the size for the router and current screen
func (r *Router) SetSize(width, height int) {
	r.width = width
	r.height = height
	if current := r.Current(); current != nil {
		current.SetSize(width, height)
	}
}

// Navigate shows route. Navigating to a route already on the stack pops
// back to it, so the dashboard keeps its state.
func (r *Router) Navigate(route ui.Route) tea.Cmd {
	for i := len(r.routes) - 1; i >= 0; i-- {
		if r.routes[i] == route {
			r.stack = r.stack[:i+1]
			r.routes = r.routes[:i+1]
			r.stack[i].SetSize(r.width, r.height)
			return r.stack[i].Init()
		}
	}

	s := r.factory(route)
	if s == nil {
		return nil
	}
	return r.Push(route, s)
}

// Push adds a new screen to the navigation stack
func (r *Router) Push(route ui.Route, screen Screen) tea.Cmd {
	screen.SetSize(r.width, r.height)
	r.stack = append(r.stack, screen)
	r.routes = append(r.routes, route)
	return screen.Init()
}

// Pop removes the current screen from the stack
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil // Can't pop the last screen
	}

	r.stack = r.stack[:len(r.stack)-1]
	r.routes = r.routes[:len(r.routes)-1]

	current := r.Current()
	current.SetSize(r.width, r.height)
	return current.Init()
}

// Current returns the current screen
func (r *Router) Current() Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// CurrentRoute returns the route of the current screen
func (r *Router) CurrentRoute() (ui.Route, bool) {
	if len(r.routes) == 0 {
		return 0, false
	}
	return r.routes[len(r.routes)-1], true
}

// Depth returns the current navigation depth
func (r *Router) Depth() int {
	return len(r.stack)
}

// CanGoBack returns true if there are screens to go back to
func (r *Router) CanGoBack() bool {
	return len(r.stack) > 1
}
