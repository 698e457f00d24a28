package access

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/hrsystem/hr-console/internal/service"
)

// State is the outcome of one access evaluation.
type State int

const (
	// StateUnresolved means session resolution has not started; render a
	// neutral loading view, no protected content, no redirect yet.
	StateUnresolved State = iota
	// StateResolving means an identity fetch is in flight; same rendering
	// rules as StateUnresolved.
	StateResolving
	// StateGranted allows the route to render.
	StateGranted
	// StateDeniedRedirectLogin redirects to the login route.
	StateDeniedRedirectLogin
	// StateDeniedRedirectHome redirects to the default route.
	StateDeniedRedirectHome
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateResolving:
		return "resolving"
	case StateGranted:
		return "granted"
	case StateDeniedRedirectLogin:
		return "denied-redirect-login"
	case StateDeniedRedirectHome:
		return "denied-redirect-home"
	default:
		return "unknown"
	}
}

// Decision is the result of evaluating one navigation attempt.
type Decision struct {
	State State
	// Route is the rule path the decision applies to.
	Route string
	// RedirectTo is set for the two denied states.
	RedirectTo string
}

// Decide is the pure gate: Granted iff a session token exists and the rule
// has no role restriction or the identity's role is a member. It never
// redirects while resolution is pending.
func Decide(snap service.Snapshot, rule Rule) State {
	switch snap.Phase {
	case service.PhaseUnresolved:
		return StateUnresolved
	case service.PhaseResolving:
		return StateResolving
	}
	if !snap.LoggedIn() {
		return StateDeniedRedirectLogin
	}
	if len(rule.Allowed) == 0 {
		return StateGranted
	}
	if snap.Identity != nil && rule.Allows(snap.Identity.Role) {
		return StateGranted
	}
	return StateDeniedRedirectHome
}

// Controller evaluates navigation attempts against the rule table and the
// live session. It re-evaluates on every navigation and on every session
// change; a logout while on a protected route revokes access on the next
// read of Current.
type Controller struct {
	rules  []Rule
	logger *slog.Logger

	mu         sync.Mutex
	snap       service.Snapshot
	route      string // current rule path, empty before first grant
	remembered string // requested route to resume after the next login
}

// ControllerOptions groups dependencies for Controller.
type ControllerOptions struct {
	Sessions *service.SessionService
	// Rules defaults to DefaultRules().
	Rules  []Rule
	Logger *slog.Logger
}

// NewController constructs a Controller subscribed to session changes.
func NewController(opts ControllerOptions) (*Controller, error) {
	if opts.Sessions == nil {
		return nil, errors.New("session service is required")
	}
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Controller{
		rules:  rules,
		logger: logger,
		snap:   opts.Sessions.Current(),
	}
	opts.Sessions.Subscribe(c.onSessionChange)
	return c, nil
}

// Rules returns the ordered rule table.
func (c *Controller) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Navigate evaluates a navigation attempt to path. The root path resolves to
// the first route the identity may see; unknown paths redirect home. A
// login-denied attempt remembers the requested route so the next successful
// login can resume to it.
func (c *Controller) Navigate(path string) Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.snap
	if path == "" || path == "/" {
		path = c.defaultPathLocked(snap)
		if path == "" {
			// Nothing visible yet; treat as a protected root attempt.
			return c.decideLocked(snap, Rule{Path: "/"})
		}
	}

	rule, ok := c.findRule(path)
	if !ok {
		c.logger.Debug("unknown route", slog.String("path", path))
		return Decision{State: StateDeniedRedirectHome, Route: path, RedirectTo: "/"}
	}
	return c.decideLocked(snap, rule)
}

// Current re-evaluates the route of the last granted navigation against the
// present session state.
func (c *Controller) Current() Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.route == "" {
		return c.decideLocked(c.snap, Rule{Path: "/"})
	}
	rule, ok := c.findRule(c.route)
	if !ok {
		return Decision{State: StateDeniedRedirectHome, Route: c.route, RedirectTo: "/"}
	}
	return c.decideLocked(c.snap, rule)
}

// AfterLogin returns the route to land on after a successful login: the
// remembered route when one was denied earlier (consumed exactly once),
// otherwise the default route for the identity.
func (c *Controller) AfterLogin() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.remembered != "" {
		path := c.remembered
		c.remembered = ""
		if rule, ok := c.findRule(path); ok && Decide(c.snap, rule) == StateGranted {
			return path
		}
	}
	return c.defaultPathLocked(c.snap)
}

// DefaultPath returns the first rule path the identity is allowed to see,
// in declaration order.
func (c *Controller) DefaultPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.defaultPathLocked(c.snap)
}

func (c *Controller) onSessionChange(snap service.Snapshot) {
	c.mu.Lock()
	c.snap = snap
	if !snap.LoggedIn() && snap.Phase == service.PhaseSettled {
		c.route = ""
	}
	c.mu.Unlock()
}

func (c *Controller) decideLocked(snap service.Snapshot, rule Rule) Decision {
	state := Decide(snap, rule)
	d := Decision{State: state, Route: rule.Path}
	switch state {
	case StateGranted:
		c.route = rule.Path
	case StateDeniedRedirectLogin:
		if rule.Path != "" && rule.Path != "/" {
			c.remembered = rule.Path
		}
		d.RedirectTo = LoginPath
	case StateDeniedRedirectHome:
		d.RedirectTo = "/"
	}
	return d
}

func (c *Controller) defaultPathLocked(snap service.Snapshot) string {
	if snap.Identity == nil {
		return ""
	}
	for _, rule := range c.rules {
		if rule.Allows(snap.Identity.Role) {
			return rule.Path
		}
	}
	return ""
}

func (c *Controller) findRule(path string) (Rule, bool) {
	for _, rule := range c.rules {
		if rule.Path == path {
			return rule, true
		}
	}
	return Rule{}, false
}
