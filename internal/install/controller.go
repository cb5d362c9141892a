package install

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// State of the install prompt
type State string

const (
	StateIdle      State = "idle"
	StateCaptured  State = "captured"
	StateAccepted  State = "accepted"
	StateDismissed State = "dismissed"
)

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// Outcome is the user's answer to the prompt
type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeDismissed Outcome = "dismissed"
)

// ErrNoPrompt is returned by Trigger when no signal has been captured
var ErrNoPrompt = errors.New("no install prompt available")

// Signal is a deferred installability prompt raised by the platform
type Signal interface {
	// PreventDefault suppresses the platform's own prompt
	PreventDefault()
	// Prompt shows the prompt to the user
	Prompt(ctx context.Context) error
	// UserChoice waits for the user's answer; it resolves once
	UserChoice(ctx context.Context) (Outcome, error)
}

// Controller moves Idle -> Captured -> Accepted|Dismissed -> Idle
type Controller struct {
	mu        sync.Mutex
	state     State
	signal    Signal
	listeners []func(State)
}

// NewController creates an idle controller
func NewController() *Controller {
	return &Controller{state: StateIdle}
}

// OnChange registers a listener called after every state change
func (c *Controller) OnChange(listener func(State)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, listener)
	c.mu.Unlock()
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Available reports whether Trigger would show a prompt
func (c *Controller) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.signal != nil
}

// Capture suppresses the platform prompt and keeps the signal for later.
// A newer signal replaces an unresolved one.
func (c *Controller) Capture(signal Signal) {
	if signal == nil {
		return
	}
	signal.PreventDefault()

	c.mu.Lock()
	c.signal = signal
	c.mu.Unlock()

	log.Printf("Install prompt captured")
	c.setState(StateCaptured)
}

// Trigger shows the captured prompt and waits for the answer. The signal is
// discarded afterwards whatever happens.
func (c *Controller) Trigger(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	signal := c.signal
	c.signal = nil
	c.mu.Unlock()

	if signal == nil {
		return "", ErrNoPrompt
	}

	outcome, err := c.prompt(ctx, signal)
	if err != nil {
		log.Printf("Install prompt failed: %v", err)
		c.settle()
		return "", err
	}

	log.Printf("Install prompt outcome: %s", outcome)
	if outcome == OutcomeAccepted {
		c.setState(StateAccepted)
	} else {
		c.setState(StateDismissed)
	}
	c.settle()
	return outcome, nil
}

func (c *Controller) prompt(ctx context.Context, signal Signal) (Outcome, error) {
	if err := signal.Prompt(ctx); err != nil {
		return "", fmt.Errorf("show install prompt: %w", err)
	}
	outcome, err := signal.UserChoice(ctx)
	if err != nil {
		return "", fmt.Errorf("await install choice: %w", err)
	}
	if outcome != OutcomeAccepted {
		outcome = OutcomeDismissed
	}
	return outcome, nil
}

// settle returns to Idle, or to Captured if a newer signal arrived meanwhile
func (c *Controller) settle() {
	c.mu.Lock()
	next := StateIdle
	if c.signal != nil {
		next = StateCaptured
	}
	c.mu.Unlock()
	c.setState(next)
}

func (c *Controller) setState(state State) {
	c.mu.Lock()
	c.state = state
	listeners := append(([]func(State))(nil), c.listeners...)
	c.mu.Unlock()

	for _, listener := range listeners {
		listener(state)
	}
}
