package flow

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sampark-health/sampark/internal/models"
	"github.com/sampark-health/sampark/internal/store"
)

// Engine processes one inbound message end to end: profile lookup or
// creation, onboarding transition or menu dispatch, persistence, and the
// periodic hydration nudge.
//
// Turns for the same identity are serialized with a per-identity lock so
// that racing messages cannot interleave their read-modify-write on the
// profile record. Distinct identities proceed in parallel.
type Engine struct {
	store      store.Store
	dispatcher *Dispatcher
	pickTip    func() string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewEngine creates an Engine over the given store and dispatcher.
func NewEngine(st store.Store, dispatcher *Dispatcher) *Engine {
	slog.Debug("Creating flow Engine", "hasStore", st != nil, "hasDispatcher", dispatcher != nil)
	return &Engine{
		store:      st,
		dispatcher: dispatcher,
		pickTip:    RandomHydrationTip,
		locks:      make(map[string]*sync.Mutex),
	}
}

// identityLock returns the mutex serializing turns for one identity.
func (e *Engine) identityLock(identity string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[identity]
	if !ok {
		l = &sync.Mutex{}
		e.locks[identity] = l
	}
	return l
}

// HandleMessage processes one turn for the given identity and returns the
// reply segments. It always returns at least one segment: storage failures
// degrade to a single "try again" reply rather than an error, so the caller
// can uphold the always-reply contract.
func (e *Engine) HandleMessage(ctx context.Context, identity, text string) ([]string, error) {
	if identity == "" {
		return nil, models.ErrEmptyIdentity
	}

	lock := e.identityLock(identity)
	lock.Lock()
	defer lock.Unlock()

	profile, err := e.store.GetOrCreateProfile(identity)
	if err != nil {
		slog.Error("Engine HandleMessage profile lookup failed", "error", err, "identity", identity)
		return []string{StoreUnavailableMessage}, nil
	}

	stateAtStart := profile.State
	checkinsBefore := profile.Checkins
	profile.MessageCount++
	input := strings.TrimSpace(text)

	var segments []string
	if stateAtStart.IsReady() {
		segments = e.dispatcher.Dispatch(ctx, profile, input)
	} else {
		segments = []string{Advance(profile, input)}
	}

	// Periodic hydration nudge: every second message once onboarded, except
	// on check-in turns (they already carry a tip) and the menu itself.
	lc := strings.ToLower(input)
	if stateAtStart.IsReady() && profile.MessageCount%2 == 0 && !IsCheckinSynonym(lc) && lc != "menu" && lc != "3" {
		segments = append(segments, e.pickTip())
	}

	if err := e.store.SaveProfile(*profile); err != nil {
		slog.Error("Engine HandleMessage save failed", "error", err, "identity", identity)
		return []string{StoreUnavailableMessage}, nil
	}

	e.logTurn(identity, input, segments, profile.Checkins > checkinsBefore)

	slog.Debug("Engine HandleMessage succeeded", "identity", identity,
		"stateBefore", stateAtStart, "stateAfter", profile.State, "segments", len(segments))
	return segments, nil
}

// logTurn records the inbound message and reply segments in the engagement
// log. Logging failures are reported but never fail the turn.
func (e *Engine) logTurn(identity, input string, segments []string, checkedIn bool) {
	now := time.Now()
	events := []models.EngagementEvent{
		{ID: uuid.NewString(), Phone: identity, Kind: models.EventInbound, Body: input, Time: now},
	}
	for _, seg := range segments {
		events = append(events, models.EngagementEvent{
			ID: uuid.NewString(), Phone: identity, Kind: models.EventReply, Body: seg, Time: now,
		})
	}
	if checkedIn {
		events = append(events, models.EngagementEvent{
			ID: uuid.NewString(), Phone: identity, Kind: models.EventCheckin, Time: now,
		})
	}
	for _, ev := range events {
		if err := e.store.AddEvent(ev); err != nil {
			slog.Warn("Engine logTurn event write failed", "error", err, "identity", identity, "kind", ev.Kind)
			return
		}
	}
}
