package favorites

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// RetryPolicy bounds the empty-result retry during a refresh. Attempts is
// the total number of fetches per load cycle; Delay separates them.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryPolicy performs exactly one delayed retry before accepting
// an empty list as authoritative. This absorbs read-after-write lag in
// the backing store without looping.
var DefaultRetryPolicy = RetryPolicy{Attempts: 2, Delay: 250 * time.Millisecond}

// Syncer keeps a local favorites set in sync with server truth across
// login, logout, navigation, and concurrent mutation.
//
// Concurrency model: multiple Refresh calls may be in flight at once
// (navigation and login can fire close together). Each load takes the
// next value of a monotonic sequence number when it starts; a load may
// only commit while it is still the newest. A superseded load is not
// aborted, merely discarded on completion, so an old in-flight response
// can never overwrite a newer one.
type Syncer struct {
	api   API
	store CacheStore
	retry RetryPolicy
	log   zerolog.Logger

	// OnPushError is invoked when an optimistic toggle fails server-side.
	// The local state is not rolled back; the next refresh is the
	// correction mechanism.
	OnPushError func(animalID string, err error)

	mu          sync.Mutex
	seq         uint64
	principalID string
	local       map[string]struct{}
	dirty       bool // a toggle happened since the last committed refresh
	lastErr     error
}

func NewSyncer(api API, store CacheStore, retry RetryPolicy, log zerolog.Logger) *Syncer {
	if retry.Attempts <= 0 {
		retry = DefaultRetryPolicy
	}
	return &Syncer{
		api:   api,
		store: store,
		retry: retry,
		log:   log,
		local: make(map[string]struct{}),
	}
}

// SetPrincipal switches the cache partition after a login. The previous
// principal's set becomes unreachable; the new partition's cached
// snapshot is shown until the next refresh commits.
func (s *Syncer) SetPrincipal(ctx context.Context, principalID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.principalID == principalID {
		return
	}
	s.seq++ // in-flight loads for the old principal may no longer commit
	s.principalID = principalID
	s.dirty = false
	s.lastErr = nil
	s.loadSnapshotLocked(ctx)
}

// Logout synchronously clears the favorites view for the outgoing
// principal, then switches to the guest partition. This runs before any
// new reconciliation begins.
func (s *Syncer) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.principalID = ""
	s.local = make(map[string]struct{})
	s.dirty = false
	s.lastErr = nil
	s.loadSnapshotLocked(ctx)
}

// loadSnapshotLocked primes the local view from the cache partition.
// A store failure leaves the view empty; the server remains the truth.
func (s *Syncer) loadSnapshotLocked(ctx context.Context) {
	s.local = make(map[string]struct{})
	ids, err := s.store.Get(ctx, CacheKey(s.principalID))
	if err != nil {
		s.log.Warn().Err(err).Msg("favorites cache read failed")
		return
	}
	for _, id := range ids {
		s.local[id] = struct{}{}
	}
}

// Toggle flips the favorite state of an animal locally, persists the new
// snapshot to the cache, and pushes the mutation to the server
// asynchronously. The local flip is immediate; a failed push is reported
// through OnPushError and deliberately not rolled back. The push outlives
// the caller's context: navigating away right after a tap must not abort
// the mutation mid-flight.
func (s *Syncer) Toggle(ctx context.Context, animalID string) bool {
	s.mu.Lock()
	_, had := s.local[animalID]
	if had {
		delete(s.local, animalID)
	} else {
		s.local[animalID] = struct{}{}
	}
	s.dirty = true
	s.persistLocked(ctx)
	s.mu.Unlock()

	pushCtx := context.WithoutCancel(ctx)
	go func() {
		var err error
		if had {
			err = s.api.Remove(pushCtx, animalID)
		} else {
			err = s.api.Add(pushCtx, animalID)
		}
		if err != nil {
			pushFailuresTotal.Inc()
			s.log.Error().Err(err).Str("animal_id", animalID).Msg("favorite push failed")
			if s.OnPushError != nil {
				s.OnPushError(animalID, err)
			}
		}
	}()

	return !had
}

// Refresh reconciles the local set against server truth. An empty result
// is retried once after the policy delay when the session has local
// reason to expect favorites; a second empty result is accepted as truth.
// Transient errors leave the previous snapshot untouched.
func (s *Syncer) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	mySeq := s.seq
	expectNonEmpty := len(s.local) > 0 || s.dirty
	s.mu.Unlock()

	ids, err := s.fetch(ctx, expectNonEmpty)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq != mySeq {
		// A newer load started while this one was in flight; its result
		// wins regardless of completion order.
		syncLoadsTotal.WithLabelValues("stale_discarded").Inc()
		return nil
	}

	if err != nil {
		s.lastErr = err
		syncLoadsTotal.WithLabelValues("error").Inc()
		return err
	}

	s.local = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.local[id] = struct{}{}
	}
	s.dirty = false
	s.lastErr = nil
	s.persistLocked(ctx)
	syncLoadsTotal.WithLabelValues("committed").Inc()
	return nil
}

// OnNavigate re-runs reconciliation when a favorites-dependent view is
// entered.
func (s *Syncer) OnNavigate(ctx context.Context) error {
	return s.Refresh(ctx)
}

// fetch performs the bounded-attempt load cycle.
func (s *Syncer) fetch(ctx context.Context, expectNonEmpty bool) ([]string, error) {
	var ids []string
	var err error
	for attempt := 1; ; attempt++ {
		ids, err = s.api.List(ctx)
		if err != nil || len(ids) > 0 || !expectNonEmpty || attempt >= s.retry.Attempts {
			return ids, err
		}

		syncLoadsTotal.WithLabelValues("retried").Inc()
		timer := time.NewTimer(s.retry.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (s *Syncer) persistLocked(ctx context.Context) {
	ids := make([]string, 0, len(s.local))
	for id := range s.local {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if err := s.store.Put(ctx, CacheKey(s.principalID), ids); err != nil {
		s.log.Warn().Err(err).Msg("favorites cache write failed")
	}
}

// Has reports whether an animal is in the local set.
func (s *Syncer) Has(animalID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.local[animalID]
	return ok
}

// List returns the local set, sorted for stable display.
func (s *Syncer) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.local))
	for id := range s.local {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the size of the local set.
func (s *Syncer) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.local)
}

// Err returns the error state of the last completed refresh, nil after a
// successful commit.
func (s *Syncer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
