package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/client"
	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/logging"
)

// ErrValidation is returned by AddLocal for a structurally invalid draft.
var ErrValidation = fmt.Errorf("invalid draft: %w", common.ErrValidation)

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock replaces time.Now, which stamps LastFetched and seeds local ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

type Store struct {
	dir    client.Directory
	logger logging.Logger
	now    func() time.Time

	mu          sync.Mutex
	state       State
	lastLocalID int64
	fetchSeq    uint64
	cancelFetch context.CancelFunc

	subMu  sync.Mutex
	subSeq int
	subs   map[int]func(State)

	// pending holds published states in mutation order until delivered.
	pubMu    sync.Mutex
	pending  []State
	draining bool
}

func New(dir client.Directory, opts ...Option) *Store {
	s := &Store{
		dir:    dir,
		logger: logging.Nop(),
		now:    time.Now,
		subs:   make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("module", "store")
	return s
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to receive every state published after a
// mutation. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subSeq++
	id := s.subSeq
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// enqueue must be called with mu held, so the queue order is the order in
// which mutations were applied.
func (s *Store) enqueue() {
	st := s.state.clone()
	s.pubMu.Lock()
	s.pending = append(s.pending, st)
	s.pubMu.Unlock()
}

// publish delivers queued states to subscribers one at a time. When another
// goroutine is already delivering, it picks up the queued states as well and
// publish returns at once.
func (s *Store) publish() {
	s.pubMu.Lock()
	if s.draining {
		s.pubMu.Unlock()
		return
	}
	s.draining = true
	for len(s.pending) > 0 {
		st := s.pending[0]
		s.pending[0] = State{}
		s.pending = s.pending[1:]
		s.pubMu.Unlock()

		s.deliver(st)

		s.pubMu.Lock()
	}
	s.pending = nil
	s.draining = false
	s.pubMu.Unlock()
}

func (s *Store) deliver(st State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(st.clone())
	}
}

// FetchAll loads the full collection from the directory.
//
// Without force, a non-empty collection is a cache hit and nothing happens.
// On failure the error is recorded in State.Error and the users already held
// are kept.
func (s *Store) FetchAll(ctx context.Context, force bool) {
	s.mu.Lock()
	if n := len(s.state.Users); !force && n > 0 {
		s.mu.Unlock()
		s.logger.Debug(ctx, "fetch skipped, collection cached", "count", n)
		return
	}

	if s.cancelFetch != nil {
		s.cancelFetch()
	}
	// Only a newer fetch cancels this one. The collection is shared, so a
	// caller going away must not abort the load for everyone else.
	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.fetchSeq++
	seq := s.fetchSeq
	s.cancelFetch = cancel

	s.state.Loading = true
	s.state.Error = ""
	s.enqueue()
	s.mu.Unlock()

	defer cancel()
	s.publish()

	start := s.now()
	users, err := s.dir.FetchCollection(fetchCtx)

	s.mu.Lock()
	if seq != s.fetchSeq {
		s.mu.Unlock()
		s.logger.Debug(ctx, "fetch superseded, result discarded", "seq", seq)
		return
	}
	s.cancelFetch = nil
	s.state.Loading = false
	if err != nil {
		s.state.Error = client.Describe(err)
	} else {
		s.state.Users = make([]models.User, len(users))
		copy(s.state.Users, users)
		s.state.Error = ""
		s.state.LastFetched = s.now()
	}
	n := len(s.state.Users)
	s.enqueue()
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn(ctx, "fetch failed", "error", err, "kept", n)
	} else {
		s.logger.Info(ctx, "users fetched", "count", n, "took", s.now().Sub(start))
	}
	s.publish()
}

// AddLocal creates a client-only user from d and puts it first in the list.
func (s *Store) AddLocal(d models.Draft) (models.User, error) {
	switch {
	case strings.TrimSpace(d.Name) == "":
		return models.User{}, fmt.Errorf("%w: name is required", ErrValidation)
	case strings.TrimSpace(d.Email) == "":
		return models.User{}, fmt.Errorf("%w: email is required", ErrValidation)
	}

	s.mu.Lock()
	u := models.NewLocalUser(s.nextLocalID(), d)
	users := make([]models.User, 0, len(s.state.Users)+1)
	users = append(users, u)
	s.state.Users = append(users, s.state.Users...)
	s.enqueue()
	s.mu.Unlock()

	s.logger.Info(context.Background(), "local user added", "id", u.ID)
	s.publish()
	return u, nil
}

// nextLocalID must be called with mu held. Ids grow monotonically from the
// current Unix time in milliseconds and skip ids already in the list.
func (s *Store) nextLocalID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastLocalID {
		id = s.lastLocalID + 1
	}
	for s.indexOf(id) >= 0 {
		id++
	}
	s.lastLocalID = id
	return id
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id int64) int {
	for i := range s.state.Users {
		if s.state.Users[i].ID == id {
			return i
		}
	}
	return -1
}

// Update replaces the user with the same id, keeping its position.
// It reports false and changes nothing when the id is unknown.
func (s *Store) Update(u models.User) bool {
	s.mu.Lock()
	i := s.indexOf(u.ID)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Debug(context.Background(), "update ignored, unknown id", "id", u.ID)
		return false
	}
	users := make([]models.User, len(s.state.Users))
	copy(users, s.state.Users)
	users[i] = u
	s.state.Users = users
	s.enqueue()
	s.mu.Unlock()

	s.publish()
	return true
}

// Remove deletes the user with the given id. Removing an absent id is a
// no-op that reports false.
func (s *Store) Remove(id int64) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	users := make([]models.User, 0, len(s.state.Users)-1)
	users = append(users, s.state.Users[:i]...)
	s.state.Users = append(users, s.state.Users[i+1:]...)
	s.enqueue()
	s.mu.Unlock()

	s.logger.Info(context.Background(), "user removed", "id", id)
	s.publish()
	return true
}

// Find returns the user with the given id from the collection.
func (s *Store) Find(id int64) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.state.Users[i], true
	}
	return models.User{}, false
}

// Detail returns the user with the given id. Users held in the collection
// are served from it, so local users and local edits are visible; other ids
// are read from the directory. Failures end up in Detail.Error.
func (s *Store) Detail(ctx context.Context, id int64) Detail {
	if u, ok := s.Find(id); ok {
		return Detail{User: &u, Cached: true}
	}

	u, err := s.dir.FetchByID(ctx, id)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "user lookup failed", "id", id, "error", err)
		}
		return Detail{Error: client.DescribeWith(err, client.FallbackUserMessage), Err: err}
	}
	return Detail{User: u}
}
