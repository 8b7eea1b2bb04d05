// Package registry keeps track of the closed status and subscribers of countries. Everything
// is kept in memory for the lifetime of the process.
package registry

import (
	"sort"
	"sync"
	"time"
)

// Pusher is implemented by any value that can deliver the current data of a country to a user.
// Registries call it once when a user actually becomes a subscriber
type Pusher interface {
	Push(country string, user string)
}

// PusherFunc adapts a function to the Pusher interface
type PusherFunc func(country string, user string)

// Push calls f(country, user)
func (f PusherFunc) Push(country string, user string) {
	f(country, user)
}

// ChangeListener is invoked with the country code after a change of closed status is committed
type ChangeListener func(country string)

// CountryRecord holds a copy of the state tracked for a country
type CountryRecord struct {
	Closed      bool
	ClosedAt    time.Time
	Subscribers []string
}

// countryState is the internal (mutable) state of a country
type countryState struct {
	closed      bool
	closedAt    time.Time
	subscribers map[string]struct{}
}

// Registry holds the state of all countries seen so far along with the listeners to notify on
// changes. A country never seen is equivalent to an open country with no subscribers
type Registry struct {
	mu        sync.RWMutex
	countries map[string]*countryState
	listeners []ChangeListener
	pusher    Pusher
	now       func() time.Time
}

// Option defines an option for a Registry
type Option func(r *Registry)

// WithPusher sets the Pusher invoked when a user subscribes to a country
func WithPusher(pusher Pusher) Option {
	return func(r *Registry) {
		r.pusher = pusher
	}
}

// WithClock sets the function used to timestamp closed status changes
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// New creates a new empty Registry
func New(options ...Option) (r *Registry) {
	r = new(Registry)
	r.countries = make(map[string]*countryState)
	r.listeners = make([]ChangeListener, 0)
	r.pusher = PusherFunc(func(country string, user string) {})
	r.now = time.Now

	for _, opt := range options {
		opt(r)
	}

	return r
}

// OnChange registers a listener to invoke after every committed change of closed status
func (r *Registry) OnChange(listener ChangeListener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listeners = append(r.listeners, listener)
}

// SetClosed sets the closed status of a country. Setting a status that already holds is a no-op: the
// timestamp isn't updated and listeners aren't notified. Returns true if the status changed
func (r *Registry) SetClosed(country string, closed bool) (changed bool) {
	r.mu.Lock()
	c := r.getOrCreate(country)
	if c.closed == closed {
		r.mu.Unlock()
		return false
	}

	c.closed = closed
	c.closedAt = r.now()

	listeners := make([]ChangeListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, l := range listeners {
		l(country)
	}

	return true
}

// IsClosed returns the closed status of a country (false if the country was never seen)
func (r *Registry) IsClosed(country string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.countries[country]; ok {
		return c.closed
	}

	return false
}

// ClosedAt returns the last time the closed status of a country changed. The second value
// is false if it never changed
func (r *Registry) ClosedAt(country string) (closedAt time.Time, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, exists := r.countries[country]; exists && !c.closedAt.IsZero() {
		return c.closedAt, true
	}

	return time.Time{}, false
}

// SetSubscribed adds or removes a user from the subscribers of a country. When a user
// actually becomes a subscriber, the registry's Pusher is invoked once for that user. Setting a
// subscription that already holds is a no-op. Returns true if the subscription changed
func (r *Registry) SetSubscribed(country string, user string, subscribed bool) (changed bool) {
	r.mu.Lock()

	if subscribed {
		c := r.getOrCreate(country)
		if _, ok := c.subscribers[user]; ok {
			r.mu.Unlock()
			return false
		}

		c.subscribers[user] = struct{}{}
		pusher := r.pusher
		r.mu.Unlock()

		pusher.Push(country, user)
		return true
	}

	defer r.mu.Unlock()

	c, ok := r.countries[country]
	if !ok {
		return false
	}

	if _, ok := c.subscribers[user]; !ok {
		return false
	}

	delete(c.subscribers, user)
	return true
}

// IsSubscribed returns true if the user is subscribed to the country
func (r *Registry) IsSubscribed(country string, user string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.countries[country]
	if !ok {
		return false
	}

	_, ok = c.subscribers[user]
	return ok
}

// Subscribers returns a sorted copy of the subscribers of a country
func (r *Registry) Subscribers(country string) (subscribers []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedSubscribers(r.countries[country])
}

// Record returns a copy of the state of a country
func (r *Registry) Record(country string) (record CountryRecord) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.countries[country]
	if ok {
		record.Closed = c.closed
		record.ClosedAt = c.closedAt
	}
	record.Subscribers = sortedSubscribers(c)

	return record
}

// sortedSubscribers returns the subscribers of a country state (which can be nil) as a sorted slice
func sortedSubscribers(c *countryState) (subscribers []string) {
	subscribers = make([]string, 0)
	if c == nil {
		return subscribers
	}

	for s := range c.subscribers {
		subscribers = append(subscribers, s)
	}

	sort.Strings(subscribers)
	return subscribers
}

// getOrCreate returns the state of a country, creating it if necessary. Must be called
// with the write lock held
func (r *Registry) getOrCreate(country string) (c *countryState) {
	c, ok := r.countries[country]
	if !ok {
		c = &countryState{subscribers: make(map[string]struct{})}
		r.countries[country] = c
	}

	return c
}
