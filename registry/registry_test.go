package registry_test

import (
	"github.com/alexandre-normand/pandemico/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

type push struct {
	country string
	user    string
}

type pushCaptor struct {
	pushes []push
}

func (pc *pushCaptor) Push(country string, user string) {
	pc.pushes = append(pc.pushes, push{country: country, user: user})
}

type changeCaptor struct {
	changes []string
}

func (cc *changeCaptor) onChange(country string) {
	cc.changes = append(cc.changes, country)
}

type tickingClock struct {
	current time.Time
}

func (tc *tickingClock) now() time.Time {
	tc.current = tc.current.Add(time.Minute)
	return tc.current
}

func TestUnknownCountryDefaults(t *testing.T) {
	r := registry.New()

	assert.False(t, r.IsClosed("CA"))
	assert.False(t, r.IsSubscribed("CA", "bob"))
	assert.Empty(t, r.Subscribers("CA"))

	_, ok := r.ClosedAt("CA")
	assert.False(t, ok)

	assert.Equal(t, registry.CountryRecord{Subscribers: []string{}}, r.Record("CA"))
}

func TestReadsDoNotCreateCountries(t *testing.T) {
	r := registry.New()

	r.IsClosed("FR")
	r.IsSubscribed("FR", "bob")
	r.SetSubscribed("FR", "bob", false)

	cc := changeCaptor{}
	r.OnChange(cc.onChange)

	// Opening a country never seen is still a no-op since it's open by default
	assert.False(t, r.SetClosed("FR", false))
	assert.Empty(t, cc.changes)
}

func TestSetClosedNotifiesOnce(t *testing.T) {
	clock := &tickingClock{current: time.Date(2020, time.March, 15, 10, 0, 0, 0, time.UTC)}
	r := registry.New(registry.WithClock(clock.now))
	cc := changeCaptor{}
	r.OnChange(cc.onChange)

	assert.True(t, r.SetClosed("US", true))
	firstClosedAt, ok := r.ClosedAt("US")
	require.True(t, ok)

	assert.False(t, r.SetClosed("US", true))
	closedAt, ok := r.ClosedAt("US")
	require.True(t, ok)

	assert.True(t, r.IsClosed("US"))
	assert.Equal(t, firstClosedAt, closedAt)
	assert.Equal(t, []string{"US"}, cc.changes)
}

func TestSetClosedFlipUpdatesTimestamp(t *testing.T) {
	clock := &tickingClock{current: time.Date(2020, time.March, 15, 10, 0, 0, 0, time.UTC)}
	r := registry.New(registry.WithClock(clock.now))
	cc := changeCaptor{}
	r.OnChange(cc.onChange)

	r.SetClosed("IT", true)
	closedAt, _ := r.ClosedAt("IT")
	assert.Equal(t, time.Date(2020, time.March, 15, 10, 1, 0, 0, time.UTC), closedAt)

	r.SetClosed("IT", false)
	openedAt, _ := r.ClosedAt("IT")
	assert.Equal(t, time.Date(2020, time.March, 15, 10, 2, 0, 0, time.UTC), openedAt)

	assert.False(t, r.IsClosed("IT"))
	assert.Equal(t, []string{"IT", "IT"}, cc.changes)
}

func TestAllListenersNotified(t *testing.T) {
	r := registry.New()
	first := changeCaptor{}
	second := changeCaptor{}
	r.OnChange(first.onChange)
	r.OnChange(second.onChange)

	r.SetClosed("ES", true)

	assert.Equal(t, []string{"ES"}, first.changes)
	assert.Equal(t, []string{"ES"}, second.changes)
}

func TestListenerCanReadRegistry(t *testing.T) {
	r := registry.New()
	var closedSeen bool
	r.OnChange(func(country string) {
		closedSeen = r.IsClosed(country)
	})

	r.SetClosed("DE", true)

	assert.True(t, closedSeen)
}

func TestSubscribeUnsubscribe(t *testing.T) {
	pc := pushCaptor{}
	r := registry.New(registry.WithPusher(&pc))

	assert.True(t, r.SetSubscribed("US", "alice", true))
	assert.True(t, r.IsSubscribed("US", "alice"))

	assert.True(t, r.SetSubscribed("US", "alice", false))
	assert.False(t, r.IsSubscribed("US", "alice"))

	assert.False(t, r.SetSubscribed("US", "alice", false))
	assert.False(t, r.IsSubscribed("US", "alice"))
}

func TestSubscribePushesOnlyOnChange(t *testing.T) {
	pc := pushCaptor{}
	r := registry.New(registry.WithPusher(&pc))
	cc := changeCaptor{}
	r.OnChange(cc.onChange)

	r.SetSubscribed("US", "alice", true)
	r.SetSubscribed("US", "alice", true)

	assert.Equal(t, []push{{country: "US", user: "alice"}}, pc.pushes)
	assert.Equal(t, []string{"alice"}, r.Subscribers("US"))
	assert.Empty(t, cc.changes)
}

func TestSubscribersSortedAndUnique(t *testing.T) {
	r := registry.New()

	r.SetSubscribed("BR", "carol", true)
	r.SetSubscribed("BR", "alice", true)
	r.SetSubscribed("BR", "bob", true)
	r.SetSubscribed("BR", "alice", true)

	assert.Equal(t, []string{"alice", "bob", "carol"}, r.Subscribers("BR"))
	assert.Empty(t, r.Subscribers("AR"))
}

func TestRecordIsACopy(t *testing.T) {
	clock := &tickingClock{current: time.Date(2020, time.April, 1, 8, 0, 0, 0, time.UTC)}
	r := registry.New(registry.WithClock(clock.now))

	r.SetSubscribed("JP", "alice", true)
	r.SetClosed("JP", true)

	record := r.Record("JP")
	record.Subscribers[0] = "mallory"

	assert.Equal(t, registry.CountryRecord{Closed: true, ClosedAt: time.Date(2020, time.April, 1, 8, 1, 0, 0, time.UTC), Subscribers: []string{"alice"}}, r.Record("JP"))
}

func TestScenario(t *testing.T) {
	pc := pushCaptor{}
	clock := &tickingClock{current: time.Date(2020, time.March, 20, 9, 0, 0, 0, time.UTC)}
	r := registry.New(registry.WithPusher(&pc), registry.WithClock(clock.now))

	broadcasts := make([]push, 0)
	r.OnChange(func(country string) {
		for _, s := range r.Subscribers(country) {
			broadcasts = append(broadcasts, push{country: country, user: s})
		}
	})

	r.SetSubscribed("US", "alice", true)
	assert.True(t, r.IsSubscribed("US", "alice"))
	assert.Equal(t, []push{{country: "US", user: "alice"}}, pc.pushes)

	r.SetClosed("US", true)
	assert.True(t, r.IsClosed("US"))
	assert.Equal(t, []push{{country: "US", user: "alice"}}, broadcasts)
	closedAt, _ := r.ClosedAt("US")

	r.SetClosed("US", true)
	assert.Len(t, broadcasts, 1)
	again, _ := r.ClosedAt("US")
	assert.Equal(t, closedAt, again)

	r.SetSubscribed("US", "alice", false)
	assert.False(t, r.IsSubscribed("US", "alice"))
	assert.Len(t, pc.pushes, 1)
}
