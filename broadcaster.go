package pandemico

import (
	"context"
	"sync"
	"time"
)

// pushFunc delivers the current data of a country to a user
type pushFunc func(ctx context.Context, country string, user string) (err error)

// subscribersFunc returns the current subscribers of a country
type subscribersFunc func(country string) (subscribers []string)

// broadcaster delivers country data to users asynchronously. Every delivery runs on its own goroutine
// with its own timeout so that a slow or failing delivery never holds back the others
type broadcaster struct {
	push        pushFunc
	subscribers subscribersFunc
	timeout     time.Duration
	log         SLogger
	ins         *instrumenter

	inFlight sync.WaitGroup
}

// Push implements registry.Pusher and delivers the data of a country to a new subscriber
func (b *broadcaster) Push(country string, user string) {
	b.deliver(pushReasonSubscribe, country, user)
}

// notifySubscribers delivers the data of a country to each of its current subscribers. It is registered
// as a registry.ChangeListener
func (b *broadcaster) notifySubscribers(country string) {
	subscribers := b.subscribers(country)
	b.log.Debugf("Broadcasting change of [%s] to %d subscriber(s)", country, len(subscribers))

	for _, user := range subscribers {
		b.deliver(pushReasonChange, country, user)
	}
}

func (b *broadcaster) deliver(reason string, country string, user string) {
	b.inFlight.Add(1)

	go func() {
		defer b.inFlight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()

		since := time.Now()
		err := b.push(ctx, country, user)
		b.ins.pushed(ctx, reason, since, err)

		if err != nil {
			b.log.Printf("Error pushing [%s] data to [%s] on %s: %v", country, user, reason, err)
		}
	}()
}

// wait blocks until all in-flight deliveries are done
func (b *broadcaster) wait() {
	b.inFlight.Wait()
}
