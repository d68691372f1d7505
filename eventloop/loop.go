// Package eventloop runs readiness callbacks and posted work on one
// goroutine.
//
// Each subscribed source gets a forwarding goroutine that waits on its
// Ready channel. The loop goroutine picks up whatever was forwarded and
// calls the subscriber back, so callbacks never run concurrently with each
// other or with posted functions.
package eventloop

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/riking/joycon/joycond/jcpc"
)

// ErrStopped is returned when work is handed to a loop that is no longer
// running.
var ErrStopped = errors.New("event loop stopped")

type firing struct {
	sub *jcpc.Subscriber
	src jcpc.Source
}

type Loop struct {
	firings chan firing
	calls   chan func()
	done    chan struct{}

	mu   sync.Mutex
	subs map[*jcpc.Subscriber]chan struct{}
}

var _ jcpc.Multiplexer = &Loop{}

func New() *Loop {
	return &Loop{
		firings: make(chan firing),
		calls:   make(chan func(), 16),
		done:    make(chan struct{}),
		subs:    make(map[*jcpc.Subscriber]chan struct{}),
	}
}

// AddSubscriber starts delivering readiness of s.Sources to s.Callback.
// Adding the same subscriber twice has no effect.
func (l *Loop) AddSubscriber(s *jcpc.Subscriber) {
	stop := make(chan struct{})
	l.mu.Lock()
	if _, ok := l.subs[s]; ok {
		l.mu.Unlock()
		return
	}
	l.subs[s] = stop
	l.mu.Unlock()

	for _, src := range s.Sources {
		go l.forward(s, src, stop)
	}
}

// RemoveSubscriber stops delivery to s. When called on the loop goroutine,
// no callback for s runs afterwards, even for readiness already forwarded.
func (l *Loop) RemoveSubscriber(s *jcpc.Subscriber) {
	l.mu.Lock()
	stop, ok := l.subs[s]
	delete(l.subs, s)
	l.mu.Unlock()

	if ok {
		close(stop)
	}
}

func (l *Loop) active(s *jcpc.Subscriber) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.subs[s]
	return ok
}

func (l *Loop) forward(s *jcpc.Subscriber, src jcpc.Source, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case _, ok := <-src.Ready():
			if !ok {
				return
			}
			select {
			case l.firings <- firing{sub: s, src: src}:
			case <-stop:
				return
			}
		}
	}
}

// Post queues f to run on the loop goroutine. It must not be called from
// the loop goroutine itself, since it can block until the loop catches up.
func (l *Loop) Post(f func()) error {
	select {
	case <-l.done:
		return ErrStopped
	default:
	}
	select {
	case l.calls <- f:
		return nil
	case <-l.done:
		return ErrStopped
	}
}

// Call runs f on the loop goroutine and waits for it to finish.
func (l *Loop) Call(ctx context.Context, f func()) error {
	finished := make(chan struct{})
	err := l.Post(func() {
		defer close(finished)
		f()
	})
	if err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run dispatches until ctx is cancelled. All subscriptions are dropped when
// it returns.
func (l *Loop) Run(ctx context.Context) error {
	defer l.shutdown()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.calls:
			f()
		case fr := <-l.firings:
			if l.active(fr.sub) {
				fr.sub.Callback(fr.src)
			}
		}
	}
}

func (l *Loop) shutdown() {
	close(l.done)

	l.mu.Lock()
	subs := l.subs
	l.subs = make(map[*jcpc.Subscriber]chan struct{})
	l.mu.Unlock()

	for _, stop := range subs {
		close(stop)
	}
}
