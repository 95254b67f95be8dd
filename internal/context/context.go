// Package context lets background work outlive the request that started it.
package context

import (
	"context"
	"time"
)

type detached struct {
	parent context.Context
}

// Detach keeps the values of ctx (request id, logger fields) but drops its
// deadline and cancellation. Leave notifications are sent on a detached
// context after the response has been written.
func Detach(ctx context.Context) context.Context {
	return detached{parent: ctx}
}

func (d detached) Deadline() (deadline time.Time, ok bool) {
	return time.Time{}, false
}

func (d detached) Done() <-chan struct{} {
	return nil
}

func (d detached) Err() error {
	return nil
}

func (d detached) Value(key any) any {
	return d.parent.Value(key)
}
