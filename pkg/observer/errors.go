package observer

import "errors"

// ErrObserverPanic wraps the recovered value when a registered observer
// panics while handling an event. Manager.Notify recovers it per observer
// goroutine so one misbehaving observer can't take down another or the
// network call that triggered the event.
var ErrObserverPanic = errors.New("observer panic")
