package event

// Signal is a multi-cast event without a payload.
type Signal struct {
	e Event[struct{}]
}

// Subscribe registers fn and returns an id for Unsubscribe.
func (s *Signal) Subscribe(fn func()) int {
	if fn == nil {
		return 0
	}
	return s.e.Subscribe(func(struct{}) { fn() })
}

func (s *Signal) Unsubscribe(id int) { s.e.Unsubscribe(id) }
func (s *Signal) Emit() { s.e.Emit(struct{}{}) }
func (s *Signal) Len() int { return s.e.Len() }

// Event is a multi-cast event carrying one argument. Listeners run in
// subscription order on the emitting goroutine.
type Event[T any] struct {
	next      int
	listeners []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns its id. Ids start at 1; a nil fn is
// ignored and yields 0.
func (e *Event[T]) Subscribe(fn func(T)) int {
	if fn == nil {
		return 0
	}
	e.next++
	e.listeners = append(e.listeners, listener[T]{id: e.next, fn: fn})
	return e.next
}

// Unsubscribe removes the listener with the given id. Unknown ids are ignored.
func (e *Event[T]) Unsubscribe(id int) {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

// Emit calls every listener with arg.
func (e *Event[T]) Emit(arg T) {
	for _, l := range e.listeners {
		l.fn(arg)
	}
}

func (e *Event[T]) Len() int {
	return len(e.listeners)
}
