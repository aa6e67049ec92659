// Package handler implements the listener fan-out for semantic events.
package handler

import (
	"errors"
	"reflect"
	"sync"

	"github.com/starshine-sys/guildmirror/common/log"
)

// Handler fans a semantic event out to every listener registered for its
// type. Listeners are called synchronously, in registration order, so the
// order they observe events in is the order the session emitted them in.
type Handler struct {
	mu       sync.RWMutex
	handlers []handler

	// HandlePanic, if non-nil, is called with the event and the recovered
	// value when a listener panics. The panic never propagates either way.
	HandlePanic func(ev interface{}, recovered interface{})
}

// New creates a new Handler.
func New() *Handler {
	return &Handler{}
}

// Call calls every listener registered for the event's type.
// A panicking listener does not stop the remaining listeners from running.
func (h *Handler) Call(ev interface{}) {
	evV := reflect.ValueOf(ev)
	evT := evV.Type()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, entry := range h.handlers {
		if entry.not(evT) {
			continue
		}

		h.call(entry, evV)
	}
}

func (h *Handler) call(hn handler, ev reflect.Value) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("panic in listener for %s: %v", hn.event, r)

			if h.HandlePanic != nil {
				h.HandlePanic(ev.Interface(), r)
			}
		}
	}()

	hn.call(ev)
}

// AddHandler adds the given function listener.
// fn must be a func taking a single pointer argument and returning nothing;
// anything else panics, as that is always a programming error.
func (h *Handler) AddHandler(fn interface{}) {
	handler, err := newHandler(fn)
	if err != nil {
		panic(err)
	}

	h.mu.Lock()
	h.handlers = append(h.handlers, handler)
	h.mu.Unlock()
}

type handler struct {
	event    reflect.Type
	callback reflect.Value
}

func newHandler(fn interface{}) (handler, error) {
	fnV := reflect.ValueOf(fn)
	fnT := fnV.Type()

	handler := handler{
		callback: fnV,
	}

	if fnT.Kind() != reflect.Func {
		return handler, errors.New("fn is not a function")
	}

	if fnT.NumIn() != 1 {
		return handler, errors.New("number of arguments must be 1")
	}

	if fnT.NumOut() != 0 {
		return handler, errors.New("listener must have no returns")
	}

	handler.event = fnT.In(0)

	if handler.event.Kind() != reflect.Ptr {
		return handler, errors.New("argument must be a pointer")
	}

	return handler, nil
}

func (h handler) not(event reflect.Type) bool {
	return h.event != event
}

func (h handler) call(event reflect.Value) {
	h.callback.Call([]reflect.Value{event})
}
