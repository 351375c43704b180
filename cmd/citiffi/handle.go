package main

/*
#include <pthread.h>
*/
import "C"

import (
	"runtime/cgo"
	"sync"
	"unsafe"

	"github.com/Wave-View-Imaging/citi"
)

// wrapper is what a handle actually points at: the record plus the
// borrowed C strings handed out by the getters. Each getter owns one
// cache slot (keyed by getter, not by index), so a returned pointer
// stays valid until the same getter is called again on this handle or
// until record_destroy. The setters do not touch the cache.
type wrapper struct {
	mu     sync.Mutex
	rec    *citi.Record
	cached map[string]*C.char
}

func newWrapper(rec *citi.Record) *wrapper {
	return &wrapper{rec: rec, cached: make(map[string]*C.char)}
}

func (w *wrapper) invalidate() {
	for k, p := range w.cached {
		C.free(unsafe.Pointer(p))
		delete(w.cached, k)
	}
}

func (w *wrapper) cstring(key, value string) *C.char {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.cached[key]; ok {
		C.free(unsafe.Pointer(p))
	}
	p := C.CString(value)
	w.cached[key] = p
	return p
}

func newHandle(rec *citi.Record) C.uintptr_t {
	return C.uintptr_t(cgo.NewHandle(newWrapper(rec)))
}

func lookupHandle(h C.uintptr_t) *wrapper {
	if h == 0 {
		return nil
	}
	v := cgo.Handle(h).Value()
	w, ok := v.(*wrapper)
	if !ok {
		return nil
	}
	return w
}

func deleteHandle(h C.uintptr_t) {
	if h == 0 {
		return
	}
	handle := cgo.Handle(h)
	if w, ok := handle.Value().(*wrapper); ok {
		w.invalidate()
	}
	handle.Delete()
}

// --- last-error slot -------------------------------------------------
//
// Go exposes no public thread-local-storage primitive and goroutines are
// not OS threads, but every FFI call here is entered directly from a
// real OS thread on the C side. We key a map on that thread's
// pthread_self() value, which is the closest faithful rendition of
// spec.md §4.5's "thread-local last-error slot" available from Go. See
// DESIGN.md for the Open Question this resolves.

// threadID assumes pthread_t is a scalar (true on Linux and the BSDs;
// macOS's opaque pthread_t struct also happens to be comparable, but is
// not a stable ABI guarantee there).
type threadID C.pthread_t

var (
	lastErrorsMu sync.Mutex
	lastErrors   = make(map[threadID]int)
)

func currentThreadID() threadID {
	return threadID(C.pthread_self())
}

func setLastError(code int) {
	lastErrorsMu.Lock()
	defer lastErrorsMu.Unlock()
	lastErrors[currentThreadID()] = code
}

func lastError() int {
	lastErrorsMu.Lock()
	defer lastErrorsMu.Unlock()
	return lastErrors[currentThreadID()]
}

// --- description cache -------------------------------------------------

var (
	descCacheMu sync.Mutex
	descCache   = make(map[int]*C.char)
)

func cachedDescription(code int) *C.char {
	descCacheMu.Lock()
	defer descCacheMu.Unlock()
	if p, ok := descCache[code]; ok {
		return p
	}
	p := C.CString(citi.GetErrorDescription(citi.Code(code)))
	descCache[code] = p
	return p
}
