// Command citiffi is the C ABI surface described in spec.md §4.5/§6. It
// is built with `go build -buildmode=c-shared` to produce a dynamic
// library other languages can bind against the same way the original
// project's Python wrapper binds against its Rust core. main() itself
// does nothing — cgo's c-shared mode requires a main package, but all
// real behavior is reached through the //export'ed functions below.
package main

import "C"

func main() {}

// record_default returns a handle to a freshly defaulted Record.
//
//export record_default
func record_default() C.uintptr_t {
	return newHandle(citiNewRecord())
}

// record_read parses the file at path and returns a handle to it, or 0
// on failure (with get_last_error_code set).
//
//export record_read
func record_read(path *C.char) C.uintptr_t {
	if path == nil {
		setLastError(codeNullArgument)
		return 0
	}
	rec, code := citiReadFile(C.GoString(path))
	if code != codeSuccess {
		setLastError(code)
		return 0
	}
	return newHandle(rec)
}

// record_destroy releases the record behind handle. A zero handle is a
// no-op.
//
//export record_destroy
func record_destroy(handle C.uintptr_t) {
	deleteHandle(handle)
}

// get_last_error_code returns the calling OS thread's last recorded
// error code, or 0 if no call on this thread has failed yet. A
// successful call does not reset the slot.
//
//export get_last_error_code
func get_last_error_code() C.int {
	return C.int(lastError())
}

// get_error_description returns the fixed description for code.
//
//export get_error_description
func get_error_description(code C.int) *C.char {
	return cachedDescription(int(code))
}
