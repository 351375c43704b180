package main

import "C"

import (
	"github.com/Wave-View-Imaging/citi"
)

// --- version / name ----------------------------------------------------

//export record_get_version
func record_get_version(handle C.uintptr_t) *C.char {
	w := lookupHandle(handle)
	if w == nil {
		setLastError(codeNullArgument)
		return nil
	}
	w.mu.Lock()
	v := w.rec.Version
	w.mu.Unlock()
	return w.cstring("version", v)
}

//export record_set_version
func record_set_version(handle C.uintptr_t, version *C.char) {
	w := lookupHandle(handle)
	if w == nil || version == nil {
		setLastError(codeNullArgument)
		return
	}
	w.mu.Lock()
	w.rec.Version = C.GoString(version)
	w.mu.Unlock()
}

//export record_get_name
func record_get_name(handle C.uintptr_t) *C.char {
	w := lookupHandle(handle)
	if w == nil {
		setLastError(codeNullArgument)
		return nil
	}
	w.mu.Lock()
	name := w.rec.Name
	w.mu.Unlock()
	return w.cstring("name", name)
}

//export record_set_name
func record_set_name(handle C.uintptr_t, name *C.char) {
	w := lookupHandle(handle)
	if w == nil || name == nil {
		setLastError(codeNullArgument)
		return
	}
	w.mu.Lock()
	w.rec.Name = C.GoString(name)
	w.mu.Unlock()
}

// --- comments -----------------------------------------------------------

//export record_get_number_of_comments
func record_get_number_of_comments(handle C.uintptr_t) C.size_t {
	w := lookupHandle(handle)
	if w == nil {
		setLastError(codeNullArgument)
		return 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return C.size_t(len(w.rec.Comments))
}

//export record_get_comment
func record_get_comment(handle C.uintptr_t, i C.size_t) *C.char {
	w := lookupHandle(handle)
	if w == nil {
		setLastError(codeNullArgument)
		return nil
	}
	w.mu.Lock()
	idx := int(i)
	if idx < 0 || idx >= len(w.rec.Comments) {
		w.mu.Unlock()
		setLastError(int(citi.CodeIndexOutOfBounds))
		return nil
	}
	comment := w.rec.Comments[idx]
	w.mu.Unlock()
	return w.cstring("comment", comment)
}

// --- devices --------------------------------------------------------------

//export record_get_number_of_devices
func record_get_number_of_devices(handle C.uintptr_t) C.size_t {
	w := lookupHandle(handle)
	if w == nil {
		setLastError(codeNullArgument)
		return 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return C.size_t(len(w.rec.Devices))
}

//export record_get_device_name
func record_get_device_name(handle C.uintptr_t, d C.size_t) *C.char {
	w := lookupHandle(handle)
	if w == nil {
		setLastError(codeNullArgument)
		return nil
	}
	w.mu.Lock()
	idx := int(d)
	if idx < 0 || idx >= len(w.rec.Devices) {
		w.mu.Unlock()
		setLastError(int(citi.CodeIndexOutOfBounds))
		return nil
	}
	name := w.rec.Devices[idx].Name
	w.mu.Unlock()
	return w.cstring("device_name", name)
}

//export record_get_device_number_of_entries
func record_get_device_number_of_entries(handle C.uintptr_t, d C.size_t) C.size_t {
	w := lookupHandle(handle)
	if w == nil {
		setLastError(codeNullArgument)
		return 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	idx := int(d)
	if idx < 0 || idx >= len(w.rec.Devices) {
		setLastError(int(citi.CodeIndexOutOfBounds))
		return 0
	}
	return C.size_t(len(w.rec.Devices[idx].Entries))
}

//export record_get_device_entry
func record_get_device_entry(handle C.uintptr_t, d, e C.size_t) *C.char {
	w := lookupHandle(handle)
	if w == nil {
		setLastError(codeNullArgument)
		return nil
	}
	w.mu.Lock()
	di, ei := int(d), int(e)
	if di < 0 || di >= len(w.rec.Devices) {
		w.mu.Unlock()
		setLastError(int(citi.CodeIndexOutOfBounds))
		return nil
	}
	entries := w.rec.Devices[di].Entries
	if ei < 0 || ei >= len(entries) {
		w.mu.Unlock()
		setLastError(int(citi.CodeIndexOutOfBounds))
		return nil
	}
	entry := entries[ei]
	w.mu.Unlock()
	return w.cstring("device_entry", entry)
}

// --- independent variable ---------------------------------------------

//export record_get_independent_variable_name
func record_get_independent_variable_name(handle C.uintptr_t) *C.char {
	w := lookupHandle(handle)
	if w == nil {
		setLastError(codeNullArgument)
		return nil
	}
	w.mu.Lock()
	name := w.rec.IndependentVariable.Name
	w.mu.Unlock()
	return w.cstring("iv_name", name)
}

//export record_get_independent_variable_format
func record_get_independent_variable_format(handle C.uintptr_t) *C.char {
	w := lookupHandle(handle)
	if w == nil {
		setLastError(codeNullArgument)
		return nil
	}
	w.mu.Lock()
	format := w.rec.IndependentVariable.Format
	w.mu.Unlock()
	return w.cstring("iv_format", format)
}

//export record_get_independent_variable_length
func record_get_independent_variable_length(handle C.uintptr_t) C.size_t {
	w := lookupHandle(handle)
	if w == nil {
		setLastError(codeNullArgument)
		return 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return C.size_t(len(w.rec.IndependentVariable.Samples))
}

//export record_get_independent_variable_array
func record_get_independent_variable_array(handle C.uintptr_t, out *C.double, outLen C.size_t) C.size_t {
	w := lookupHandle(handle)
	if w == nil || out == nil {
		setLastError(codeNullArgument)
		return 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return copyFloats(w.rec.IndependentVariable.Samples, out, outLen)
}

// --- data arrays ---------------------------------------------------------

//export record_get_number_of_data_arrays
func record_get_number_of_data_arrays(handle C.uintptr_t) C.size_t {
	w := lookupHandle(handle)
	if w == nil {
		setLastError(codeNullArgument)
		return 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return C.size_t(len(w.rec.Data))
}

//export record_get_data_array_name
func record_get_data_array_name(handle C.uintptr_t, i C.size_t) *C.char {
	w := lookupHandle(handle)
	if w == nil {
		setLastError(codeNullArgument)
		return nil
	}
	w.mu.Lock()
	idx := int(i)
	if idx < 0 || idx >= len(w.rec.Data) {
		w.mu.Unlock()
		setLastError(int(citi.CodeIndexOutOfBounds))
		return nil
	}
	name := w.rec.Data[idx].Name
	w.mu.Unlock()
	return w.cstring("data_name", name)
}

//export record_get_data_array_format
func record_get_data_array_format(handle C.uintptr_t, i C.size_t) *C.char {
	w := lookupHandle(handle)
	if w == nil {
		setLastError(codeNullArgument)
		return nil
	}
	w.mu.Lock()
	idx := int(i)
	if idx < 0 || idx >= len(w.rec.Data) {
		w.mu.Unlock()
		setLastError(int(citi.CodeIndexOutOfBounds))
		return nil
	}
	format := w.rec.Data[idx].Format
	w.mu.Unlock()
	return w.cstring("data_format", format)
}

//export record_get_data_array_length
func record_get_data_array_length(handle C.uintptr_t, i C.size_t) C.size_t {
	w := lookupHandle(handle)
	if w == nil {
		setLastError(codeNullArgument)
		return 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	idx := int(i)
	if idx < 0 || idx >= len(w.rec.Data) {
		setLastError(int(citi.CodeIndexOutOfBounds))
		return 0
	}
	return C.size_t(len(w.rec.Data[idx].Samples))
}

//export record_get_data_array
func record_get_data_array(handle C.uintptr_t, i C.size_t, realOut, imagOut *C.double, outLen C.size_t) C.size_t {
	w := lookupHandle(handle)
	if w == nil || realOut == nil || imagOut == nil {
		setLastError(codeNullArgument)
		return 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	idx := int(i)
	if idx < 0 || idx >= len(w.rec.Data) {
		setLastError(int(citi.CodeIndexOutOfBounds))
		return 0
	}
	samples := w.rec.Data[idx].Samples
	n := int(outLen)
	if n > len(samples) {
		n = len(samples)
	}
	realSlice := unsafeDoubleSlice(realOut, n)
	imagSlice := unsafeDoubleSlice(imagOut, n)
	for j := 0; j < n; j++ {
		realSlice[j] = C.double(real(samples[j]))
		imagSlice[j] = C.double(imag(samples[j]))
	}
	return C.size_t(n)
}
