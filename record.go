// Package citi implements a reader, in-memory model, and writer for CITI
// files, the plain-text container format vector network analyzers (most
// notably the HP 8510) use to exchange measured network parameters.
package citi

import (
	"strings"

	"github.com/alecthomas/repr"
)

// DefaultVersion is the version stamped on a freshly constructed Record.
const DefaultVersion = "A.01.00"

// Device is a named group of instrument-specific key/value-style lines,
// each written as "#<name> <entry>" in the source file. Entries from
// repeated "#<name> ..." lines with the same name accumulate here in
// file order; devices themselves are not duplicated.
type Device struct {
	Name    string
	Entries []string
}

// IndependentVariable is the sweep axis (typically frequency) shared by
// every data array in a Record.
type IndependentVariable struct {
	Name    string
	Format  string
	Samples []float64
}

// DataArray is a named, formatted sequence of complex samples aligned to
// a Record's IndependentVariable. Format is opaque to this package (e.g.
// "RI" or "MA") — both are stored as pairs of float64 and never
// converted between representations.
type DataArray struct {
	Name    string
	Format  string
	Samples []complex128
}

// Record is a single CITI document: a header, one independent variable,
// and one or more aligned data arrays. A zero-value Record is not ready
// for use; construct one with NewRecord or ReadFile/Parse.
type Record struct {
	Version             string
	Name                string
	Comments            []string
	Devices             []Device
	IndependentVariable IndependentVariable
	Data                []DataArray
}

// NewRecord returns an empty Record with the default version stamped,
// matching the defaulted record a binding constructs with no arguments.
func NewRecord() *Record {
	return &Record{Version: DefaultVersion}
}

// deviceIndex returns the index of the device named name, or -1.
func (r *Record) deviceIndex(name string) int {
	for i := range r.Devices {
		if r.Devices[i].Name == name {
			return i
		}
	}
	return -1
}

// AppendDeviceEntry appends entry to the device named name, creating the
// device (in first-occurrence order) if it does not already exist.
func (r *Record) AppendDeviceEntry(name, entry string) {
	if i := r.deviceIndex(name); i >= 0 {
		r.Devices[i].Entries = append(r.Devices[i].Entries, entry)
		return
	}
	r.Devices = append(r.Devices, Device{Name: name, Entries: []string{entry}})
}

// Clone returns a deep copy of r. Sub-slices are copied so that mutating
// the clone never affects r, and vice versa.
func (r *Record) Clone() *Record {
	clone := &Record{
		Version: r.Version,
		Name:    r.Name,
	}
	if r.Comments != nil {
		clone.Comments = append([]string(nil), r.Comments...)
	}
	if r.Devices != nil {
		clone.Devices = make([]Device, len(r.Devices))
		for i, d := range r.Devices {
			clone.Devices[i] = Device{
				Name:    d.Name,
				Entries: append([]string(nil), d.Entries...),
			}
		}
	}
	clone.IndependentVariable = IndependentVariable{
		Name:   r.IndependentVariable.Name,
		Format: r.IndependentVariable.Format,
	}
	if r.IndependentVariable.Samples != nil {
		clone.IndependentVariable.Samples = append([]float64(nil), r.IndependentVariable.Samples...)
	}
	if r.Data != nil {
		clone.Data = make([]DataArray, len(r.Data))
		for i, d := range r.Data {
			clone.Data[i] = DataArray{
				Name:    d.Name,
				Format:  d.Format,
				Samples: append([]complex128(nil), d.Samples...),
			}
		}
	}
	return clone
}

// Validate checks the structural invariants spec.md §3 lists for a
// successfully parsed or about-to-be-written Record: every data array's
// length must equal the independent variable's length (when that length
// is non-zero), and all data arrays must agree with each other.
func (r *Record) Validate() *Error {
	ivLen := len(r.IndependentVariable.Samples)
	if ivLen == 0 && len(r.Data) > 0 {
		ivLen = len(r.Data[0].Samples)
	}
	for _, d := range r.Data {
		if len(d.Samples) != ivLen {
			return newError(CodeReadLengthMismatch, 0)
		}
	}
	return nil
}

// Dump returns a human-readable, deep representation of r, useful in
// debuggers and in test failure output. It is never parsed back.
func (r *Record) Dump() string {
	var b strings.Builder
	b.WriteString(repr.String(r, repr.Indent("  ")))
	return b.String()
}
