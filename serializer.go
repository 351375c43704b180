package citi

import (
	"bufio"
	"io"
	"os"
	"strconv"
)

// validateForWrite runs the pre-write completeness checks spec.md §4.4 lists, in
// the order the error-code catalog implies (version, name, data
// presence, per-array name/format, length agreement). The first
// violated rule wins.
func (r *Record) validateForWrite() *Error {
	if r.Version == "" {
		return newError(CodeWriteNoVersion, 0)
	}
	if r.Name == "" {
		return newError(CodeWriteNoName, 0)
	}
	if len(r.Data) == 0 {
		return newError(CodeReadNoData, 0)
	}
	for _, d := range r.Data {
		if d.Name == "" {
			return newError(CodeWriteNoDataName, 0)
		}
		if d.Format == "" {
			return newError(CodeWriteNoDataFormat, 0)
		}
	}
	if err := r.Validate(); err != nil {
		return err
	}
	return nil
}

// WriteFile validates r and writes it to path in the fixed layout
// spec.md §4.4 describes, creating or truncating the file.
func (r *Record) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return wrapError(ClassifyIOError(err), 0, err)
	}
	defer f.Close()

	if err := r.Write(f); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return wrapError(ClassifyIOError(err), 0, err)
	}
	return nil
}

// Write validates r and emits its byte-stable CITI representation to w.
func (r *Record) Write(w io.Writer) error {
	if verr := r.validateForWrite(); verr != nil {
		return verr
	}

	bw := bufio.NewWriter(w)

	writeLine(bw, "CITIFILE "+r.Version)
	writeLine(bw, "NAME "+r.Name)

	for _, c := range r.Comments {
		writeLine(bw, "!"+c)
	}

	for _, d := range r.Devices {
		for _, entry := range d.Entries {
			writeLine(bw, "#"+d.Name+" "+entry)
		}
	}

	ivLen := len(r.IndependentVariable.Samples)
	writeLine(bw, "VAR "+r.IndependentVariable.Name+" "+r.IndependentVariable.Format+" "+strconv.Itoa(ivLen))

	for _, d := range r.Data {
		writeLine(bw, "DATA "+d.Name+" "+d.Format)
	}

	writeLine(bw, "VAR_LIST_BEGIN")
	for _, v := range r.IndependentVariable.Samples {
		writeLine(bw, formatReal(v))
	}
	writeLine(bw, "VAR_LIST_END")

	for _, d := range r.Data {
		trace("writing data array %q (%d samples)", d.Name, len(d.Samples))
		writeLine(bw, "BEGIN")
		for _, s := range d.Samples {
			writeLine(bw, formatReal(real(s))+","+formatReal(imag(s)))
		}
		writeLine(bw, "END")
	}

	if err := bw.Flush(); err != nil {
		return wrapError(ClassifyIOError(err), 0, err)
	}
	return nil
}

func writeLine(w *bufio.Writer, s string) {
	w.WriteString(s)
	w.WriteByte('\n')
}

// formatReal renders f in upper-case scientific notation with the
// minimum number of significant digits needed to round-trip it exactly
// (strconv's shortest-round-trip algorithm), per spec.md §4.4.
func formatReal(f float64) string {
	return strconv.FormatFloat(f, 'E', -1, 64)
}
