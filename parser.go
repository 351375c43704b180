package citi

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// parseState is one node of the keyword ordering state machine spec.md
// §4.3 describes: Start → HeaderVersion → Header → IVarBody →
// DataBody(i) → Done. HeaderVersion collapses into Start/Header here
// since CITIFILE's only job is the Start→Header transition.
type parseState int

const (
	stateStart parseState = iota
	stateHeader
	stateIVarBody
	stateSegListBody
	stateDataBody
)

// traceLogger receives optional state-transition diagnostics. Nil (the
// default) disables tracing entirely; callers opt in with
// SetTraceLogger. Tracing never affects parse results, only logrus
// output, and is silent by default so this package stays side-effect
// free per spec.md §6 ("no persisted state").
var traceLogger *logrus.Logger

// SetTraceLogger installs logger to receive Debug-level state-transition
// traces from Parse. Pass nil to disable tracing again.
func SetTraceLogger(logger *logrus.Logger) {
	traceLogger = logger
}

func trace(format string, args ...interface{}) {
	if traceLogger != nil {
		traceLogger.Debugf(format, args...)
	}
}

// parser holds the mutable state of one in-progress parse.
type parser struct {
	lines *lineScanner
	rec   *Record

	state parseState

	sawCITIFILE bool
	sawNAME     bool
	sawVAR      bool
	sawVarList  bool
	sawSegList  bool

	declaredData int // number of DATA lines seen so far
	closedData   int // number of BEGIN/END blocks fully closed so far
	openData     int // index into rec.Data currently between BEGIN/END, or -1
}

// ReadFile parses the CITI file at path into a new Record.
func ReadFile(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		code := ClassifyIOError(err)
		return nil, wrapError(code, 0, err)
	}
	defer f.Close()

	rec, err := Parse(f)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Parse reads a complete CITI record from r. On any error the returned
// Record is nil; no partial record is ever handed back, per spec.md
// §4.6.
func Parse(r io.Reader) (*Record, error) {
	p := &parser{
		lines:    newLineScanner(r),
		rec:      &Record{},
		openData: -1,
	}

	for {
		line, ok, err := p.lines.next()
		if err != nil {
			return nil, wrapError(CodeReadIOError, p.lines.lineNum, err)
		}
		if !ok {
			break
		}
		if perr := p.step(line); perr != nil {
			return nil, perr
		}
	}

	if perr := p.finish(); perr != nil {
		return nil, perr
	}

	return p.rec, nil
}

// step dispatches one classified line by its kind (and keywords by
// name) to a handler that checks the current state.
func (p *parser) step(line lexLine) *Error {
	trace("line %d: state=%d kind=%d", line.line, p.state, line.kind)

	switch line.kind {
	case lexComment:
		return p.stepComment(line)
	case lexDevice:
		return p.stepDevice(line)
	case lexKeyword:
		return p.stepKeyword(line)
	case lexNumericSingle:
		return p.stepNumericSingle(line)
	case lexNumericPair:
		return p.stepNumericPair(line)
	case lexBadNumeric:
		return newError(CodeParseBadNumber, line.line)
	case lexOther:
		return newError(CodeReadOutOfOrderKeyword, line.line)
	}
	return nil
}

func (p *parser) stepComment(line lexLine) *Error {
	if p.state != stateHeader && p.state != stateStart {
		return newError(CodeReadOutOfOrderKeyword, line.line)
	}
	if !p.sawCITIFILE {
		return newError(CodeReadOutOfOrderKeyword, line.line)
	}
	p.rec.Comments = append(p.rec.Comments, line.text)
	return nil
}

func (p *parser) stepDevice(line lexLine) *Error {
	if p.state != stateHeader || !p.sawCITIFILE {
		return newError(CodeReadOutOfOrderKeyword, line.line)
	}
	p.rec.AppendDeviceEntry(line.device, line.rest)
	return nil
}

func (p *parser) stepNumericSingle(line lexLine) *Error {
	switch p.state {
	case stateIVarBody:
		p.rec.IndependentVariable.Samples = append(p.rec.IndependentVariable.Samples, line.a)
		return nil
	case stateSegListBody:
		return newError(CodeParseBadNumber, line.line)
	}
	return newError(CodeReadOutOfOrderKeyword, line.line)
}

func (p *parser) stepNumericPair(line lexLine) *Error {
	switch p.state {
	case stateDataBody:
		p.rec.Data[p.openData].Samples = append(p.rec.Data[p.openData].Samples, complex(line.a, line.b))
		return nil
	case stateSegListBody:
		return newError(CodeParseBadNumber, line.line)
	}
	return newError(CodeReadOutOfOrderKeyword, line.line)
}

func (p *parser) stepKeyword(line lexLine) *Error {
	switch line.keyword {
	case "CITIFILE":
		return p.keywordCITIFILE(line)
	case "NAME":
		return p.keywordNAME(line)
	case "COMMENT":
		if p.state != stateHeader || !p.sawCITIFILE {
			return newError(CodeReadOutOfOrderKeyword, line.line)
		}
		p.rec.Comments = append(p.rec.Comments, line.rest)
		return nil
	case "VAR":
		return p.keywordVAR(line)
	case "DATA":
		return p.keywordDATA(line)
	case "VAR_LIST_BEGIN":
		return p.keywordVarListBegin(line)
	case "VAR_LIST_END":
		return p.keywordVarListEnd(line)
	case "SEG_LIST_BEGIN":
		return p.keywordSegListBegin(line)
	case "SEG_LIST_END":
		return p.keywordSegListEnd(line)
	case "SEG":
		return p.keywordSeg(line)
	case "BEGIN":
		return p.keywordBegin(line)
	case "END":
		return p.keywordEnd(line)
	default:
		return newError(CodeParseBadKeyword, line.line)
	}
}

func (p *parser) keywordCITIFILE(line lexLine) *Error {
	if p.sawCITIFILE {
		return newError(CodeReadSingleUseKeywordTwice, line.line)
	}
	if p.state != stateStart {
		return newError(CodeReadOutOfOrderKeyword, line.line)
	}
	p.sawCITIFILE = true
	p.rec.Version = line.rest
	p.state = stateHeader
	return nil
}

func (p *parser) keywordNAME(line lexLine) *Error {
	if p.state != stateHeader || !p.sawCITIFILE {
		return newError(CodeReadOutOfOrderKeyword, line.line)
	}
	if p.sawNAME {
		return newError(CodeReadSingleUseKeywordTwice, line.line)
	}
	p.sawNAME = true
	p.rec.Name = line.rest
	return nil
}

func (p *parser) keywordVAR(line lexLine) *Error {
	if p.state != stateHeader || !p.sawCITIFILE {
		return newError(CodeReadOutOfOrderKeyword, line.line)
	}
	if p.sawVAR {
		return newError(CodeReadIndependentVariableTwice, line.line)
	}
	p.sawVAR = true
	name, format := splitToken(line.rest)
	// Trailing N (declared length) is informational only; the actual
	// length comes from the VAR_LIST/SEG_LIST samples that follow.
	format, _ = splitToken(format)
	p.rec.IndependentVariable.Name = name
	p.rec.IndependentVariable.Format = format
	return nil
}

func (p *parser) keywordDATA(line lexLine) *Error {
	if p.state != stateHeader || !p.sawCITIFILE {
		return newError(CodeReadOutOfOrderKeyword, line.line)
	}
	name, format := splitToken(line.rest)
	p.rec.Data = append(p.rec.Data, DataArray{Name: name, Format: format})
	p.declaredData++
	return nil
}

func (p *parser) keywordVarListBegin(line lexLine) *Error {
	if (p.state != stateHeader) || !p.sawCITIFILE {
		return newError(CodeReadOutOfOrderKeyword, line.line)
	}
	if p.sawVarList || p.sawSegList {
		return newError(CodeReadSingleUseKeywordTwice, line.line)
	}
	p.sawVarList = true
	p.state = stateIVarBody
	return nil
}

func (p *parser) keywordVarListEnd(line lexLine) *Error {
	if p.state != stateIVarBody {
		return newError(CodeReadLineError, line.line)
	}
	p.state = stateHeader
	return nil
}

func (p *parser) keywordSegListBegin(line lexLine) *Error {
	if p.state != stateHeader || !p.sawCITIFILE {
		return newError(CodeReadOutOfOrderKeyword, line.line)
	}
	if p.sawVarList || p.sawSegList {
		return newError(CodeReadSingleUseKeywordTwice, line.line)
	}
	p.sawSegList = true
	p.state = stateSegListBody
	return nil
}

func (p *parser) keywordSegListEnd(line lexLine) *Error {
	if p.state != stateSegListBody {
		return newError(CodeReadLineError, line.line)
	}
	p.state = stateHeader
	return nil
}

func (p *parser) keywordSeg(line lexLine) *Error {
	if p.state != stateSegListBody {
		return newError(CodeReadOutOfOrderKeyword, line.line)
	}
	start, rest := splitToken(line.rest)
	stop, rest := splitToken(rest)
	points, _ := splitToken(rest)

	startF, ok1 := parseReal(start)
	stopF, ok2 := parseReal(stop)
	n, ok3 := parseSegPoints(points)
	if !ok1 || !ok2 || !ok3 {
		return newError(CodeParseBadNumber, line.line)
	}

	samples := expandSegment(startF, stopF, n)
	p.rec.IndependentVariable.Samples = append(p.rec.IndependentVariable.Samples, samples...)
	return nil
}

// expandSegment linearly interpolates n inclusive samples from start to
// stop. A single-point segment yields exactly [start], per spec.md
// §4.3's tie-break.
func expandSegment(start, stop float64, n int) []float64 {
	if n <= 1 {
		return []float64{start}
	}
	samples := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := 0; i < n; i++ {
		samples[i] = start + step*float64(i)
	}
	samples[n-1] = stop
	return samples
}

func parseSegPoints(s string) (int, bool) {
	f, ok := parseReal(s)
	if !ok || f != float64(int(f)) || f < 1 {
		return 0, false
	}
	return int(f), true
}

func (p *parser) keywordBegin(line lexLine) *Error {
	if p.state != stateHeader {
		return newError(CodeReadOutOfOrderKeyword, line.line)
	}
	if p.closedData >= len(p.rec.Data) {
		return newError(CodeReadDataArrayOverIndex, line.line)
	}
	p.openData = p.closedData
	p.state = stateDataBody
	return nil
}

func (p *parser) keywordEnd(line lexLine) *Error {
	if p.state != stateDataBody {
		return newError(CodeReadLineError, line.line)
	}
	p.closedData++
	p.openData = -1
	p.state = stateHeader
	return nil
}

// finish runs end-of-stream checks: required keywords present, every
// declared DATA populated, and IV/data-array length agreement.
func (p *parser) finish() *Error {
	if !p.sawCITIFILE {
		return newError(CodeReadNoVersion, p.lines.lineNum)
	}
	if !p.sawNAME {
		return newError(CodeReadNoName, p.lines.lineNum)
	}
	if !p.sawVAR && !p.sawVarList && !p.sawSegList {
		return newError(CodeReadNoIndependentVariable, p.lines.lineNum)
	}
	if len(p.rec.Data) == 0 || p.closedData != len(p.rec.Data) {
		return newError(CodeReadNoData, p.lines.lineNum)
	}

	if verr := p.rec.Validate(); verr != nil {
		return newError(CodeReadLengthMismatch, p.lines.lineNum)
	}
	return nil
}
