package main

import "C"

import (
	"github.com/Wave-View-Imaging/citi"
)

const (
	codeSuccess     = int(citi.CodeSuccess)
	codeNullArgument = int(citi.CodeNullArgument)
)

func citiNewRecord() *citi.Record {
	return citi.NewRecord()
}

// citiReadFile adapts citi.ReadFile's (*Record, error) into (*Record,
// int-code), the shape the exported record_read needs.
func citiReadFile(path string) (*citi.Record, int) {
	rec, err := citi.ReadFile(path)
	if err != nil {
		if cerr, ok := err.(*citi.Error); ok {
			return nil, int(cerr.Code)
		}
		return nil, int(citi.CodeUnknown)
	}
	return rec, codeSuccess
}
