package citi_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Wave-View-Imaging/citi"
)

func TestReadFile_DataFile(t *testing.T) {
	rec, err := citi.ReadFile(filepath.Join("testdata", "data_file.cti"))
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "A.01.00", rec.Version)
	assert.Equal(t, "DATA", rec.Name)
	assert.Equal(t, "FREQ", rec.IndependentVariable.Name)
	assert.Len(t, rec.IndependentVariable.Samples, 10)
	assert.InDelta(t, 1e9, rec.IndependentVariable.Samples[0], 1)
	assert.InDelta(t, 4e9, rec.IndependentVariable.Samples[9], 1)
	if assert.Len(t, rec.Data, 1) {
		assert.Equal(t, "S[1,1]", rec.Data[0].Name)
		assert.Len(t, rec.Data[0].Samples, 10)
		assert.InDelta(t, 0.086303, real(rec.Data[0].Samples[0]), 1e-6)
		assert.InDelta(t, -0.898651, imag(rec.Data[0].Samples[0]), 1e-6)
	}
}

func TestReadFile_DisplayMemory_EmptyIndependentVariable(t *testing.T) {
	rec, err := citi.ReadFile(filepath.Join("testdata", "display_memory.cti"))
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "MEMORY", rec.Name)
	assert.Empty(t, rec.IndependentVariable.Samples)
	if assert.Len(t, rec.Data, 1) {
		assert.Len(t, rec.Data[0].Samples, 5)
	}
	if assert.Len(t, rec.Devices, 1) {
		assert.Equal(t, "NA", rec.Devices[0].Name)
		assert.Equal(t, []string{"VERSION HP8510B.05.00", "REGISTER 1"}, rec.Devices[0].Entries)
	}
}

func TestReadFile_ListCalSet_ThreeDataArrays(t *testing.T) {
	rec, err := citi.ReadFile(filepath.Join("testdata", "list_cal_set.cti"))
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "CAL_SET", rec.Name)
	assert.Equal(t, []float64{1e9, 2e9, 2.5e9, 3e9}, rec.IndependentVariable.Samples)
	if assert.Len(t, rec.Data, 3) {
		assert.Equal(t, "E[1]", rec.Data[0].Name)
		assert.Equal(t, "E[2]", rec.Data[1].Name)
		assert.Equal(t, "E[3]", rec.Data[2].Name)
		for _, d := range rec.Data {
			assert.Len(t, d.Samples, 4)
		}
	}
	if assert.Len(t, rec.Devices, 1) {
		assert.Equal(t, "NA", rec.Devices[0].Name)
		assert.Contains(t, rec.Devices[0].Entries, "CAL_SET_ID CUSTOM")
		assert.Contains(t, rec.Devices[0].Entries, "SPAN 1000000000 4000000000")
	}
}

func TestReadFile_WviFile(t *testing.T) {
	rec, err := citi.ReadFile(filepath.Join("testdata", "wvi_file.cti"))
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "A.01.01", rec.Version)
	assert.Equal(t, "Antonly001", rec.Name)
	assert.Len(t, rec.Comments, 6)
	assert.Equal(t, []float64{1e8, 2e8}, rec.IndependentVariable.Samples)
	if assert.Len(t, rec.Data, 1) {
		assert.Equal(t, "S11", rec.Data[0].Name)
		assert.Len(t, rec.Data[0].Samples, 2)
	}
}

func TestReadFile_SegList_LiveKeywordExpansion(t *testing.T) {
	rec, err := citi.ReadFile(filepath.Join("testdata", "seg_list.cti"))
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, []float64{1e9, 1.25e9, 1.5e9, 1.75e9, 2e9}, rec.IndependentVariable.Samples)
}

func TestReadFile_MissingFile_ReturnsNotFound(t *testing.T) {
	rec, err := citi.ReadFile(filepath.Join("testdata", "does_not_exist.cti"))
	assert.Nil(t, rec)
	if assert.Error(t, err) {
		cerr, ok := err.(*citi.Error)
		if assert.True(t, ok) {
			assert.Equal(t, citi.CodeFileNotFound, cerr.Code)
		}
	}
}

func TestDefaultRecord_IsNotReadyToWrite(t *testing.T) {
	r := citi.NewRecord()
	var buf bytes.Buffer
	err := r.Write(&buf)
	if assert.Error(t, err) {
		cerr, ok := err.(*citi.Error)
		if assert.True(t, ok) {
			assert.Equal(t, citi.CodeWriteNoName, cerr.Code)
		}
	}
}

func TestRoundTrip_ReadWriteRead(t *testing.T) {
	rec, err := citi.ReadFile(filepath.Join("testdata", "data_file.cti"))
	if !assert.NoError(t, err) {
		return
	}

	dir := t.TempDir()
	out := filepath.Join(dir, "roundtrip.cti")
	if !assert.NoError(t, rec.WriteFile(out)) {
		return
	}

	reparsed, err := citi.ReadFile(out)
	if !assert.NoError(t, err) {
		return
	}

	assert.Equal(t, rec.Version, reparsed.Version)
	assert.Equal(t, rec.Name, reparsed.Name)
	assert.Equal(t, rec.IndependentVariable, reparsed.IndependentVariable)
	assert.Equal(t, rec.Data, reparsed.Data)

	info, err := os.Stat(out)
	assert.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func BenchmarkReadFile_ListCalSet(b *testing.B) {
	path := filepath.Join("testdata", "list_cal_set.cti")
	for i := 0; i < b.N; i++ {
		if _, err := citi.ReadFile(path); err != nil {
			b.Fatal(err)
		}
	}
}
