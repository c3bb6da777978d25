package geometry

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteInitial_MatchesGolden(t *testing.T) {
	golden, err := os.ReadFile(filepath.Join("testdata", "s1xs2-t2.dat"))
	if err != nil {
		t.Fatalf("read golden file: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteInitial(&buf, 2); err != nil {
		t.Fatalf("WriteInitial(2) = %v", err)
	}
	if !bytes.Equal(buf.Bytes(), golden) {
		t.Errorf("WriteInitial(2) differs from the golden file:\n%s", buf.String())
	}
}

func TestWriteInitial_TallerStacks(t *testing.T) {
	for _, slices := range []int{2, 3, 4, 8} {
		var buf bytes.Buffer
		if err := WriteInitial(&buf, slices); err != nil {
			t.Fatalf("WriteInitial(%d) = %v", slices, err)
		}
		u, err := Read(&buf, testRand(), 1, testCapacities())
		if err != nil {
			t.Fatalf("Read(initial %d) = %v", slices, err)
		}
		if u.N0() != 3*slices {
			t.Errorf("slices=%d: N0() = %d, want %d", slices, u.N0(), 3*slices)
		}
		if u.N3() != 8*slices {
			t.Errorf("slices=%d: N3() = %d, want %d", slices, u.N3(), 8*slices)
		}
		if u.N31() != 2*slices {
			t.Errorf("slices=%d: N31() = %d, want %d", slices, u.N31(), 2*slices)
		}
		u.UpdateGeometry()
		if err := u.Validate(); err != nil {
			t.Errorf("slices=%d: Validate() = %v", slices, err)
		}
	}
}

func TestWriteInitial_TooFewSlices(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteInitial(&buf, 1); err == nil {
		t.Error("WriteInitial(1) succeeded, want error")
	}
}
