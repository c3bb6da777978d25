package observables

import (
	"context"
	"os"
	"strconv"
	"strings"
	"testing"
)

func TestVolumeProfile_Line(t *testing.T) {
	u := testUniverse(t, 3)
	vp := NewVolumeProfile()

	line := vp.Process(u)
	fields := strings.Fields(line)
	if len(fields) != u.NSlices() {
		t.Fatalf("profile has %d fields, want %d", len(fields), u.NSlices())
	}
	sum := 0
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			t.Fatalf("field %q is not an integer", f)
		}
		if n < 0 {
			t.Errorf("negative slice volume %d", n)
		}
		sum += n
	}
	if sum != u.N31() {
		t.Errorf("profile sums to %d, want N31 = %d", sum, u.N31())
	}
}

func TestSink_MeasureAppends(t *testing.T) {
	u := testUniverse(t, 2)
	sink, err := NewSink(t.TempDir(), "test")
	if err != nil {
		t.Fatalf("NewSink() = %v", err)
	}
	vp := NewVolumeProfile()

	if err := sink.Measure(context.Background(), vp, u); err != nil {
		t.Fatalf("Measure() = %v", err)
	}
	if err := sink.Measure(context.Background(), vp, u); err != nil {
		t.Fatalf("Measure() = %v", err)
	}

	data, err := os.ReadFile(sink.Path(vp))
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("data file has %d lines, want 2", len(lines))
	}
	if lines[0] != lines[1] {
		t.Errorf("repeated measurements differ: %q vs %q", lines[0], lines[1])
	}
	if lines[0] != "2 2" {
		t.Errorf("profile line = %q, want \"2 2\"", lines[0])
	}
}

func TestSink_ClearKeepsContent(t *testing.T) {
	u := testUniverse(t, 2)
	sink, err := NewSink(t.TempDir(), "test")
	if err != nil {
		t.Fatalf("NewSink() = %v", err)
	}
	vp := NewVolumeProfile()

	if err := sink.Measure(context.Background(), vp, u); err != nil {
		t.Fatalf("Measure() = %v", err)
	}
	if err := sink.Clear(vp); err != nil {
		t.Fatalf("Clear() = %v", err)
	}

	data, err := os.ReadFile(sink.Path(vp))
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	if len(data) == 0 {
		t.Error("Clear() truncated the data file; the sink is append-only")
	}
}

func TestSink_ClearCreatesFile(t *testing.T) {
	sink, err := NewSink(t.TempDir(), "id7")
	if err != nil {
		t.Fatalf("NewSink() = %v", err)
	}
	vp := NewVolumeProfile()

	if err := sink.Clear(vp); err != nil {
		t.Fatalf("Clear() = %v", err)
	}
	if _, err := os.Stat(sink.Path(vp)); err != nil {
		t.Errorf("data file missing after Clear(): %v", err)
	}
	if got, want := sink.Path(vp), "volume_profile-id7.dat"; !strings.HasSuffix(got, want) {
		t.Errorf("Path() = %q, want suffix %q", got, want)
	}
}

func TestCNum_CountsMatchingSlices(t *testing.T) {
	u := testUniverse(t, 2)

	// Every slice of the fresh stack has volume 2 and every vertex has
	// spatial coordination 2.
	c := NewCNum(2)
	fields := strings.Fields(c.Process(u))
	if len(fields) != cnumBins {
		t.Fatalf("histogram has %d bins, want %d", len(fields), cnumBins)
	}
	if fields[2] != "6" {
		t.Errorf("bin 2 = %s, want 6 (all six vertices)", fields[2])
	}

	// With no matching slice the histogram is empty.
	c = NewCNum(99)
	for i, f := range strings.Fields(c.Process(u)) {
		if f != "0" {
			t.Errorf("bin %d = %s, want 0", i, f)
		}
	}
}
