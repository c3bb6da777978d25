package geometry

import "testing"

func TestPool_CreateDestroyReuse(t *testing.T) {
	p := NewPool[Vertex](4)

	a := p.Create()
	b := p.Create()
	if a == b {
		t.Fatalf("Create() returned duplicate label %d", a)
	}
	if p.Size() != 2 {
		t.Errorf("Size() = %d, want 2", p.Size())
	}

	p.At(a).Time = 7
	if p.At(a).Time != 7 {
		t.Errorf("At(a).Time = %d, want 7", p.At(a).Time)
	}

	p.Destroy(a)
	if p.Size() != 1 {
		t.Errorf("Size() after destroy = %d, want 1", p.Size())
	}
	if p.Live(a) {
		t.Errorf("Live(%d) = true after destroy", a)
	}

	c := p.Create()
	if c != a {
		t.Errorf("Create() after destroy = %d, want reused slot %d", c, a)
	}
	if p.At(c).Time != 0 {
		t.Errorf("reused slot not zeroed: Time = %d", p.At(c).Time)
	}
}

func TestPool_Iteration(t *testing.T) {
	p := NewPool[Vertex](8)
	var created []Label
	for i := 0; i < 5; i++ {
		created = append(created, p.Create())
	}
	p.Destroy(created[1])
	p.Destroy(created[3])

	got := p.Labels()
	want := []Label{created[0], created[2], created[4]}
	if len(got) != len(want) {
		t.Fatalf("Labels() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Labels()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestPool_Exhaustion(t *testing.T) {
	p := NewPool[Vertex](2)
	p.Create()
	p.Create()

	defer func() {
		if recover() == nil {
			t.Error("Create() on a full pool did not panic")
		}
	}()
	p.Create()
}

func TestPool_AtFreedPanics(t *testing.T) {
	p := NewPool[Vertex](2)
	l := p.Create()
	p.Destroy(l)

	defer func() {
		if recover() == nil {
			t.Error("At() on a freed label did not panic")
		}
	}()
	p.At(l)
}
