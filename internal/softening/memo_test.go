package softening

import "testing"

func TestMemo_AgreesWithCompute(t *testing.T) {
	m := NewMemo()
	for _, in := range propertySamples {
		direct := Compute(in)
		if got := m.Compute(in); got != direct {
			t.Errorf("memoized result differs from direct for %+v", in)
		}
		// Second call hits the cache and must still agree bit-for-bit.
		if got := m.Compute(in); got != direct {
			t.Errorf("cached result differs from direct for %+v", in)
		}
	}
	if m.Len() != len(propertySamples) {
		t.Errorf("Len() = %d, want %d", m.Len(), len(propertySamples))
	}
}

func TestMemo_BoundedSize(t *testing.T) {
	m := NewMemo()
	in := RawWaterSample{PH: 7, TemperatureC: 20}
	for i := 0; i < memoMaxEntries+10; i++ {
		in.CalciumMgL = float64(i)
		m.Compute(in)
	}
	if m.Len() > memoMaxEntries {
		t.Errorf("Len() = %d exceeds cap %d", m.Len(), memoMaxEntries)
	}
	// Entries computed after the reset still agree with the direct path.
	if got := m.Compute(in); got != Compute(in) {
		t.Error("post-reset memoized result differs from direct")
	}
}
