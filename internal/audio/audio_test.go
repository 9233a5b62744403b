package audio

import (
	"math"
	"testing"
)

func TestNotes(t *testing.T) {
	orbit := []complex128{1, -1, 1i, complex(3, 0), complex(math.NaN(), 0), 1}
	notes := Notes(orbit, 2)

	if len(notes) != 4 {
		t.Fatalf("got %d notes, want 4", len(notes))
	}
	if notes[0].Freq == notes[2].Freq {
		t.Error("different arguments should differ in pitch")
	}
	if notes[3].Gain != 1 {
		t.Errorf("gain beyond the radius = %v, want 1", notes[3].Gain)
	}
	if notes[0].Gain >= notes[3].Gain {
		t.Error("gain should grow with modulus")
	}
	for _, n := range notes {
		if n.Freq < scale[0] || n.Freq > scale[len(scale)-1] {
			t.Errorf("frequency %v out of scale", n.Freq)
		}
	}
}

func TestNotes_Bounded(t *testing.T) {
	orbit := make([]complex128, 500)
	for i := range orbit {
		orbit[i] = complex(0.5, float64(i)/500)
	}
	if got := len(Notes(orbit, 0)); got != MaxNotes {
		t.Errorf("got %d notes, want %d", got, MaxNotes)
	}
}

func TestProcess(t *testing.T) {
	v := NewVoice()
	out := [][]float32{make([]float32, BufferSize), make([]float32, BufferSize)}

	v.Process(nil, out)
	for i := range out[0] {
		if out[0][i] != 0 || out[1][i] != 0 {
			t.Fatal("silent voice produced sound")
		}
	}

	v.SetOrbit([]complex128{1, 1i, -1}, 2)
	for range 4 {
		v.Process(nil, out)
	}
	peak := 0.0
	for i := range out[0] {
		s := math.Abs(float64(out[0][i]))
		if math.IsNaN(s) || s > 1 {
			t.Fatalf("sample %d = %v", i, out[0][i])
		}
		peak = math.Max(peak, s)
	}
	if peak == 0 {
		t.Error("voice with notes is silent")
	}
}

func TestTriangle(t *testing.T) {
	tests := []struct{ phase, want float64 }{
		{0, 1}, {0.25, 0}, {0.5, -1}, {0.75, 0}, {1.5, -1},
	}
	for _, tt := range tests {
		if got := triangle(tt.phase); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("triangle(%v) = %v, want %v", tt.phase, got, tt.want)
		}
	}
}
