// Package audio plays the orbit under the cursor as a sequence of soft
// tones through portaudio.
package audio

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/san-kum/zplane/internal/dynamo"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	// NoteRate is how many orbit steps are played per second.
	NoteRate = 8
	// MaxNotes bounds how much of an orbit is played before it loops.
	MaxNotes = 32
)

// scale is a G minor pentatonic over two octaves starting at G2.
var scale = []float64{
	98.00, 116.54, 130.81, 146.83, 174.61,
	196.00, 233.08, 261.63, 293.66, 349.23,
}

// Note is one orbit step rendered as a tone.
type Note struct {
	Freq float64
	Gain float64
}

// Notes maps iterates to tones: the argument of z picks the pitch and
// its modulus, relative to the escape radius, the loudness. Iterates that
// are not finite end the sequence.
func Notes(orbit []complex128, radius float64) []Note {
	if !(radius > 0) {
		radius = dynamo.DefaultEscapeRadius
	}
	notes := make([]Note, 0, min(len(orbit), MaxNotes))
	for _, z := range orbit {
		if len(notes) == MaxNotes || cmplx.IsInf(z) || cmplx.IsNaN(z) {
			break
		}
		turn := (cmplx.Phase(z) + math.Pi) / (2 * math.Pi)
		idx := min(int(turn*float64(len(scale))), len(scale)-1)
		gain := 0.35 + 0.65*math.Min(cmplx.Abs(z)/radius, 1)
		notes = append(notes, Note{Freq: scale[idx], Gain: gain})
	}
	return notes
}

// Voice is a portaudio output stream playing a looped note sequence.
type Voice struct {
	Stream *portaudio.Stream

	mu    sync.Mutex
	notes []Note

	// Synthesis state, touched only by the audio callback.
	time        float64
	pos         int
	current     Note
	envelope    float64
	filterState [2]float64
	delayLine   [2][]float64
	delayHead   int

	Active bool
}

func NewVoice() *Voice {
	delayLen := int(float64(SampleRate) * 0.3)
	return &Voice{
		delayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

// Start opens the default output device.
func (v *Voice) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: initialize: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, v.Process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio: start stream: %w", err)
	}
	dynamo.Logger().Info("audio started", "rate", SampleRate, "buffer", BufferSize)

	v.Stream = stream
	v.Active = true
	return nil
}

func (v *Voice) Stop() {
	if !v.Active {
		return
	}
	if v.Stream != nil {
		v.Stream.Stop()
		v.Stream.Close()
	}
	portaudio.Terminate()
	v.Active = false
}

// SetOrbit replaces the sequence being played.
func (v *Voice) SetOrbit(orbit []complex128, radius float64) {
	notes := Notes(orbit, radius)
	v.mu.Lock()
	v.notes = notes
	v.mu.Unlock()
}

// triangle is a smooth, flute-like oscillator.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// lpf is a one pole low pass filter.
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// Process is the portaudio callback. The stream has no inputs; out holds
// the left and right channels.
func (v *Voice) Process(_, out [][]float32) {
	v.mu.Lock()
	notes := v.notes
	v.mu.Unlock()

	const (
		noteLen = SampleRate / NoteRate
		cutoff  = 900.0
		vol     = 0.25
	)
	dt := 1.0 / float64(SampleRate)

	for i := range out[0] {
		if len(notes) == 0 {
			v.current = Note{}
			v.pos = 0
		} else {
			step := (v.pos / noteLen) % len(notes)
			v.current = notes[step]
			v.pos = (v.pos + 1) % (noteLen * len(notes))
		}
		v.envelope += (v.current.Gain - v.envelope) * 0.002

		oscL := triangle(v.time * v.current.Freq * 0.999)
		oscR := triangle(v.time * v.current.Freq * 1.001)

		v.filterState[0] = lpf(oscL*v.envelope, cutoff, dt, v.filterState[0])
		v.filterState[1] = lpf(oscR*v.envelope, cutoff, dt, v.filterState[1])

		delayL := v.delayLine[0][v.delayHead]
		delayR := v.delayLine[1][v.delayHead]
		mixL := v.filterState[0] + delayL*0.3 + delayR*0.1
		mixR := v.filterState[1] + delayR*0.3 + delayL*0.1
		v.delayLine[0][v.delayHead] = mixL * 0.5
		v.delayLine[1][v.delayHead] = mixR * 0.5
		v.delayHead = (v.delayHead + 1) % len(v.delayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)
		v.time += dt
	}
}
