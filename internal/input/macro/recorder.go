package macro

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/spiral/internal/input"
	"github.com/dshills/spiral/internal/input/key"
)

// Recorder errors.
var (
	ErrInvalidRegister  = errors.New("invalid register")
	ErrAlreadyRecording = errors.New("already recording")
	ErrNotRecording     = errors.New("not recording")
	ErrEmptyRegister    = errors.New("register is empty")
	ErrPlaying          = errors.New("macro already playing")
)

// Recorder holds the macro registers and the recording in progress.
// It is owned by the session goroutine.
type Recorder struct {
	registers map[rune]key.Sequence

	recording bool
	register  rune
	appending bool
	events    key.Sequence
	// mark is where the current chord or command line began.
	mark int

	playing    bool
	lastPlayed rune

	idle func() bool
}

var _ input.Hook = (*Recorder)(nil)

// NewRecorder creates a recorder with empty registers. idle reports
// whether the input handler is between chords with the command line
// closed; nil treats every key as the start of a chord.
func NewRecorder(idle func() bool) *Recorder {
	if idle == nil {
		idle = func() bool { return true }
	}
	return &Recorder{
		registers: make(map[rune]key.Sequence),
		idle:      idle,
	}
}

// StartRecording starts recording into reg. An upper case register
// appends to the lower case one when recording stops.
func (r *Recorder) StartRecording(reg rune) error {
	target := NormalizeRegister(reg)
	if target == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, reg)
	}
	if r.recording {
		return fmt.Errorf("%w into %c", ErrAlreadyRecording, r.register)
	}
	r.recording = true
	r.register = target
	r.appending = IsAppendRegister(reg)
	r.events = nil
	r.mark = 0
	return nil
}

// StopRecording saves the recording and returns its register and
// length. With dropTrigger the chord or command line typed last is not
// saved; pass it when that input is what asked to stop.
func (r *Recorder) StopRecording(dropTrigger bool) (rune, int, error) {
	if !r.recording {
		return 0, 0, ErrNotRecording
	}
	r.recording = false
	end := len(r.events)
	if dropTrigger {
		end = r.mark
	}
	events := append(key.Sequence(nil), r.events[:end]...)
	r.events = nil

	if r.appending {
		events = append(r.registers[r.register], events...)
	}
	if len(events) == 0 {
		delete(r.registers, r.register)
	} else {
		r.registers[r.register] = events
	}
	return r.register, len(events), nil
}

// Recording returns the register being recorded into.
func (r *Recorder) Recording() (rune, bool) {
	return r.register, r.recording
}

// PreKeyEvent records ev while recording. Replayed keys are not
// recorded.
func (r *Recorder) PreKeyEvent(ev key.Event, _ string) bool {
	if !r.recording || r.playing {
		return false
	}
	if r.idle() {
		r.mark = len(r.events)
	}
	r.events = append(r.events, ev)
	return false
}

// PostKeyEvent implements input.Hook.
func (r *Recorder) PostKeyEvent(key.Event, input.Outcome) {}

// Get returns a copy of the macro in reg.
func (r *Recorder) Get(reg rune) key.Sequence {
	return append(key.Sequence(nil), r.registers[NormalizeRegister(reg)]...)
}

// Set stores events in reg, replacing its macro.
func (r *Recorder) Set(reg rune, events key.Sequence) error {
	target := NormalizeRegister(reg)
	if target == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, reg)
	}
	if len(events) == 0 {
		delete(r.registers, target)
		return nil
	}
	r.registers[target] = append(key.Sequence(nil), events...)
	return nil
}

// Registers returns the registers holding a macro, sorted.
func (r *Recorder) Registers() []rune {
	out := make([]rune, 0, len(r.registers))
	for reg := range r.registers {
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LastPlayed returns the register played last, or 0.
func (r *Recorder) LastPlayed() rune {
	return r.lastPlayed
}

// Play feeds the macro in reg to feed count times. Playback stops at
// the first error. A macro cannot start another playback.
func (r *Recorder) Play(reg rune, count int, feed func(key.Event) error) error {
	target := NormalizeRegister(reg)
	if target == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, reg)
	}
	if r.playing {
		return ErrPlaying
	}
	events := r.registers[target]
	if len(events) == 0 {
		return fmt.Errorf("%w: %c", ErrEmptyRegister, target)
	}

	r.playing = true
	defer func() { r.playing = false }()
	r.lastPlayed = target
	for i, n := 0, max(count, 1); i < n; i++ {
		for _, ev := range events {
			if err := feed(ev); err != nil {
				return fmt.Errorf("macro %c: %w", target, err)
			}
		}
	}
	return nil
}
