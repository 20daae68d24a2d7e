package typing

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/entrhq/fillforge/pkg/driver"
	"github.com/entrhq/fillforge/pkg/logging"
)

// State is the lifecycle state of a typing run.
type State int32

const (
	StateIdle State = iota
	StateStarting
	StateTyping
	StateTypoCorrecting
	StateCompleted
	StateAborted
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateTyping:
		return "typing"
	case StateTypoCorrecting:
		return "typo-correcting"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// minKeystrokeDelay floors every scaled keystroke wait.
const minKeystrokeDelay = 5 * time.Millisecond

// pollQuantum is how often waits re-check the abort and pause flags.
const pollQuantum = 5 * time.Millisecond

// Batch delays, emulating pointer movement between fields and letting the
// page settle after each one.
const (
	interFieldDelay  = 200 * time.Millisecond
	fieldSettleDelay = 300 * time.Millisecond
)

// run is one typing simulation. Abort and pause are cooperative flags polled
// before every keystroke and inside every wait.
type run struct {
	abort atomic.Bool
	pause atomic.Bool
	state atomic.Int32
}

func (r *run) setState(s State) { r.state.Store(int32(s)) }

// Simulator plays text into controls one character at a time. At most one
// simulation is active per Simulator: starting a new one aborts the current
// one (last-writer-wins), leaving the aborted control in its last-mutated
// state.
type Simulator struct {
	mu     sync.Mutex
	active *run

	rng   *rand.Rand
	sleep func(time.Duration)
	log   *logging.Logger
}

// NewSimulator returns a simulator using the wall clock and a time-seeded
// random source. The logger may be nil.
func NewSimulator(log *logging.Logger) *Simulator {
	return &Simulator{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep: time.Sleep,
		log:   log,
	}
}

// SetRand overrides the randomness source. Intended for tests.
func (s *Simulator) SetRand(rng *rand.Rand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rng
}

// SetSleep overrides the sleep function. Tests substitute an instant sleeper
// that can trigger aborts at a chosen keystroke.
func (s *Simulator) SetSleep(sleep func(time.Duration)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sleep = sleep
}

// State returns the state of the active simulation, or StateIdle.
func (s *Simulator) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return StateIdle
	}
	return State(s.active.state.Load())
}

// Abort requests cooperative cancellation of the active simulation. Partial
// text stays in place; there is no rollback.
func (s *Simulator) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		s.active.abort.Store(true)
	}
}

// Pause halts character consumption without resetting timers.
func (s *Simulator) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		s.active.pause.Store(true)
	}
}

// Resume clears a pause.
func (s *Simulator) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		s.active.pause.Store(false)
	}
}

// Type plays text into the control. It returns false on abort or when a
// precondition fails (nil, detached or unfocusable control); partial text is
// left in place on abort. On success the control is blurred afterwards so the
// page runs its validation.
func (s *Simulator) Type(control driver.Control, text string, cfg Config) bool {
	r := s.begin()

	if control == nil || !control.Attached() {
		r.setState(StateAborted)
		return false
	}
	if err := control.Focus(); err != nil {
		s.log.Debugf("typing: focus failed: %v", err)
		r.setState(StateAborted)
		return false
	}

	// Thinking time before the first character.
	if !s.wait(r, scale(cfg.StartDelay, cfg)) {
		r.setState(StateAborted)
		return false
	}
	r.setState(StateTyping)

	for _, ch := range text {
		if !s.pausePoint(r) {
			r.setState(StateAborted)
			return false
		}

		if s.shouldTypo(ch, cfg) {
			if !s.typo(r, control, ch, cfg) {
				r.setState(StateAborted)
				return false
			}
		}

		if err := control.InsertText(string(ch)); err != nil {
			s.log.Debugf("typing: insert failed: %v", err)
			r.setState(StateAborted)
			return false
		}

		if !s.wait(r, s.keystrokeDelay(ch, cfg)) {
			r.setState(StateAborted)
			return false
		}
	}

	_ = control.Blur()
	r.setState(StateCompleted)
	return true
}

// BatchField pairs a control with the text destined for it.
type BatchField struct {
	Control driver.Control
	Text    string
}

// TypeBatch types fields strictly sequentially with an inter-field delay and
// a post-field settle delay. The first field returning false stops the batch
// early; the return value is the number of fields completed.
func (s *Simulator) TypeBatch(fields []BatchField, cfg Config) int {
	completed := 0
	for i, f := range fields {
		if i > 0 {
			s.sleepFn()(scale(interFieldDelay, cfg))
		}
		if !s.Type(f.Control, f.Text, cfg) {
			return completed
		}
		completed++
		s.sleepFn()(scale(fieldSettleDelay, cfg))
	}
	return completed
}

// begin installs a new run as the active simulation, aborting any current one.
func (s *Simulator) begin() *run {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		s.active.abort.Store(true)
	}
	r := &run{}
	r.setState(StateStarting)
	s.active = r
	return r
}

func (s *Simulator) sleepFn() func(time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sleep
}

func (s *Simulator) rngIntn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func (s *Simulator) rngFloat64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *Simulator) shouldTypo(ch rune, cfg Config) bool {
	if cfg.TypoChance <= 0 {
		return false
	}
	if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) {
		return false
	}
	return s.rngFloat64() < cfg.TypoChance
}

// typo types an adjacent-key substitute, waits, and backspaces it. Returns
// false when aborted or the control rejects the mutation.
func (s *Simulator) typo(r *run, control driver.Control, ch rune, cfg Config) bool {
	r.setState(StateTypoCorrecting)
	defer r.setState(StateTyping)

	sub := s.substituteFor(ch)
	if err := control.InsertText(string(sub)); err != nil {
		return false
	}
	if !s.wait(r, scale(cfg.TypoFixDelay, cfg)) {
		return false
	}
	if err := control.Backspace(); err != nil {
		return false
	}
	return true
}

func (s *Simulator) substituteFor(ch rune) rune {
	s.mu.Lock()
	defer s.mu.Unlock()
	return adjacentKey(ch, s.rng)
}

// keystrokeDelay computes the wait after one correct character: base plus
// uniform jitter in ±variance, scaled by 1/speedMultiplier and floored, with
// punctuation and word pauses added on top.
func (s *Simulator) keystrokeDelay(ch rune, cfg Config) time.Duration {
	d := cfg.BaseDelay
	if v := cfg.DelayVariance; v > 0 {
		d += time.Duration(s.rngIntn(int(2*v)+1)) - v
	}
	d = scale(d, cfg)
	if d < minKeystrokeDelay {
		d = minKeystrokeDelay
	}
	if isSentencePunctuation(ch) {
		d += scale(cfg.PunctuationDelay, cfg)
	}
	if ch == ' ' {
		d += scale(cfg.WordDelay, cfg)
	}
	return d
}

// wait sleeps for d in poll quanta, checking the abort flag before each
// slice. Returns false as soon as abort is observed.
func (s *Simulator) wait(r *run, d time.Duration) bool {
	sleep := s.sleepFn()
	for remaining := d; remaining > 0; {
		if r.abort.Load() {
			return false
		}
		step := pollQuantum
		if remaining < step {
			step = remaining
		}
		sleep(step)
		remaining -= step
	}
	return !r.abort.Load()
}

// pausePoint blocks while the pause flag is set, still honoring abort.
// Returns false when aborted.
func (s *Simulator) pausePoint(r *run) bool {
	sleep := s.sleepFn()
	for r.pause.Load() {
		if r.abort.Load() {
			return false
		}
		sleep(pollQuantum)
	}
	return !r.abort.Load()
}

// scale divides d by the config's speed multiplier.
func scale(d time.Duration, cfg Config) time.Duration {
	m := cfg.SpeedMultiplier
	if m <= 0 {
		m = 1
	}
	return time.Duration(float64(d) / m)
}
