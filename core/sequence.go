package core

// Step is one stage of the PWM bring-up sequence, in hardware order
type Step uint8

const (
	StepBoardInit      Step = iota // board and platform bring-up
	StepModuleClock                // fCCU reaches the module
	StepModuleInit                 // module released, MCMS action selected
	StepStartPrescaler             // prescaler running
	StepSliceClock                 // slice out of idle
	StepCompareInit                // compare mode record applied
	StepPeriodMatch                // period shadow written
	StepCompareMatch               // compare shadow written
	StepDirectPin                  // direct output pin bound
	StepInvertedPin                // inverted output pin bound
	StepShadowTransfer             // shadow values committed
	StepDeadTime                   // dead time generator programmed
	StepStartTimer                 // timer running
	numSteps
)

var stepNames = [numSteps]string{
	"board_init",
	"module_clock",
	"module_init",
	"start_prescaler",
	"slice_clock",
	"compare_init",
	"period_match",
	"compare_match",
	"direct_pin",
	"inverted_pin",
	"shadow_transfer",
	"dead_time",
	"start_timer",
}

func (s Step) String() string {
	if s < numSteps {
		return stepNames[s]
	}
	return "step(" + itoa(int(s)) + ")"
}

// Sequence is the order Bringup runs the steps in
var Sequence = []Step{
	StepBoardInit,
	StepModuleClock,
	StepModuleInit,
	StepStartPrescaler,
	StepSliceClock,
	StepCompareInit,
	StepPeriodMatch,
	StepCompareMatch,
	StepDirectPin,
	StepInvertedPin,
	StepShadowTransfer,
	StepDeadTime,
	StepStartTimer,
}

// SliceState is the life cycle of the slice being configured:
// Unclocked -> Idle -> Configured -> Armed -> Running. Running is terminal.
type SliceState uint8

const (
	StateUnclocked  SliceState = iota // module or slice has no clock yet
	StateIdle                         // clocked, reset configuration
	StateConfigured                   // compare record applied
	StateArmed                        // period and compare written
	StateRunning                      // timer started
)

func (s SliceState) String() string {
	switch s {
	case StateUnclocked:
		return "unclocked"
	case StateIdle:
		return "idle"
	case StateConfigured:
		return "configured"
	case StateArmed:
		return "armed"
	case StateRunning:
		return "running"
	default:
		return "state(" + itoa(int(s)) + ")"
	}
}

// BoardInitFunc brings up the board before any peripheral is touched
type BoardInitFunc func() error

// Sequencer applies a Plan one step at a time and refuses steps whose
// hardware precondition is not met yet.
type Sequencer struct {
	plan  *Plan
	board BoardInitFunc
	debug DebugWriter

	module  *CCU8
	slice   *Slice
	port    *GPIOPort
	done    [numSteps]bool
	state   SliceState
	pending bool // shadow values written but not transferred
	steps   []Step
}

// NewSequencer prepares a sequencer for plan on bus. The plan is not
// validated here; Bringup does that.
func NewSequencer(bus Bus, plan *Plan, opts Options) *Sequencer {
	t := &plan.Target
	module := NewCCU8(bus, t.ModuleBase, t.ModuleClock)
	return &Sequencer{
		plan:   plan,
		board:  opts.BoardInit,
		debug:  opts.Debug,
		module: module,
		slice:  module.Slice(t.Slice),
		port:   NewGPIOPort(bus, t.PortBase, t.Pad),
	}
}

// State returns the current slice state
func (s *Sequencer) State() SliceState {
	return s.state
}

// ShadowPending reports whether period/compare values wait for a transfer
func (s *Sequencer) ShadowPending() bool {
	return s.pending
}

// Done reports whether step has completed
func (s *Sequencer) Done(step Step) bool {
	return step < numSteps && s.done[step]
}

// Steps returns the completed steps in the order they ran
func (s *Sequencer) Steps() []Step {
	return append([]Step(nil), s.steps...)
}

// Module returns the module driver
func (s *Sequencer) Module() *CCU8 { return s.module }

// Slice returns the slice driver
func (s *Sequencer) Slice() *Slice { return s.slice }

// requires lists, per step, the steps that must have completed first.
var requires = [numSteps][]Step{
	StepBoardInit:      nil,
	StepModuleClock:    {StepBoardInit},
	StepModuleInit:     {StepModuleClock},
	StepStartPrescaler: {StepModuleInit},
	StepSliceClock:     {StepStartPrescaler},
	StepCompareInit:    {StepSliceClock},
	StepPeriodMatch:    {StepCompareInit},
	StepCompareMatch:   {StepCompareInit},
	StepDirectPin:      {StepBoardInit},
	StepInvertedPin:    {StepBoardInit},
	StepShadowTransfer: {StepPeriodMatch, StepCompareMatch},
	StepDeadTime:       {StepShadowTransfer},
	StepStartTimer:     {StepShadowTransfer, StepDeadTime, StepDirectPin, StepInvertedPin},
}

// Do runs one step. A step may run once; it fails with ErrOutOfOrder if a
// prerequisite has not completed or the slice is already running.
func (s *Sequencer) Do(step Step) error {
	if step >= numSteps {
		return &StepError{Step: step, State: s.state, Err: ErrOutOfOrder}
	}
	if s.done[step] || s.state == StateRunning {
		return &StepError{Step: step, State: s.state, Err: ErrOutOfOrder}
	}
	for _, r := range requires[step] {
		if !s.done[r] {
			return &StepError{Step: step, State: s.state, Err: ErrOutOfOrder}
		}
	}

	p := s.plan
	t := &p.Target
	switch step {
	case StepBoardInit:
		if s.board != nil {
			if err := s.board(); err != nil {
				return &StepError{Step: step, State: s.state, Err: wrapBoardInit(err)}
			}
		}
	case StepModuleClock:
		s.module.SetModuleClock(p.Clock)
	case StepModuleInit:
		s.module.Init(p.Action)
	case StepStartPrescaler:
		s.module.StartPrescaler()
	case StepSliceClock:
		s.module.EnableClock(t.Slice)
		s.state = StateIdle
	case StepCompareInit:
		s.slice.CompareInit(&p.Slice)
		s.state = StateConfigured
	case StepPeriodMatch:
		s.slice.SetTimerPeriodMatch(p.Period)
		s.arm(StepCompareMatch)
	case StepCompareMatch:
		s.slice.SetTimerCompareMatch(t.CompareChannel, p.Compare)
		s.arm(StepPeriodMatch)
	case StepDirectPin:
		s.port.Init(t.Direct.Pin, p.DirectPin)
	case StepInvertedPin:
		s.port.Init(t.Inverted.Pin, p.InvertedPin)
	case StepShadowTransfer:
		s.module.EnableShadowTransfer(t.ShadowMask)
		s.pending = false
	case StepDeadTime:
		s.slice.DeadTimeInit(&p.DeadTime)
	case StepStartTimer:
		s.slice.StartTimer()
		s.state = StateRunning
	}

	s.done[step] = true
	s.steps = append(s.steps, step)
	if s.debug != nil {
		s.debug("[PWM] " + step.String() + " -> " + s.state.String())
	}
	return nil
}

// arm marks the shadow registers dirty and moves to Armed once both the
// period and the compare value have been written.
func (s *Sequencer) arm(other Step) {
	s.pending = true
	if s.done[other] {
		s.state = StateArmed
	}
}

func wrapBoardInit(err error) error {
	return &boardInitError{cause: err}
}

type boardInitError struct {
	cause error
}

func (e *boardInitError) Error() string {
	return ErrBoardInit.Error() + ": " + e.cause.Error()
}

func (e *boardInitError) Unwrap() []error {
	return []error{ErrBoardInit, e.cause}
}

// Options carries the collaborators of Bringup
type Options struct {
	// BoardInit runs before any register access. nil means the board needs none.
	BoardInit BoardInitFunc

	// Debug receives one line per step. nil disables the output.
	Debug DebugWriter
}

// Result is what Bringup leaves behind: the only record of the
// configuration once it lives in the hardware.
type Result struct {
	Target Target
	State  SliceState
	Steps  []Step
	Timing Timing
}

// Bringup validates plan and applies it to bus in hardware order, leaving
// the slice running. On a board init failure no register has been touched.
func Bringup(bus Bus, plan Plan, opts Options) (*Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	seq := NewSequencer(bus, &plan, opts)
	for _, step := range Sequence {
		if err := seq.Do(step); err != nil {
			return &Result{Target: plan.Target, State: seq.State(), Steps: seq.Steps()}, err
		}
	}
	return &Result{
		Target: plan.Target,
		State:  seq.State(),
		Steps:  seq.Steps(),
		Timing: plan.Timing(),
	}, nil
}
