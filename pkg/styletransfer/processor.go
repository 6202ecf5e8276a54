// Package styletransfer is the MIDI style-transfer plugin: it wires the
// transform engine, the control-message bridge and the declared
// parameter set behind the framework's processor contract.
package styletransfer

import (
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/justyntemme/stylego/pkg/framework/control"
	"github.com/justyntemme/stylego/pkg/framework/debug"
	"github.com/justyntemme/stylego/pkg/framework/plugin"
	"github.com/justyntemme/stylego/pkg/framework/process"
	"github.com/justyntemme/stylego/pkg/framework/state"
	"github.com/justyntemme/stylego/pkg/framework/style"
)

// DefaultTempo is assumed when the host supplies no tempo.
const DefaultTempo = 120.0

// maxEventsPerBlock bounds the engine's preallocated event storage.
const maxEventsPerBlock = 1024

// Info is the plugin's host-facing metadata.
var Info = plugin.Info{
	ID:       "com.stylego.styletransfer",
	Name:     "Style Transfer",
	Version:  "1.0.0",
	Vendor:   "stylego",
	Category: "Fx|MIDI",
}

// Processor transforms incoming note events with swing, accent and
// humanization. Two threads touch it: the host's real-time thread calls
// ProcessBlock, and the host's control thread calls DrainControl,
// parameter edits and state loads. The only data crossing that boundary
// is the atomically published style snapshot and the SPSC control ring.
type Processor struct {
	*plugin.BaseProcessor

	engine  *style.Engine
	store   *style.Store
	ring    *control.Ring
	drainer *control.Drainer
	state   *state.Manager

	profiler *debug.BlockProfiler
	log      *debug.Logger

	oscEnabled atomic.Bool
	seed       int64
}

// New creates the plugin with its declared parameters and default
// style. The seed for humanization randomness is taken from the clock;
// tests override it with SetSeed before Initialize.
func New() *Processor {
	p := &Processor{
		BaseProcessor: plugin.NewBaseProcessor(nil),
		engine:        style.NewEngine(),
		store:         style.NewStore(style.Default()),
		ring:          control.NewRing(control.DefaultRingCapacity),
		profiler:      debug.NewBlockProfiler(0),
		log:           debug.Default(),
		seed:          time.Now().UnixNano(),
	}
	p.Parameters().Add(declareParameters()...)

	p.drainer = control.NewDrainer(p.ring, p.store, paramMirror{p}, p.setOSCEnabled)

	p.state = state.NewManager(p.Parameters())
	p.state.OnRestore(p.restoreFromParameters)

	p.OnInitialize(func(sampleRate float64, maxBlockSize int32) error {
		p.engine.Prepare(sampleRate, maxEventsPerBlock, p.seed)
		return nil
	})

	return p
}

// SetSeed fixes the humanization seed. Must be called before
// Initialize to take effect; fixed seeds make whole runs reproducible.
func (p *Processor) SetSeed(seed int64) {
	p.seed = seed
}

// ControlRing returns the ring a control producer (the OSC listener)
// pushes decoded messages into. Exactly one producer may use it.
func (p *Processor) ControlRing() *control.Ring {
	return p.ring
}

// Profiler returns the block profiler, disabled by default.
func (p *Processor) Profiler() *debug.BlockProfiler {
	return p.profiler
}

// ProcessBlock implements plugin.Processor. Real-time safe: one atomic
// snapshot load, then the pure transform pipeline. Always runs to
// completion; it is never cancelled mid-block.
func (p *Processor) ProcessBlock(ctx *process.Context) {
	done := p.profiler.Begin()
	defer done()

	if !p.engine.Prepared() || ctx.Param(ParamBypass) >= 0.5 {
		ctx.PassThrough()
		return
	}

	tempo := ctx.Tempo
	if tempo <= 0 {
		tempo = DefaultTempo
	}

	snapshot := p.store.Load()
	ctx.Out = p.engine.Apply(ctx.In, snapshot, tempo)
}

// DrainControl folds pending host parameter edits and queued control
// messages into the live snapshot. Called from the host's non-real-time
// control thread at a low, bounded frequency — once per timer tick or
// block boundary, never on the audio thread. Queued messages win over
// host edits from the same tick: they are newer intent.
func (p *Processor) DrainControl() {
	p.store.Publish(p.styleFromParameters())
	p.drainer.Drain()
}

// Style returns the currently live snapshot.
func (p *Processor) Style() style.Parameters {
	return p.store.Load()
}

// SetStyle publishes a complete snapshot and mirrors it into the
// declared parameters. Control-thread only.
func (p *Processor) SetStyle(s style.Parameters) {
	p.store.Publish(s)
	paramMirror{p}.StyleChanged(p.store.Load())
}

// OSCEnabled reports whether the control listener should be running.
func (p *Processor) OSCEnabled() bool {
	return p.oscEnabled.Load()
}

// OSCPort returns the declared control port.
func (p *Processor) OSCPort() int {
	return int(math.Round(p.Parameters().Get(ParamOSCPort).GetPlainValue()))
}

// SaveState writes the parameter snapshot.
func (p *Processor) SaveState(w io.Writer) error {
	return p.state.Save(w)
}

// LoadState restores a parameter snapshot and publishes the resulting
// style atomically. Control-thread only.
func (p *Processor) LoadState(r io.Reader) error {
	return p.state.Load(r)
}

func (p *Processor) setOSCEnabled(enabled bool) {
	p.oscEnabled.Store(enabled)
	if param := p.Parameters().Get(ParamOSCEnabled); param != nil {
		if enabled {
			param.SetPlainValue(1)
		} else {
			param.SetPlainValue(0)
		}
	}
}

func (p *Processor) styleFromParameters() style.Parameters {
	params := p.Parameters()
	return style.Parameters{
		SwingRatio:       params.Get(ParamSwingRatio).GetPlainValue(),
		AccentAmount:     params.Get(ParamAccentAmount).GetPlainValue(),
		HumanizeTiming:   params.Get(ParamHumanizeTiming).GetPlainValue(),
		HumanizeVelocity: params.Get(ParamHumanizeVelocity).GetPlainValue(),
	}
}

// restoreFromParameters is the state manager's restore hook: every
// loaded value is already clamped in the registry, so one publish makes
// the whole restored style live at once.
func (p *Processor) restoreFromParameters() {
	p.store.Publish(p.styleFromParameters())
	p.oscEnabled.Store(p.Parameters().Get(ParamOSCEnabled).GetPlainValue() >= 0.5)
	p.log.Info("state restored: %+v", p.store.Load())
}

// paramMirror keeps the declared parameters in sync with control-driven
// style changes so a generic editor shows what the engine is doing.
type paramMirror struct {
	p *Processor
}

func (m paramMirror) StyleChanged(s style.Parameters) {
	params := m.p.Parameters()
	params.Get(ParamSwingRatio).SetPlainValue(s.SwingRatio)
	params.Get(ParamAccentAmount).SetPlainValue(s.AccentAmount)
	params.Get(ParamHumanizeTiming).SetPlainValue(s.HumanizeTiming)
	params.Get(ParamHumanizeVelocity).SetPlainValue(s.HumanizeVelocity)
}
