// Command stylehost is a small live host shell around the style-transfer
// processor: it streams events from a MIDI input port through the engine
// to an output port in fixed blocks, drains control messages on a timer
// tick, and runs the OSC listener while the plugin has it enabled.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register MIDI driver

	"github.com/justyntemme/stylego/pkg/framework/control"
	"github.com/justyntemme/stylego/pkg/framework/process"
	"github.com/justyntemme/stylego/pkg/midi"
	"github.com/justyntemme/stylego/pkg/osc"
	"github.com/justyntemme/stylego/pkg/styletransfer"
)

var (
	listPorts  = flag.Bool("list-ports", false, "list available MIDI ports and exit")
	inPort     = flag.String("in", "", "MIDI input port name (substring match)")
	outPort    = flag.String("out", "", "MIDI output port name (substring match)")
	tempo      = flag.Float64("tempo", 120.0, "tempo in BPM")
	sampleRate = flag.Float64("rate", 48000, "sample rate")
	blockMs    = flag.Int("block-ms", 10, "block length in milliseconds")
	oscEnabled = flag.Bool("osc", false, "enable the OSC control listener at startup")
	oscPort    = flag.Int("osc-port", styletransfer.DefaultOSCPort, "OSC control port")
	seed       = flag.Int64("seed", 0, "humanization seed (0 = time-based)")
	stats      = flag.Bool("stats", false, "log block timing stats on exit")
	verbose    = flag.Bool("v", false, "verbose logging")
)

func main() {
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *listPorts {
		printPorts()
		return
	}

	if err := run(log); err != nil && err != context.Canceled {
		log.WithError(err).Fatal("stylehost failed")
	}
}

func printPorts() {
	fmt.Println("MIDI input ports:")
	for _, p := range gomidi.GetInPorts() {
		fmt.Printf("  %s\n", p.String())
	}
	fmt.Println("MIDI output ports:")
	for _, p := range gomidi.GetOutPorts() {
		fmt.Printf("  %s\n", p.String())
	}
}

func run(log *logrus.Logger) error {
	defer gomidi.CloseDriver()

	in, err := gomidi.FindInPort(*inPort)
	if err != nil {
		return fmt.Errorf("finding input port %q: %w", *inPort, err)
	}
	out, err := gomidi.FindOutPort(*outPort)
	if err != nil {
		return fmt.Errorf("finding output port %q: %w", *outPort, err)
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		return fmt.Errorf("opening output port: %w", err)
	}

	proc := styletransfer.New()
	if *seed != 0 {
		proc.SetSeed(*seed)
	}
	blockSamples := int32(*sampleRate * float64(*blockMs) / 1000.0)
	if err := proc.Initialize(*sampleRate, blockSamples); err != nil {
		return fmt.Errorf("initializing processor: %w", err)
	}
	proc.Parameters().Get(styletransfer.ParamOSCPort).SetPlainValue(float64(*oscPort))
	if *oscEnabled {
		proc.ControlRing().Push(control.BoolMessage(control.SetEnable, true, 0))
	}
	if *stats {
		proc.Profiler().SetEnabled(true)
	}

	// Live input lands in a non-real-time queue; the block loop collects
	// whatever arrived before each block boundary.
	input := midi.NewQueue()
	start := time.Now()
	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		if e, ok := decode(msg, time.Since(start).Seconds()); ok {
			input.Add(e)
		}
	})
	if err != nil {
		return fmt.Errorf("listening on %s: %w", in.String(), err)
	}
	defer stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go runOSC(ctx, proc, log)

	log.WithFields(logrus.Fields{
		"in":    in.String(),
		"out":   out.String(),
		"tempo": *tempo,
		"block": fmt.Sprintf("%dms", *blockMs),
	}).Info("streaming")

	pctx := process.NewContext(1024, proc.Parameters())
	ticker := time.NewTicker(time.Duration(*blockMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if *stats {
				log.WithField("stats", proc.Profiler().Snapshot().String()).Info("block timing")
			}
			return ctx.Err()
		case <-ticker.C:
			now := time.Since(start).Seconds()

			// Drain control messages once per block, on this thread,
			// never inside the transform.
			proc.DrainControl()

			pctx.Begin(now-float64(*blockMs)/1000.0, blockSamples, *sampleRate, *tempo)
			for _, e := range input.CollectThrough(now) {
				if !pctx.AddEvent(e) {
					log.Warn("block full, event dropped")
				}
			}
			proc.ProcessBlock(pctx)

			for _, e := range pctx.Out {
				if msg, ok := encode(e); ok {
					if err := send(msg); err != nil {
						log.WithError(err).Warn("send failed")
					}
				}
			}
		}
	}
}

// runOSC keeps the OSC listener running while the plugin has it
// enabled, polling the enable flag on a bounded interval so shutdown
// and toggles are cooperative.
func runOSC(ctx context.Context, proc *styletransfer.Processor, log *logrus.Logger) {
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)
	stopListener := func() {
		if cancel != nil {
			cancel()
			<-done
			cancel = nil
		}
	}
	defer stopListener()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if proc.OSCEnabled() && cancel == nil {
				recv, err := osc.NewReceiver(proc.OSCPort(), proc.ControlRing(), log)
				if err != nil {
					log.WithError(err).Error("osc receiver setup failed")
					continue
				}
				var lctx context.Context
				lctx, cancel = context.WithCancel(ctx)
				done = make(chan struct{})
				go func() {
					defer close(done)
					recv.Run(lctx)
				}()
			} else if !proc.OSCEnabled() && cancel != nil {
				stopListener()
			}
		}
	}
}

func decode(msg gomidi.Message, timeSeconds float64) (midi.Event, bool) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		return midi.NoteOn(ch+1, key, vel, timeSeconds), true
	case msg.GetNoteEnd(&ch, &key):
		return midi.NoteOff(ch+1, key, timeSeconds), true
	default:
		// Everything else passes through the engine untouched; carry
		// the raw kinds we model, skip system realtime noise.
		var val uint8
		var cc uint8
		if msg.GetControlChange(&ch, &cc, &val) {
			return midi.Event{
				Kind:        midi.EventTypeControlChange,
				Channel:     ch + 1,
				Note:        cc,
				Data:        val,
				TimeSeconds: timeSeconds,
			}, true
		}
		return midi.Event{}, false
	}
}

func encode(e midi.Event) (gomidi.Message, bool) {
	switch e.Kind {
	case midi.EventTypeNoteOn:
		return gomidi.NoteOn(e.Channel-1, e.Note, e.Velocity), true
	case midi.EventTypeNoteOff:
		return gomidi.NoteOff(e.Channel-1, e.Note), true
	case midi.EventTypeControlChange:
		return gomidi.ControlChange(e.Channel-1, e.Note, e.Data), true
	default:
		return nil, false
	}
}

