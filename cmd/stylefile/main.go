// Command stylefile applies the style-transfer pipeline to a Standard
// MIDI File offline: read, transform note events block by block through
// the same processor the live host uses, write back out. With a fixed
// -seed the output is byte-identical across runs.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/justyntemme/stylego/pkg/framework/process"
	"github.com/justyntemme/stylego/pkg/framework/style"
	"github.com/justyntemme/stylego/pkg/midi"
	"github.com/justyntemme/stylego/pkg/styletransfer"
)

var (
	inPath  = flag.String("in", "", "input .mid file")
	outPath = flag.String("out", "", "output .mid file")

	swing       = flag.Float64("swing", 0.5, "swing ratio 0..1 (0.5 = straight)")
	accent      = flag.Float64("accent", 20, "accent velocity amount")
	humTiming   = flag.Float64("humanize-timing", 0, "timing humanization 0..1")
	humVelocity = flag.Float64("humanize-velocity", 0, "velocity humanization 0..1")
	seed        = flag.Int64("seed", 0, "humanization seed (0 = time-based)")

	sampleRate = flag.Float64("rate", 48000, "sample rate used for event ordering")
	blockSize  = flag.Int("block", 512, "events per processing block")
	verbose    = flag.Bool("v", false, "verbose logging")
)

func main() {
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *inPath == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(log); err != nil {
		log.WithError(err).Fatal("stylefile failed")
	}
}

func run(log *logrus.Logger) error {
	rd, err := smf.ReadFile(*inPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *inPath, err)
	}

	mt, ok := rd.TimeFormat.(smf.MetricTicks)
	if !ok {
		return fmt.Errorf("unsupported time format %v", rd.TimeFormat)
	}
	ticksPerQuarter := float64(mt)

	bpm := 120.0
	if changes := rd.TempoChanges(); len(changes) > 0 {
		bpm = changes[0].BPM
	}
	log.WithFields(logrus.Fields{"bpm": bpm, "tracks": len(rd.Tracks)}).Info("loaded")

	proc := styletransfer.New()
	if *seed != 0 {
		proc.SetSeed(*seed)
	}
	if err := proc.Initialize(*sampleRate, int32(*blockSize)); err != nil {
		return fmt.Errorf("initializing processor: %w", err)
	}
	proc.SetStyle(style.Parameters{
		SwingRatio:       *swing,
		AccentAmount:     *accent,
		HumanizeTiming:   *humTiming,
		HumanizeVelocity: *humVelocity,
	})

	ctx := process.NewContext(*blockSize, proc.Parameters())

	out := smf.New()
	out.TimeFormat = rd.TimeFormat

	for i, track := range rd.Tracks {
		styled := transformTrack(track, proc, ctx, bpm, ticksPerQuarter)
		if err := out.Add(styled); err != nil {
			return fmt.Errorf("adding track %d: %w", i, err)
		}
	}

	if err := out.WriteFile(*outPath); err != nil {
		return fmt.Errorf("writing %s: %w", *outPath, err)
	}
	log.WithField("out", *outPath).Info("wrote styled file")
	return nil
}

// trackedEvent pairs an SMF message with its absolute tick, either
// passed through untouched or rebuilt from a styled note event.
type trackedEvent struct {
	absTicks uint64
	order    int
	msg      smf.Message
}

// transformTrack runs every note-on of one track through the processor
// in blocks. All other messages pass through byte-identical at their
// original ticks.
func transformTrack(track smf.Track, proc *styletransfer.Processor, ctx *process.Context, bpm, ticksPerQuarter float64) smf.Track {
	secondsPerTick := 60.0 / bpm / ticksPerQuarter

	var passthrough []trackedEvent
	var notes []midi.Event

	var abs uint64
	order := 0
	for _, ev := range track {
		abs += uint64(ev.Delta)

		// Drop the end-of-track marker: styled notes can land past its
		// original tick, so the track is re-closed after the merge.
		if ev.Message.Is(smf.MetaEndOfTrackMsg) {
			continue
		}

		var ch, key, vel uint8
		if ev.Message.GetNoteStart(&ch, &key, &vel) {
			notes = append(notes, midi.NoteOn(ch+1, key, vel, float64(abs)*secondsPerTick))
			order++
			continue
		}
		passthrough = append(passthrough, trackedEvent{absTicks: abs, order: order, msg: ev.Message})
		order++
	}

	var styled []midi.Event
	for start := 0; start < len(notes); start += *blockSize {
		end := start + *blockSize
		if end > len(notes) {
			end = len(notes)
		}
		ctx.Begin(notes[start].TimeSeconds, int32(end-start), proc.SampleRate(), bpm)
		ctx.SetInput(notes[start:end])
		proc.DrainControl()
		proc.ProcessBlock(ctx)
		styled = append(styled, ctx.Out...)
	}

	// Merge styled notes and passthrough events back into tick order.
	merged := make([]trackedEvent, 0, len(styled)+len(passthrough))
	merged = append(merged, passthrough...)
	for i, n := range styled {
		t := n.TimeSeconds
		if t < 0 {
			// Humanization can nudge an event just before time zero.
			t = 0
		}
		merged = append(merged, trackedEvent{
			absTicks: uint64(t / secondsPerTick),
			order:    len(passthrough) + i,
			msg:      smf.Message(gomidi.NoteOn(n.Channel-1, n.Note, n.Velocity)),
		})
	}
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].absTicks != merged[j].absTicks {
			return merged[i].absTicks < merged[j].absTicks
		}
		return merged[i].order < merged[j].order
	})

	var outTrack smf.Track
	var prev uint64
	for _, ev := range merged {
		outTrack.Add(uint32(ev.absTicks-prev), ev.msg)
		prev = ev.absTicks
	}
	outTrack.Close(0)
	return outTrack
}
