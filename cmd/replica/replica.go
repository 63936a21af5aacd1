// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package main provides the replica command line tool, which
// replays a recorded snapshot trace through a tracked world and
// reports how smoothly the interpolated replicas move compared to
// rendering the raw snapshots directly.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"cogentcore.org/core/base/logx"
	"cogentcore.org/core/math32/minmax"
	"cogentcore.org/replica"
	"cogentcore.org/replica/blend"
	"cogentcore.org/replica/trace"
)

var (
	traceFile = flag.String("trace", "", "the YAML snapshot trace file to replay (required)")
	config    = flag.String("config", "", "optional TOML file with tracking parameters")
	rate      = flag.Float64("rate", 60, "render sweep rate in Hz")
	out       = flag.String("out", "", "optional YAML trace file for the interpolated sweep")
	verbose   = flag.Bool("v", false, "enable debug logging")
)

func main() {
	flag.Usage = Usage
	flag.Parse()
	if *verbose {
		logx.UserLevel = slog.LevelDebug
	}
	if *traceFile == "" {
		Usage()
		os.Exit(2)
	}
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "replica:", err)
		os.Exit(1)
	}
}

// Usage is a replacement usage function for the flags package.
func Usage() {
	_, _ = fmt.Fprintf(os.Stderr, "Replica replays recorded snapshot traces and reports on replica smoothness.\n")
	_, _ = fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "\treplica -trace session.yaml [flags]\n")
	_, _ = fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}

func run() error {
	frames, err := trace.Load(*traceFile)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("trace %s has no frames", *traceFile)
	}
	if *rate <= 0 {
		return fmt.Errorf("invalid rate %g", *rate)
	}
	pr := replica.Params{}
	if *config != "" {
		pr, err = replica.OpenParams(*config)
		if err != nil {
			return err
		}
	} else {
		pr.Defaults()
	}

	rep := sweep(frames, pr, *rate)
	printReport(os.Stdout, rep)
	if *out != "" {
		return trace.Save(*out, rep.Sweep)
	}
	return nil
}

// entityReport is the per entity outcome of a sweep.
type entityReport struct {

	// ID is the entity id.
	ID string

	// Frames is the number of raw frames in the trace.
	Frames int

	// Stats are the track's cumulative event counts.
	Stats replica.Stats

	// Span is the range of capture times in the trace.
	Span minmax.F64

	// RawStep is the range of per step position jumps when
	// rendering the latest raw snapshot (sample and hold).
	RawStep minmax.F64

	// SmoothStep is the range of per step position jumps when
	// rendering the interpolated state.
	SmoothStep minmax.F64
}

// sweepReport is the outcome of replaying a trace.
type sweepReport struct {

	// Rate is the render sweep rate in Hz.
	Rate float64

	// Steps is the number of render steps taken.
	Steps int

	// Entities are the per entity reports, in first seen order.
	Entities []entityReport

	// Sweep is the interpolated state of every entity at every
	// step, as trace frames.
	Sweep []trace.Frame
}

// sweep steps through the trace the way a live render loop would:
// frames are fed to the world as their capture times pass, and every
// entity is queried once per step, comparing the per step motion of
// the raw and interpolated renderings.
func sweep(frames []trace.Frame, pr replica.Params, rate float64) *sweepReport {
	w := replica.NewWorld[blend.Pose](blend.Poses{}, pr)
	ents := trace.ByEntity(frames)

	var span minmax.F64
	span.SetInfinity()
	for _, fr := range frames {
		span.FitValInRange(fr.At)
	}

	spans := map[string]*minmax.F64{}
	rawSteps := map[string]*minmax.F64{}
	smoothSteps := map[string]*minmax.F64{}
	for _, id := range ents.Keys {
		spans[id], rawSteps[id], smoothSteps[id] = newRange(), newRange(), newRange()
		for _, fr := range ents.At(id) {
			spans[id].FitValInRange(fr.At)
		}
	}

	rawLatest := map[string]blend.Pose{}
	prevRaw := map[string]blend.Pose{}
	prevSmooth := map[string]blend.Pose{}

	rep := &sweepReport{Rate: rate}
	dt := 1 / rate
	// run past the end of the trace so delayed queries drain
	steps := int(math.Ceil((span.Range()+pr.Delay)*rate)) + 1
	fi := 0
	for i := range steps {
		t := span.Min + float64(i)*dt
		for fi < len(frames) && frames[fi].At <= t {
			fr := frames[fi]
			fi++
			if fr.Teleport {
				logx.PrintfDebug("replica: teleport of %s at %g", fr.ID, fr.At)
				w.Teleport(fr.ID)
				// a teleport is not a smoothing failure: restart
				// the step metrics on both sides of the jump
				delete(prevRaw, fr.ID)
				delete(prevSmooth, fr.ID)
			}
			w.Observe(fr.ID, fr.Pose, fr.At)
			rawLatest[fr.ID] = fr.Pose
		}
		for _, id := range ents.Keys {
			if raw, ok := rawLatest[id]; ok {
				if prev, ok := prevRaw[id]; ok {
					rawSteps[id].FitValInRange(float64(raw.Pos.Sub(prev.Pos).Length()))
				}
				prevRaw[id] = raw
			}
			smooth, err := w.State(id, t)
			if err != nil {
				continue
			}
			if prev, ok := prevSmooth[id]; ok {
				smoothSteps[id].FitValInRange(float64(smooth.Pos.Sub(prev.Pos).Length()))
			}
			prevSmooth[id] = smooth
			rep.Sweep = append(rep.Sweep, trace.Frame{At: t, ID: id, Pose: smooth})
		}
		rep.Steps++
	}

	for _, id := range ents.Keys {
		st, _ := w.Stats(id)
		rep.Entities = append(rep.Entities, entityReport{
			ID:         id,
			Frames:     len(ents.At(id)),
			Stats:      st,
			Span:       *spans[id],
			RawStep:    *rawSteps[id],
			SmoothStep: *smoothSteps[id],
		})
	}
	return rep
}

// newRange returns a range ready for iterative FitValInRange calls.
func newRange() *minmax.F64 {
	r := &minmax.F64{}
	r.SetInfinity()
	return r
}

func printReport(out io.Writer, rep *sweepReport) {
	fmt.Fprintf(out, "replayed %d entities at %g Hz (%d steps)\n", len(rep.Entities), rep.Rate, rep.Steps)
	for _, er := range rep.Entities {
		fmt.Fprintf(out, "%s: %d frames over %.2fs", er.ID, er.Frames, er.Span.Range())
		fmt.Fprintf(out, ", stale %d, clamps early %d late %d", er.Stats.Stale, er.Stats.ClampedEarly, er.Stats.ClampedLate)
		if er.RawStep.IsValid() && er.SmoothStep.IsValid() {
			fmt.Fprintf(out, ", max step raw %.3f smoothed %.3f", er.RawStep.Max, er.SmoothStep.Max)
		}
		fmt.Fprintln(out)
	}
}
