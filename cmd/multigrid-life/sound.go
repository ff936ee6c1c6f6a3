package main

import (
	"log/slog"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	SAMPLE_RATE   = beep.SampleRate(44100)
	TONE_DURATION = 40 * time.Millisecond
	BASE_FREQ     = 220.0
	FREQ_PER_CELL = 4.0
	MAX_FREQ      = 1760.0
)

// toneFreq rises with the population so a run can be followed by ear.
func toneFreq(alive int) float64 {
	return math.Min(BASE_FREQ+FREQ_PER_CELL*float64(alive), MAX_FREQ)
}

// sound plays a short sine tone per generation. A machine without audio
// gets a silent sound rather than an error.
type sound struct {
	log *slog.Logger
	ok  bool
}

func newSound(enabled bool, log *slog.Logger) *sound {
	me := &sound{log: log}
	if !enabled {
		return me
	}
	if err := speaker.Init(SAMPLE_RATE, SAMPLE_RATE.N(time.Second/10)); err != nil {
		log.Warn("audio unavailable, continuing without sound", "err", err)
		return me
	}
	me.ok = true
	return me
}

func (me *sound) generation(alive int) {
	if !me.ok || alive == 0 {
		return
	}
	sine, err := generators.SineTone(SAMPLE_RATE, toneFreq(alive))
	if err != nil {
		me.log.Debug("no tone", "alive", alive, "err", err)
		return
	}
	speaker.Play(beep.Take(SAMPLE_RATE.N(TONE_DURATION), sine))
}

func (me *sound) close() {
	if me.ok {
		speaker.Close()
	}
}
