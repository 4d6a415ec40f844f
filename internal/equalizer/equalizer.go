// Package equalizer is a thin pass-through to the engine's equalizer
// capability. When the engine exposes none, every operation reports an
// unavailable failure and changes nothing.
package equalizer

import (
	"go.uber.org/zap"

	"github.com/fermata-player/fermata/internal/engine"
	"github.com/fermata-player/fermata/internal/errs"
)

// Band mirrors one equalizer band for presentation.
type Band struct {
	Index     int
	Frequency float64
	Gain      float64
}

// State is a snapshot of the equalizer settings.
type State struct {
	Preamp float64
	Bands  []Band
}

// Adapter forwards equalizer operations to the engine capability.
type Adapter struct {
	log *zap.Logger
	cap engine.Equalizer
}

// New creates an adapter over the engine's equalizer capability, which may
// be nil.
func New(log *zap.Logger, cap engine.Equalizer) *Adapter {
	return &Adapter{log: log, cap: cap}
}

// Available reports whether the engine exposes an equalizer.
func (a *Adapter) Available() bool {
	return a.cap != nil
}

// SetPreampGain sets the preamp gain in dB.
func (a *Adapter) SetPreampGain(db float64) error {
	if a.cap == nil {
		return errs.Wrap(errs.OpSetPreamp, errs.ErrEngineUnavailable, "no equalizer capability")
	}
	if err := a.cap.SetPreampGain(db); err != nil {
		a.log.Warn("preamp gain rejected", zap.Float64("db", db), zap.Error(err))
		return err
	}
	return nil
}

// SetBandGain sets the gain of one band in dB.
func (a *Adapter) SetBandGain(index int, db float64) error {
	if a.cap == nil {
		return errs.Wrap(errs.OpSetBandGain, errs.ErrEngineUnavailable, "no equalizer capability")
	}
	if err := a.cap.SetBandGain(index, db); err != nil {
		a.log.Warn("band gain rejected",
			zap.Int("band", index), zap.Float64("db", db), zap.Error(err))
		return err
	}
	return nil
}

// State returns the current settings, or the zero state when the
// capability is unavailable.
func (a *Adapter) State() State {
	if a.cap == nil {
		return State{}
	}
	bands := a.cap.Bands()
	out := State{
		Preamp: a.cap.PreampGain(),
		Bands:  make([]Band, len(bands)),
	}
	for i, b := range bands {
		out.Bands[i] = Band{Index: b.Index, Frequency: b.Frequency, Gain: b.Gain}
	}
	return out
}
