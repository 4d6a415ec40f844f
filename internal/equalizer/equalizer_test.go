package equalizer

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/fermata-player/fermata/internal/engine"
	"github.com/fermata-player/fermata/internal/errs"
)

// fakeEq is a settable equalizer capability.
type fakeEq struct {
	preamp float64
	bands  []engine.Band
	err    error
}

func (f *fakeEq) SetPreampGain(db float64) error {
	if f.err != nil {
		return f.err
	}
	f.preamp = db
	return nil
}

func (f *fakeEq) SetBandGain(index int, db float64) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.bands {
		if f.bands[i].Index == index {
			f.bands[i].Gain = db
			return nil
		}
	}
	return errors.New("no such band")
}

func (f *fakeEq) PreampGain() float64 { return f.preamp }

func (f *fakeEq) Bands() []engine.Band { return f.bands }

func TestAdapter_NoCapability(t *testing.T) {
	adapter := New(zap.NewNop(), nil)

	if adapter.Available() {
		t.Error("Available() = true, want false")
	}
	if err := adapter.SetPreampGain(3.0); !errors.Is(err, errs.ErrEngineUnavailable) {
		t.Errorf("SetPreampGain err = %v, want ErrEngineUnavailable", err)
	}
	if err := adapter.SetBandGain(0, 3.0); !errors.Is(err, errs.ErrEngineUnavailable) {
		t.Errorf("SetBandGain err = %v, want ErrEngineUnavailable", err)
	}
	if st := adapter.State(); st.Preamp != 0 || len(st.Bands) != 0 {
		t.Errorf("State() = %+v, want zero state", st)
	}
}

func TestAdapter_ForwardsToCapability(t *testing.T) {
	eq := &fakeEq{bands: []engine.Band{
		{Index: 0, Frequency: 60},
		{Index: 1, Frequency: 1000},
	}}
	adapter := New(zap.NewNop(), eq)

	if !adapter.Available() {
		t.Fatal("Available() = false, want true")
	}
	if err := adapter.SetPreampGain(-4.5); err != nil {
		t.Fatalf("SetPreampGain: %v", err)
	}
	if err := adapter.SetBandGain(1, 6.0); err != nil {
		t.Fatalf("SetBandGain: %v", err)
	}

	st := adapter.State()
	if st.Preamp != -4.5 {
		t.Errorf("Preamp = %v, want -4.5", st.Preamp)
	}
	if len(st.Bands) != 2 || st.Bands[1].Gain != 6.0 {
		t.Errorf("Bands = %+v", st.Bands)
	}
}

func TestAdapter_CapabilityErrorPropagates(t *testing.T) {
	wantErr := errors.New("engine refused")
	adapter := New(zap.NewNop(), &fakeEq{err: wantErr})

	if err := adapter.SetPreampGain(1.0); !errors.Is(err, wantErr) {
		t.Errorf("SetPreampGain err = %v, want %v", err, wantErr)
	}
	if err := adapter.SetBandGain(0, 1.0); !errors.Is(err, wantErr) {
		t.Errorf("SetBandGain err = %v, want %v", err, wantErr)
	}
}
