// Package beepengine implements the playback engine contract for local
// audio files on top of gopxl/beep. Video rendering, network streams, and
// subtitles are outside what this engine can do; the corresponding calls
// fail explicitly. It exposes no equalizer capability.
package beepengine

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/fermata-player/fermata/internal/engine"
)

// resampleQuality is beep's resampler quality (1-64); 4 is the usual
// speed/quality tradeoff.
const resampleQuality = 4

// Engine plays local audio files through the system speaker. It is not
// safe for concurrent use; the session serializes access. The one
// exception is state: the end-of-stream callback transitions it from the
// speaker goroutine, so state lives behind its own mutex.
type Engine struct {
	log *zap.Logger

	stateMu sync.Mutex
	state   engine.State

	file      *os.File
	streamer  beep.StreamSeekCloser
	format    beep.Format
	ctrl      *beep.Ctrl
	resampler *beep.Resampler
	volume    *effects.Volume

	volumePercent int
	rate          float64

	speakerRate beep.SampleRate
	speakerInit bool

	finishedCh chan struct{}
}

// New creates a beep engine.
func New(log *zap.Logger) *Engine {
	return &Engine{
		log:           log,
		state:         engine.Idle,
		volumePercent: 100,
		rate:          1.0,
		finishedCh:    make(chan struct{}, 1),
	}
}

// LoadLocal decodes the file at path and prepares it for Play. Any media
// already loaded is stopped and released first.
func (e *Engine) LoadLocal(path string) error {
	e.Stop()
	e.setState(engine.Opening)

	ext := strings.ToLower(filepath.Ext(path))
	f, err := os.Open(path)
	if err != nil {
		e.setState(engine.Error)
		return err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	default:
		f.Close()
		e.setState(engine.Error)
		return fmt.Errorf("beep engine cannot decode %q files", ext)
	}
	if err != nil {
		f.Close()
		e.setState(engine.Error)
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	if !e.speakerInit {
		e.speakerRate = format.SampleRate
		if err := speaker.Init(e.speakerRate, e.speakerRate.N(time.Second/10)); err != nil {
			streamer.Close()
			f.Close()
			e.setState(engine.Error)
			return fmt.Errorf("init speaker: %w", err)
		}
		e.speakerInit = true
	}

	e.file = f
	e.streamer = streamer
	e.format = format
	e.ctrl = &beep.Ctrl{Streamer: streamer}
	e.resampler = beep.ResampleRatio(resampleQuality, e.ratio(), e.ctrl)
	e.volume = &effects.Volume{Streamer: e.resampler, Base: 2}
	e.applyVolume()

	e.setState(engine.Stopped)
	e.log.Debug("media loaded",
		zap.String("path", path),
		zap.Int("sample_rate", int(format.SampleRate)))
	return nil
}

// LoadStream always fails: this engine renders local audio only.
func (e *Engine) LoadStream(url string) error {
	return fmt.Errorf("beep engine cannot play network streams (%s)", url)
}

// Play starts the loaded media.
func (e *Engine) Play() error {
	if e.streamer == nil {
		return fmt.Errorf("no media loaded")
	}
	if e.State() == engine.Playing {
		return nil
	}

	e.setState(engine.Playing)
	speaker.Play(beep.Seq(e.volume, beep.Callback(func() {
		// Runs on the speaker goroutine at stream end. State must read
		// Ended before the receiver reacts, or a replay of the same media
		// would be refused as already playing.
		e.setState(engine.Ended)
		select {
		case e.finishedCh <- struct{}{}:
		default:
		}
	})))
	return nil
}

// Pause pauses playback.
func (e *Engine) Pause() {
	if !e.State().CanPause() || e.ctrl == nil {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = true
	speaker.Unlock()
	e.setState(engine.Paused)
}

// Resume resumes paused playback.
func (e *Engine) Resume() {
	if !e.State().CanResume() || e.ctrl == nil {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = false
	speaker.Unlock()
	e.setState(engine.Playing)
}

// Stop halts playback and releases the loaded media.
func (e *Engine) Stop() {
	if e.streamer == nil {
		e.setState(engine.Idle)
		return
	}

	if e.speakerInit {
		speaker.Clear()
	}
	e.streamer.Close()
	e.streamer = nil
	if e.file != nil {
		e.file.Close()
		e.file = nil
	}
	e.ctrl = nil
	e.resampler = nil
	e.volume = nil
	e.setState(engine.Stopped)
}

// Seek moves playback to an absolute position, clamped to the media
// length.
func (e *Engine) Seek(pos time.Duration) {
	if e.streamer == nil || !e.State().IsActive() {
		return
	}
	sample := e.format.SampleRate.N(pos)
	sample = max(sample, 0)
	sample = min(sample, e.streamer.Len()-1)

	speaker.Lock()
	if err := e.streamer.Seek(sample); err != nil {
		e.log.Warn("seek failed", zap.Error(err))
	}
	speaker.Unlock()
}

// SetVolume sets the output volume as a 0-100 percentage.
func (e *Engine) SetVolume(percent int) {
	percent = max(percent, 0)
	percent = min(percent, 100)
	e.volumePercent = percent
	e.applyVolume()
}

func (e *Engine) applyVolume() {
	if e.volume == nil {
		return
	}
	speaker.Lock()
	if e.volumePercent == 0 {
		e.volume.Silent = true
	} else {
		e.volume.Silent = false
		// beep volume is logarithmic base 2: 0 is unchanged, -1 is half.
		e.volume.Volume = math.Log2(float64(e.volumePercent) / 100)
	}
	speaker.Unlock()
}

// SetRate sets the playback speed multiplier.
func (e *Engine) SetRate(rate float64) {
	if rate <= 0 {
		return
	}
	e.rate = rate
	if e.resampler == nil {
		return
	}
	speaker.Lock()
	e.resampler.SetRatio(e.ratio())
	speaker.Unlock()
}

// ratio folds the source-to-speaker sample rate conversion together with
// the playback speed multiplier.
func (e *Engine) ratio() float64 {
	if e.format.SampleRate == 0 || e.speakerRate == 0 {
		return e.rate
	}
	return float64(e.format.SampleRate) / float64(e.speakerRate) * e.rate
}

// SetSubtitleFile clears or rejects subtitles: an audio-only engine has
// nowhere to render them.
func (e *Engine) SetSubtitleFile(path string) error {
	if path == "" {
		return nil
	}
	return fmt.Errorf("beep engine cannot render subtitles")
}

// Position returns the current playback position.
func (e *Engine) Position() time.Duration {
	if e.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := e.format.SampleRate.D(e.streamer.Position())
	speaker.Unlock()
	return pos
}

// Duration returns the loaded media length.
func (e *Engine) Duration() time.Duration {
	if e.streamer == nil {
		return 0
	}
	return e.format.SampleRate.D(e.streamer.Len())
}

// State returns the engine state.
func (e *Engine) State() engine.State {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	return e.state
}

func (e *Engine) setState(st engine.State) {
	e.stateMu.Lock()
	e.state = st
	e.stateMu.Unlock()
}

// Finished signals end of media.
func (e *Engine) Finished() <-chan struct{} { return e.finishedCh }

// EqualizerCapability returns nil: beep exposes no equalizer.
func (e *Engine) EqualizerCapability() engine.Equalizer { return nil }

// Close stops playback and releases resources.
func (e *Engine) Close() error {
	e.Stop()
	return nil
}

// Verify Engine implements the engine contract at compile time.
var _ engine.Interface = (*Engine)(nil)
