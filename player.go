package chiptunes

import (
	"fmt"
	"sync"
	"time"

	intaudio "github.com/lionel-rowe/chiptunes/internal/audio"
)

// Playback is one active buffer playback on the shared audio device.
type Playback struct {
	mu         sync.Mutex
	audio      *intaudio.Player
	sampleRate int
	done       chan struct{}
	stopped    bool
	paused     bool
}

// Play starts asynchronous playback of a rendered buffer. The first call
// fixes the process-wide device rate; later calls must pass the same rate
// or fail.
func Play(samples []float32, sampleRate int) (*Playback, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sampleRate must be positive", ErrConfiguration)
	}
	backend, err := intaudio.NewPlayer(sampleRate, samples)
	if err != nil {
		return nil, err
	}
	pb := &Playback{
		audio:      backend,
		sampleRate: sampleRate,
		done:       make(chan struct{}),
	}
	backend.Play()
	go pb.watch()
	return pb, nil
}

// PlayRequest renders the request and starts playback of the result.
func PlayRequest(req Request, opts ...RenderOption) (*Playback, error) {
	samples, err := Render(req, opts...)
	if err != nil {
		return nil, err
	}
	return Play(samples, req.SampleRate)
}

// watch polls the device until the buffer drains, then fires Done. A
// paused playback keeps the watcher alive; a stopped one retires it
// without firing.
func (pb *Playback) watch() {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		pb.mu.Lock()
		stopped, paused := pb.stopped, pb.paused
		playing := false
		if !stopped {
			playing = pb.audio.IsPlaying()
		}
		pb.mu.Unlock()
		if stopped {
			return
		}
		if paused {
			continue
		}
		if !playing {
			close(pb.done)
			return
		}
	}
}

// Done returns a channel closed exactly once when playback ends naturally.
// It is never closed for a playback that was explicitly stopped.
func (pb *Playback) Done() <-chan struct{} {
	return pb.done
}

// Stop halts playback and releases the device player.
func (pb *Playback) Stop() error {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	if pb.stopped {
		return nil
	}
	pb.stopped = true
	return pb.audio.Stop()
}

func (pb *Playback) Pause() {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	if pb.stopped {
		return
	}
	pb.paused = true
	pb.audio.Pause()
}

func (pb *Playback) Resume() {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	if pb.stopped || !pb.paused {
		return
	}
	pb.paused = false
	pb.audio.Play()
}

// Position returns the sample offset the listener actually hears right now.
// Returns 0 once stopped.
func (pb *Playback) Position() int64 {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	if pb.stopped {
		return 0
	}
	return int64(pb.audio.Position().Seconds() * float64(pb.sampleRate))
}
