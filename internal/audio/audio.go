// Package audio plays procedural firework sounds through oto.
package audio

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// maxBursts limits simultaneous detonations to avoid clipping.
const maxBursts = 3

// Player owns the oto context. A nil Player is silent.
type Player struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64

	activeBursts atomic.Int32
	variant      atomic.Uint64
}

// New opens the audio device. Only one Player may exist per process.
func New(volume float64) (*Player, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	return &Player{ctx: ctx, ready: ready, volume: clamp(volume, 0, 1)}, nil
}

// PlayBurst plays a detonation whose size follows magnitude in [0,1].
func (a *Player) PlayBurst(magnitude, pan float64) {
	if !a.isReady() {
		return
	}
	if a.activeBursts.Add(1) > maxBursts {
		a.activeBursts.Add(-1)
		return
	}
	samples := genBurst(magnitude, pan, a.nextSeed())
	go func() {
		defer a.activeBursts.Add(-1)
		a.play(samples)
	}()
}

// PlayLaunch plays a rocket whistle.
func (a *Player) PlayLaunch(pan float64) {
	if !a.isReady() {
		return
	}
	samples := genLaunch(pan, a.nextSeed())
	go a.play(samples)
}

func (a *Player) isReady() bool {
	if a == nil || a.volume <= 0 {
		return false
	}
	select {
	case <-a.ready:
		return true
	default:
		return false
	}
}

func (a *Player) nextSeed() uint64 {
	return a.variant.Add(0x9E3779B97F4A7C15) ^ uint64(time.Now().UnixNano())
}

func (a *Player) play(samples []byte) {
	player := a.ctx.NewPlayer(&soundReader{data: samples})
	player.SetVolume(a.volume)
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	player.Close()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
