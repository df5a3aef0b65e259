package sim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fireworksgl/internal/vec3"
)

func countAlive(p *Pool) int {
	n := 0
	for i := 0; i < p.Cap(); i++ {
		if p.At(i).Alive {
			n++
		}
	}
	return n
}

func TestNewPoolSlotsAreCanonicalDead(t *testing.T) {
	p := NewPool(8)
	require.Equal(t, 8, p.Cap())
	assert.Equal(t, 0, p.Live())

	for i := 0; i < p.Cap(); i++ {
		slot := p.At(i)
		assert.False(t, slot.Alive)
		assert.Equal(t, vec3.Vec3{}, slot.Position)
		assert.Equal(t, vec3.Vec3{}, slot.Velocity)
		assert.Equal(t, vec3.Vec3{}, slot.Acceleration)
		assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, slot.Colour)
		assert.Zero(t, slot.Radius)
		assert.Zero(t, slot.RemainingLife)
		assert.Equal(t, KindHaze, slot.Kind)
	}
}

func TestAllocateHandsOutLowestSlotsFirst(t *testing.T) {
	p := NewPool(4)
	for want := 0; want < 4; want++ {
		h, ok := p.Allocate()
		require.True(t, ok)
		assert.Equal(t, want, h.Index)
		assert.True(t, p.At(want).Alive)
	}
	assert.Equal(t, 4, p.Live())
	assert.True(t, p.Full())
}

func TestAllocateOnFullPoolIsNoOp(t *testing.T) {
	p := NewPool(3)
	for i := 0; i < 3; i++ {
		_, ok := p.Spawn(Particle{Kind: KindSpark, Radius: float32(i + 1)})
		require.True(t, ok)
	}
	before := make([]Particle, p.Cap())
	for i := range before {
		before[i] = *p.At(i)
	}

	_, ok := p.Allocate()
	assert.False(t, ok)
	_, ok = p.Spawn(Particle{Kind: KindRocket})
	assert.False(t, ok)

	assert.Equal(t, 3, p.Live())
	for i := range before {
		assert.Equal(t, before[i], *p.At(i))
	}
}

func TestRetireIsIdempotent(t *testing.T) {
	p := NewPool(2)
	h, _ := p.Spawn(Particle{Kind: KindSpark, Radius: 7})

	assert.True(t, p.Retire(h.Index))
	assert.False(t, p.Retire(h.Index))
	assert.False(t, p.Retire(-1))
	assert.False(t, p.Retire(99))
	assert.Equal(t, 0, p.Live())

	// Fields are left in place until the slot is reused.
	assert.Equal(t, float32(7), p.At(h.Index).Radius)
	assert.False(t, p.At(h.Index).Alive)
}

func TestHandlesGoStaleAfterReuse(t *testing.T) {
	p := NewPool(1)
	first, _ := p.Spawn(Particle{Kind: KindSpark})
	got, ok := p.Get(first)
	require.True(t, ok)
	assert.Equal(t, KindSpark, got.Kind)

	p.Retire(first.Index)
	_, ok = p.Get(first)
	assert.False(t, ok)

	second, ok := p.Spawn(Particle{Kind: KindHaze})
	require.True(t, ok)
	assert.Equal(t, first.Index, second.Index)
	assert.NotEqual(t, first.Gen, second.Gen)

	_, ok = p.Get(first)
	assert.False(t, ok, "stale handle must not resolve to the reused slot")
	_, ok = p.Get(second)
	assert.True(t, ok)
}

func TestAllocateResetsReusedSlot(t *testing.T) {
	p := NewPool(1)
	h, _ := p.Spawn(Particle{Kind: KindRocket, Children: 9, Radius: 3})
	p.Retire(h.Index)

	h, ok := p.Allocate()
	require.True(t, ok)
	slot := p.At(h.Index)
	want := DeadParticle()
	want.Alive = true
	assert.Equal(t, want, *slot)
}

func TestLiveCountTracksAliveSlots(t *testing.T) {
	p := NewPool(16)
	r := NewRand(42)
	var handles []Handle
	for step := 0; step < 500; step++ {
		if r.Intn(3) > 0 {
			if h, ok := p.Allocate(); ok {
				handles = append(handles, h)
			}
		} else if len(handles) > 0 {
			i := r.Intn(len(handles))
			p.Retire(handles[i].Index)
			handles = append(handles[:i], handles[i+1:]...)
		}
		require.Equal(t, countAlive(p), p.Live())
		require.LessOrEqual(t, p.Live(), p.Cap())
	}
}

func TestPoolReset(t *testing.T) {
	p := NewPool(3)
	h, _ := p.Spawn(Particle{Kind: KindSpark})
	p.Spawn(Particle{Kind: KindSpark})
	p.Reset()

	assert.Equal(t, 0, p.Live())
	assert.Equal(t, 0, countAlive(p))
	_, ok := p.Get(h)
	assert.False(t, ok)

	next, ok := p.Allocate()
	require.True(t, ok)
	assert.Equal(t, 0, next.Index)
}
