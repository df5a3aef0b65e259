package sim

// Handle addresses a pool slot. It stops resolving once the slot is retired,
// even if the slot is later reused.
type Handle struct {
	Index int
	Gen   uint32
}

// Pool is a fixed-capacity arena of particles. It never grows.
type Pool struct {
	slots []Particle
	gens  []uint32
	free  []int // stack of dead slot indices
	live  int
}

func NewPool(capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	p := &Pool{
		slots: make([]Particle, capacity),
		gens:  make([]uint32, capacity),
		free:  make([]int, capacity),
	}
	dead := DeadParticle()
	for i := range p.slots {
		p.slots[i] = dead
		// Reverse order so the first allocations hand out 0, 1, 2, ...
		p.free[i] = capacity - 1 - i
	}
	return p
}

func (p *Pool) Cap() int  { return len(p.slots) }
func (p *Pool) Live() int { return p.live }
func (p *Pool) Full() bool {
	return len(p.free) == 0
}

// Allocate claims a dead slot and resets it to the canonical particle with
// Alive set. It reports false when the pool is full; nothing changes then.
func (p *Pool) Allocate() (Handle, bool) {
	n := len(p.free)
	if n == 0 {
		return Handle{}, false
	}
	idx := p.free[n-1]
	p.free = p.free[:n-1]

	slot := &p.slots[idx]
	*slot = DeadParticle()
	slot.Alive = true
	p.live++
	return Handle{Index: idx, Gen: p.gens[idx]}, true
}

// Spawn allocates a slot and stores part in it.
func (p *Pool) Spawn(part Particle) (Handle, bool) {
	h, ok := p.Allocate()
	if !ok {
		return Handle{}, false
	}
	part.Alive = true
	p.slots[h.Index] = part
	return h, true
}

// Retire marks slot i dead and returns it to the free list. The slot's other
// fields are left untouched. Retiring a dead or out-of-range slot is a no-op.
func (p *Pool) Retire(i int) bool {
	if i < 0 || i >= len(p.slots) || !p.slots[i].Alive {
		return false
	}
	p.slots[i].Alive = false
	p.gens[i]++
	p.free = append(p.free, i)
	p.live--
	return true
}

// At returns slot i, alive or not.
func (p *Pool) At(i int) *Particle { return &p.slots[i] }

// Get resolves h if it still refers to the particle it was issued for.
func (p *Pool) Get(h Handle) (*Particle, bool) {
	if h.Index < 0 || h.Index >= len(p.slots) {
		return nil, false
	}
	if p.gens[h.Index] != h.Gen || !p.slots[h.Index].Alive {
		return nil, false
	}
	return &p.slots[h.Index], true
}

// Reset retires every slot.
func (p *Pool) Reset() {
	p.free = p.free[:0]
	dead := DeadParticle()
	for i := len(p.slots) - 1; i >= 0; i-- {
		if p.slots[i].Alive {
			p.gens[i]++
		}
		p.slots[i] = dead
		p.free = append(p.free, i)
	}
	p.live = 0
}
