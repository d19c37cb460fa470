package buddy

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoGrowth is returned when a Grower reports success but adds no area.
var ErrNoGrowth = errors.New("buddy: grower returned no slots")

// ID is a handle to a slot owned by a Pool.
// A checked-out ID is held by exactly one owner until it is released.
type ID int32

// None is the handle of no slot.
const None ID = -1

// Grower provides page area when the pool has no slot to subdivide.
type Grower interface {
	// NeedsGrowth reports whether a slot of class c can only come from
	// new page area.
	NeedsGrowth(c Class) bool

	// Grow adds page area and returns the slots covering exactly the new
	// area. All returned slots share one class.
	Grow(hint Class) ([]Slot, error)
}

type state uint8

const (
	stateDead state = iota
	stateFree
	stateUsed
)

type entry struct {
	slot  Slot
	state state
}

// key locates a free slot by class and origin.
type key struct {
	class Class
	x, y  int
}

// Pool is an arena of slots plus per-class stacks of the free ones.
//
// Pool is not safe for concurrent use.
type Pool struct {
	grower Grower

	// Slot arena. Dead entries are recycled through the recycled list.
	entries  []entry
	recycled []ID

	// Free stacks per class and the position of every free slot in them.
	free  map[Class][]ID
	index map[key]int

	used int
}

// NewPool creates an empty pool that grows through g.
func NewPool(g Grower) *Pool {
	return &Pool{
		grower: g,
		free:   make(map[Class][]ID),
		index:  make(map[key]int),
	}
}

// Slot returns the geometry of a slot handle.
func (p *Pool) Slot(id ID) Slot {
	return p.entries[id].slot
}

// CheckedOut reports whether id is currently held by an owner.
func (p *Pool) CheckedOut(id ID) bool {
	return id >= 0 && int(id) < len(p.entries) && p.entries[id].state == stateUsed
}

// Acquire checks out a free slot of class c, subdividing larger slots or
// growing the page as needed. The returned handle is owned by the caller
// until Release.
func (p *Pool) Acquire(c Class) (ID, error) {
	if len(p.free[c]) == 0 {
		if err := p.makeAvailable(c); err != nil {
			return None, err
		}
	}
	return p.pop(c), nil
}

// makeAvailable puts at least one free slot of class c in the pool.
func (p *Pool) makeAvailable(c Class) error {
	if p.grower.NeedsGrowth(c) {
		slots, err := p.grower.Grow(c)
		if err != nil {
			return err
		}
		if len(slots) == 0 {
			return ErrNoGrowth
		}
		for _, s := range slots {
			p.push(p.alloc(s))
		}
		if slots[0].Class() != c {
			return p.makeAvailable(c)
		}
		return nil
	}

	bigger, err := p.Acquire(c + 1)
	if err != nil {
		return err
	}
	parent := p.entries[bigger].slot
	p.used--
	p.kill(bigger)
	for _, s := range parent.Subdivide() {
		p.push(p.alloc(s))
	}
	return nil
}

// Release returns a checked-out slot to the pool and merges it with its
// free siblings, cascading up the classes.
//
// Releasing a handle that is not checked out corrupts the tiling and
// panics.
func (p *Pool) Release(id ID) {
	if !p.CheckedOut(id) {
		panic(fmt.Sprintf("buddy: release of slot %d that is not checked out", id))
	}
	p.used--
	p.push(id)
	p.coalesce(p.entries[id].slot)
}

// coalesce merges the 2x2 group around s when all four are free.
func (p *Pool) coalesce(s Slot) {
	var ids [4]ID
	for i, sib := range s.Siblings() {
		id, ok := p.lookup(sib)
		if !ok {
			return
		}
		ids[i] = id
	}
	for _, id := range ids {
		p.remove(id)
		p.kill(id)
	}
	parent := s.Parent()
	p.push(p.alloc(parent))
	p.coalesce(parent)
}

// Reset forgets every slot. Handles issued before Reset are invalid.
func (p *Pool) Reset() {
	p.entries = p.entries[:0]
	p.recycled = p.recycled[:0]
	p.free = make(map[Class][]ID)
	p.index = make(map[key]int)
	p.used = 0
}

// IsFree reports whether exactly s is a free slot in the pool.
func (p *Pool) IsFree(s Slot) bool {
	_, ok := p.lookup(s)
	return ok
}

// FreeCount returns the number of free slots of class c.
func (p *Pool) FreeCount(c Class) int {
	return len(p.free[c])
}

// UsedCount returns the number of checked-out slots.
func (p *Pool) UsedCount() int {
	return p.used
}

// FreeArea returns the total pixel area of the free slots.
func (p *Pool) FreeArea() int {
	area := 0
	for c, ids := range p.free {
		area += len(ids) * c.Size() * c.Size()
	}
	return area
}

// Classes returns the classes that hold free slots, in ascending order.
func (p *Pool) Classes() []Class {
	classes := make([]Class, 0, len(p.free))
	for c, ids := range p.free {
		if len(ids) > 0 {
			classes = append(classes, c)
		}
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	return classes
}

// FreeSlots returns a copy of every free slot, grouped by ascending class.
func (p *Pool) FreeSlots() []Slot {
	var out []Slot
	for _, c := range p.Classes() {
		for _, id := range p.free[c] {
			out = append(out, p.entries[id].slot)
		}
	}
	return out
}

func (p *Pool) alloc(s Slot) ID {
	if n := len(p.recycled); n > 0 {
		id := p.recycled[n-1]
		p.recycled = p.recycled[:n-1]
		p.entries[id] = entry{slot: s, state: stateDead}
		return id
	}
	p.entries = append(p.entries, entry{slot: s, state: stateDead})
	return ID(len(p.entries) - 1)
}

func (p *Pool) kill(id ID) {
	p.entries[id].state = stateDead
	p.recycled = append(p.recycled, id)
}

func (p *Pool) push(id ID) {
	e := &p.entries[id]
	e.state = stateFree
	c := e.slot.Class()
	p.index[keyOf(e.slot)] = len(p.free[c])
	p.free[c] = append(p.free[c], id)
}

// pop checks out the most recently pushed slot of class c.
func (p *Pool) pop(c Class) ID {
	stack := p.free[c]
	id := stack[len(stack)-1]
	p.free[c] = stack[:len(stack)-1]
	delete(p.index, keyOf(p.entries[id].slot))
	p.entries[id].state = stateUsed
	p.used++
	return id
}

// remove takes a free slot out of its stack.
func (p *Pool) remove(id ID) {
	s := p.entries[id].slot
	c := s.Class()
	k := keyOf(s)
	pos := p.index[k]
	stack := p.free[c]
	last := len(stack) - 1
	if pos != last {
		moved := stack[last]
		stack[pos] = moved
		p.index[keyOf(p.entries[moved].slot)] = pos
	}
	p.free[c] = stack[:last]
	delete(p.index, k)
}

func (p *Pool) lookup(s Slot) (ID, bool) {
	pos, ok := p.index[keyOf(s)]
	if !ok {
		return None, false
	}
	return p.free[s.Class()][pos], true
}

func keyOf(s Slot) key {
	return key{class: s.Class(), x: s.X, y: s.Y}
}
