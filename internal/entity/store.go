package entity

import (
	"iter"
	"slices"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// ID identifies an entity inside one Store.
type ID = ecs.Entity

// Spec describes an entity to add. Nil optional components are not attached.
type Spec struct {
	Kind      Kind
	Type      string
	Pos       r2.Vec
	Size      r2.Vec
	Vel       r2.Vec
	Kinematic bool

	Solid    *Solid
	Crumble  *Crumble
	Patrol   *Patrol
	Player   *Player
	Health   *Health
	Damage   *Damage
	Periodic *Periodic
	Effect   *Effect
	Pivot    *Pivot
}

// View is a short-lived handle on an entity during iteration.
// Its pointers are valid until the next Add or Flush.
type View struct {
	ID   ID
	Body *Body
	Tag  *Tag
}

// DestroyFunc is called for each entity destroyed by Flush.
// The view is still readable during the call.
type DestroyFunc func(v View)

// Store holds all live entities of a level.
type Store struct {
	world  *ecs.World
	create *ecs.Map2[Body, Tag]
	filter *ecs.Filter2[Body, Tag]

	bodies    *ecs.Map[Body]
	tags      *ecs.Map[Tag]
	kinematic *ecs.Map[Kinematic]
	solids    *ecs.Map[Solid]
	crumbles  *ecs.Map[Crumble]
	patrols   *ecs.Map[Patrol]
	players   *ecs.Map[Player]
	healths   *ecs.Map[Health]
	damages   *ecs.Map[Damage]
	periodics *ecs.Map[Periodic]
	effects   *ecs.Map[Effect]
	pivots    *ecs.Map[Pivot]

	seq       uint64
	pending   []ID
	onDestroy []DestroyFunc
}

// NewStore creates an empty store.
func NewStore() *Store {
	w := ecs.NewWorld()
	return &Store{
		world:     w,
		create:    ecs.NewMap2[Body, Tag](w),
		filter:    ecs.NewFilter2[Body, Tag](w),
		bodies:    ecs.NewMap[Body](w),
		tags:      ecs.NewMap[Tag](w),
		kinematic: ecs.NewMap[Kinematic](w),
		solids:    ecs.NewMap[Solid](w),
		crumbles:  ecs.NewMap[Crumble](w),
		patrols:   ecs.NewMap[Patrol](w),
		players:   ecs.NewMap[Player](w),
		healths:   ecs.NewMap[Health](w),
		damages:   ecs.NewMap[Damage](w),
		periodics: ecs.NewMap[Periodic](w),
		effects:   ecs.NewMap[Effect](w),
		pivots:    ecs.NewMap[Pivot](w),
	}
}

// OnDestroy registers a callback run for every entity destroyed by Flush.
func (s *Store) OnDestroy(fn DestroyFunc) {
	s.onDestroy = append(s.onDestroy, fn)
}

// Add creates an entity and returns its ID.
// Must not be called while a query from this store is being iterated by ark;
// the iterators below collect before yielding, so calling from ForEach is fine.
func (s *Store) Add(spec Spec) ID {
	s.seq++
	body := Body{Pos: spec.Pos, Vel: spec.Vel, Size: spec.Size}
	tag := Tag{Kind: spec.Kind, Type: spec.Type, Seq: s.seq, Alive: true}
	e := s.create.NewEntity(&body, &tag)

	if spec.Kinematic {
		s.kinematic.Add(e, &Kinematic{})
	}
	addOpt(s.solids, e, spec.Solid)
	addOpt(s.crumbles, e, spec.Crumble)
	addOpt(s.patrols, e, spec.Patrol)
	addOpt(s.players, e, spec.Player)
	addOpt(s.healths, e, spec.Health)
	addOpt(s.damages, e, spec.Damage)
	addOpt(s.periodics, e, spec.Periodic)
	addOpt(s.effects, e, spec.Effect)
	addOpt(s.pivots, e, spec.Pivot)
	return e
}

func addOpt[T any](m *ecs.Map[T], e ecs.Entity, c *T) {
	if c == nil {
		return
	}
	v := *c
	m.Add(e, &v)
}

// Remove marks an entity dead. It disappears from every iterator at once and
// is destroyed by the next Flush. Removing twice is a no-op.
func (s *Store) Remove(id ID) {
	if !s.Alive(id) {
		return
	}
	s.tags.Get(id).Alive = false
	s.pending = append(s.pending, id)
}

// Flush destroys every entity removed since the last flush, firing the
// OnDestroy callbacks in removal order. Call it once at the end of each tick.
func (s *Store) Flush() {
	if len(s.pending) == 0 {
		return
	}
	pending := s.pending
	s.pending = nil
	for _, id := range pending {
		v := View{ID: id, Body: s.bodies.Get(id), Tag: s.tags.Get(id)}
		for _, fn := range s.onDestroy {
			fn(v)
		}
	}
	for _, id := range pending {
		s.world.RemoveEntity(id)
	}
}

// Alive reports whether id refers to an entity that has not been removed.
func (s *Store) Alive(id ID) bool {
	if id.IsZero() || !s.world.Alive(id) {
		return false
	}
	return s.tags.Get(id).Alive
}

// Pending returns how many entities await destruction.
func (s *Store) Pending() int {
	return len(s.pending)
}

// snapshot collects alive entities in insertion order, optionally of one kind.
// The ark query is fully drained before returning so callers may add or
// remove entities while walking the result.
func (s *Store) snapshot(kind Kind, filterKind bool) []View {
	var out []View
	q := s.filter.Query()
	for q.Next() {
		body, tag := q.Get()
		if !tag.Alive || (filterKind && tag.Kind != kind) {
			continue
		}
		out = append(out, View{ID: q.Entity(), Body: body, Tag: tag})
	}
	slices.SortFunc(out, func(a, b View) int {
		switch {
		case a.Tag.Seq < b.Tag.Seq:
			return -1
		case a.Tag.Seq > b.Tag.Seq:
			return 1
		}
		return 0
	})
	return out
}

// ForEach visits alive entities in insertion order until fn returns false.
// Entities removed during the walk are skipped from that point on.
func (s *Store) ForEach(fn func(v View) bool) {
	for _, v := range s.snapshot(0, false) {
		if !s.Alive(v.ID) {
			continue
		}
		v = s.View(v.ID)
		if !fn(v) {
			return
		}
	}
}

// Select returns the IDs of alive entities matching pred, in insertion order.
func (s *Store) Select(pred func(v View) bool) []ID {
	var ids []ID
	s.ForEach(func(v View) bool {
		if pred(v) {
			ids = append(ids, v.ID)
		}
		return true
	})
	return ids
}

// Query yields the alive entities of one kind in insertion order.
func (s *Store) Query(kind Kind) iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for _, v := range s.snapshot(kind, true) {
			if !s.Alive(v.ID) {
				continue
			}
			if !yield(v.ID) {
				return
			}
		}
	}
}

// Count returns the number of alive entities of one kind.
func (s *Store) Count(kind Kind) int {
	return len(s.snapshot(kind, true))
}

// Len returns the number of alive entities.
func (s *Store) Len() int {
	return len(s.snapshot(0, false))
}

// View returns fresh component pointers for an alive entity.
func (s *Store) View(id ID) View {
	if !s.Alive(id) {
		return View{}
	}
	return View{ID: id, Body: s.bodies.Get(id), Tag: s.tags.Get(id)}
}

// Body returns the body of an alive entity, or nil.
func (s *Store) Body(id ID) *Body {
	if !s.Alive(id) {
		return nil
	}
	return s.bodies.Get(id)
}

// Tag returns the tag of an alive entity, or nil.
func (s *Store) Tag(id ID) *Tag {
	if !s.Alive(id) {
		return nil
	}
	return s.tags.Get(id)
}

// Kinematic reports whether an alive entity is moved by explicit logic.
func (s *Store) Kinematic(id ID) bool {
	return s.Alive(id) && s.kinematic.Has(id)
}

// Solid returns the solid component of an alive entity, or nil.
func (s *Store) Solid(id ID) *Solid { return get(s, s.solids, id) }

// Crumble returns the crumble component of an alive entity, or nil.
func (s *Store) Crumble(id ID) *Crumble { return get(s, s.crumbles, id) }

// Patrol returns the patrol component of an alive entity, or nil.
func (s *Store) Patrol(id ID) *Patrol { return get(s, s.patrols, id) }

// Player returns the player state of an alive entity, or nil.
func (s *Store) Player(id ID) *Player { return get(s, s.players, id) }

// Health returns the health component of an alive entity, or nil.
func (s *Store) Health(id ID) *Health { return get(s, s.healths, id) }

// Damage returns the damage component of an alive entity, or nil.
func (s *Store) Damage(id ID) *Damage { return get(s, s.damages, id) }

// Periodic returns the periodic component of an alive entity, or nil.
func (s *Store) Periodic(id ID) *Periodic { return get(s, s.periodics, id) }

// Effect returns the pickup effect of an alive entity, or nil.
func (s *Store) Effect(id ID) *Effect { return get(s, s.effects, id) }

// Pivot returns the pivot component of an alive entity, or nil.
func (s *Store) Pivot(id ID) *Pivot { return get(s, s.pivots, id) }

func get[T any](s *Store, m *ecs.Map[T], id ID) *T {
	if !s.Alive(id) || !m.Has(id) {
		return nil
	}
	return m.Get(id)
}
