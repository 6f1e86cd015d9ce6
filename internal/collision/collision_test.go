package collision

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
)

func newPlayer(s *entity.Store, pos, size, vel r2.Vec) entity.ID {
	return s.Add(entity.Spec{
		Kind: entity.KindPlayer,
		Pos:  pos,
		Size: size,
		Vel:  vel,
		Player: &entity.Player{
			Health: 100, MaxHealth: 100,
			Stamina: 50, MaxStamina: 100,
			Facing: 1,
		},
	})
}

func addSolid(s *entity.Store, x, y, w, h float64) entity.ID {
	return s.Add(entity.Spec{
		Kind:      entity.KindObstacle,
		Type:      "platform",
		Pos:       r2.Vec{X: x, Y: y},
		Size:      r2.Vec{X: w, Y: h},
		Kinematic: true,
		Solid:     &entity.Solid{},
	})
}

func countKind(events []core.Event, k core.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

func TestLandingOnPlatform(t *testing.T) {
	s := entity.NewStore()
	r := NewResolver(s, DefaultConfig())
	p := newPlayer(s, r2.Vec{X: 100, Y: 100}, r2.Vec{X: 4, Y: 4}, r2.Vec{Y: 10})
	addSolid(s, 80, 105, 50, 20)

	r.Move(p, r2.Vec{Y: 10})

	b := s.Body(p)
	if b.Box().Bottom() != 105 {
		t.Errorf("bottom = %v, expected 105", b.Box().Bottom())
	}
	if b.Vel.Y != 0 {
		t.Errorf("Vel.Y = %v, expected 0", b.Vel.Y)
	}
	if m := s.Player(p).Motion; m != entity.Grounded {
		t.Errorf("Motion = %v, expected grounded", m)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	s := entity.NewStore()
	r := NewResolver(s, DefaultConfig())
	p := newPlayer(s, r2.Vec{X: 100, Y: 90}, r2.Vec{X: 10, Y: 20}, r2.Vec{})
	addSolid(s, 80, 105, 50, 20)
	addSolid(s, 108, 0, 20, 60)

	r.Resolve(p)
	first := s.Body(p).Pos
	r.Resolve(p)
	second := s.Body(p).Pos

	if first != second {
		t.Errorf("second Resolve moved the player from %v to %v", first, second)
	}
	if s.Body(p).Box().Bottom() != 105 {
		t.Errorf("bottom = %v, expected push-out onto the platform top", s.Body(p).Box().Bottom())
	}

	r.Move(p, r2.Vec{Y: 3})
	afterMove := s.Body(p).Pos
	r.Resolve(p)
	if s.Body(p).Pos != afterMove {
		t.Errorf("Resolve after Move changed position from %v to %v", afterMove, s.Body(p).Pos)
	}
}

func TestAxisSeparatedWallStop(t *testing.T) {
	s := entity.NewStore()
	r := NewResolver(s, DefaultConfig())
	p := newPlayer(s, r2.Vec{X: 0, Y: 0}, r2.Vec{X: 10, Y: 10}, r2.Vec{X: 300, Y: 50})
	addSolid(s, 15, -100, 10, 300)

	r.Move(p, r2.Vec{X: 10, Y: 5})

	b := s.Body(p)
	if b.Pos.X != 5 {
		t.Errorf("Pos.X = %v, expected stop at wall edge 5", b.Pos.X)
	}
	if b.Vel.X != 0 {
		t.Errorf("Vel.X = %v, expected 0 after hitting the wall", b.Vel.X)
	}
	if b.Pos.Y != 5 || b.Vel.Y != 50 {
		t.Errorf("Y axis should move freely: pos.Y=%v vel.Y=%v", b.Pos.Y, b.Vel.Y)
	}
}

func TestCeilingBump(t *testing.T) {
	s := entity.NewStore()
	r := NewResolver(s, DefaultConfig())
	p := newPlayer(s, r2.Vec{X: 0, Y: 20}, r2.Vec{X: 10, Y: 10}, r2.Vec{Y: -100})
	addSolid(s, -10, 0, 40, 15)

	r.Move(p, r2.Vec{Y: -10})

	if got := s.Body(p).Pos.Y; got != 15 {
		t.Errorf("Pos.Y = %v, expected stop under the ceiling at 15", got)
	}
	if s.Player(p).Motion != entity.Airborne {
		t.Errorf("Motion = %v, expected airborne", s.Player(p).Motion)
	}
}

func TestGroundToleranceTransitions(t *testing.T) {
	tests := []struct {
		name   string
		gap    float64
		motion entity.Motion
	}{
		{"resting on top", 0, entity.Grounded},
		{"within tolerance", 0.8, entity.Grounded},
		{"beyond tolerance", 1.5, entity.Airborne},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := entity.NewStore()
			r := NewResolver(s, DefaultConfig())
			p := newPlayer(s, r2.Vec{X: 10, Y: 90 - tc.gap}, r2.Vec{X: 10, Y: 10}, r2.Vec{})
			s.Player(p).Motion = entity.Grounded
			addSolid(s, 0, 100, 100, 10)

			r.Move(p, r2.Vec{})

			if got := s.Player(p).Motion; got != tc.motion {
				t.Errorf("Motion = %v, expected %v", got, tc.motion)
			}
		})
	}
}

func TestAirborneNeedsDownwardVelocityToLand(t *testing.T) {
	s := entity.NewStore()
	r := NewResolver(s, DefaultConfig())
	p := newPlayer(s, r2.Vec{X: 10, Y: 89.5}, r2.Vec{X: 10, Y: 10}, r2.Vec{Y: -50})
	addSolid(s, 0, 100, 100, 10)

	r.Move(p, r2.Vec{})
	if s.Player(p).Motion != entity.Airborne {
		t.Error("a rising player near a platform should stay airborne")
	}
}

func TestBouncyPlatform(t *testing.T) {
	s := entity.NewStore()
	r := NewResolver(s, DefaultConfig())
	p := newPlayer(s, r2.Vec{X: 10, Y: 80}, r2.Vec{X: 10, Y: 10}, r2.Vec{Y: 200})
	s.Add(entity.Spec{
		Kind:      entity.KindObstacle,
		Type:      "bouncy",
		Pos:       r2.Vec{X: 0, Y: 100},
		Size:      r2.Vec{X: 50, Y: 10},
		Kinematic: true,
		Solid:     &entity.Solid{Bounce: 800},
	})

	r.Move(p, r2.Vec{Y: 15})

	if got := s.Body(p).Vel.Y; got != -800 {
		t.Errorf("Vel.Y = %v, expected bounce -800", got)
	}
	if s.Player(p).Motion != entity.Airborne {
		t.Error("bounced player should be airborne")
	}
}

func TestCrumblingPlatform(t *testing.T) {
	s := entity.NewStore()
	r := NewResolver(s, DefaultConfig())
	p := newPlayer(s, r2.Vec{X: 10, Y: 90}, r2.Vec{X: 10, Y: 10}, r2.Vec{})
	c := s.Add(entity.Spec{
		Kind:      entity.KindObstacle,
		Type:      "crumbling",
		Pos:       r2.Vec{X: 0, Y: 100},
		Size:      r2.Vec{X: 50, Y: 10},
		Kinematic: true,
		Solid:     &entity.Solid{},
		Crumble:   &entity.Crumble{StandTime: 1, RespawnAfter: 2},
	})
	s.Player(p).Motion = entity.Grounded
	s.Player(p).Ground = c

	r.UpdateCrumbles(p, 0.6)
	if s.Crumble(c).Collapsed {
		t.Fatal("platform collapsed too early")
	}
	r.UpdateCrumbles(p, 0.6)
	if !s.Crumble(c).Collapsed {
		t.Fatal("platform should collapse after its stand time")
	}
	if s.Player(p).Motion != entity.Airborne {
		t.Error("player should drop when the platform collapses")
	}

	r.Move(p, r2.Vec{Y: 5})
	if got := s.Body(p).Pos.Y; got != 95 {
		t.Errorf("Pos.Y = %v, expected to fall through the collapsed platform", got)
	}

	s.Body(p).Pos.Y = 0
	r.UpdateCrumbles(p, 2.5)
	if s.Crumble(c).Collapsed {
		t.Error("platform should respawn once the player is clear")
	}
}

func TestInvincibleHazardContactFiresOncePerInvincibility(t *testing.T) {
	s := entity.NewStore()
	r := NewResolver(s, DefaultConfig())
	p := newPlayer(s, r2.Vec{X: 10, Y: 10}, r2.Vec{X: 10, Y: 10}, r2.Vec{})
	s.Player(p).Status |= entity.StatusInvincible
	s.Add(entity.Spec{
		Kind:      entity.KindHazard,
		Type:      "thorn_bush",
		Pos:       r2.Vec{X: 5, Y: 5},
		Size:      r2.Vec{X: 30, Y: 30},
		Kinematic: true,
		Damage:    &entity.Damage{Amount: 5},
	})

	// Two seconds of contact, four times the contact window.
	var events []core.Event
	for tick := range 120 {
		r.SetTime(float64(tick) / 60)
		events = append(events, r.Contacts(p, false)...)
	}

	if h := s.Player(p).Health; h != 100 {
		t.Errorf("Health = %v, expected unchanged 100", h)
	}
	if n := countKind(events, core.EventEvade); n != 1 {
		t.Errorf("evade events = %d, expected exactly 1 per invincibility", n)
	}
	if n := countKind(events, core.EventDamage); n != 0 {
		t.Errorf("damage events = %d, expected 0", n)
	}

	// Invincibility ends while the post-hit grace still protects, then starts again.
	pl := s.Player(p)
	pl.Status &^= entity.StatusInvincible
	pl.Invulnerable = 1
	r.SetTime(2.1)
	if events := r.Contacts(p, false); len(events) != 0 {
		t.Errorf("contact during grace: events = %v, expected none", events)
	}
	pl.Status |= entity.StatusInvincible
	r.SetTime(2.2)
	if n := countKind(r.Contacts(p, false), core.EventEvade); n != 1 {
		t.Errorf("evade events in a new invincibility = %d, expected 1", n)
	}
}

func TestHazardDamageAndGrace(t *testing.T) {
	s := entity.NewStore()
	r := NewResolver(s, DefaultConfig())
	p := newPlayer(s, r2.Vec{X: 10, Y: 10}, r2.Vec{X: 10, Y: 10}, r2.Vec{})
	s.Add(entity.Spec{
		Kind:      entity.KindHazard,
		Type:      "spike",
		Pos:       r2.Vec{X: 5, Y: 5},
		Size:      r2.Vec{X: 30, Y: 30},
		Kinematic: true,
		Damage:    &entity.Damage{Amount: 25},
	})

	events := r.Contacts(p, false)
	if countKind(events, core.EventDamage) != 1 || s.Player(p).Health != 75 {
		t.Fatalf("first contact: events=%v health=%v", events, s.Player(p).Health)
	}
	if s.Player(p).Invulnerable != DefaultConfig().HitGrace {
		t.Errorf("Invulnerable = %v, expected grace period", s.Player(p).Invulnerable)
	}

	r.SetTime(0.8)
	if events := r.Contacts(p, false); len(events) != 0 || s.Player(p).Health != 75 {
		t.Errorf("contact during grace: events=%v health=%v", events, s.Player(p).Health)
	}
}

func TestPeriodicHazardOnlyHurtsWhenActive(t *testing.T) {
	s := entity.NewStore()
	r := NewResolver(s, DefaultConfig())
	p := newPlayer(s, r2.Vec{X: 10, Y: 10}, r2.Vec{X: 10, Y: 10}, r2.Vec{})
	s.Add(entity.Spec{
		Kind:      entity.KindHazard,
		Type:      "wave",
		Pos:       r2.Vec{X: 0, Y: 0},
		Size:      r2.Vec{X: 50, Y: 50},
		Kinematic: true,
		Periodic:  &entity.Periodic{Period: 4, Duty: 0.25},
	})

	r.SetTime(2)
	if events := r.Contacts(p, false); len(events) != 0 {
		t.Errorf("inactive wave produced %v", events)
	}
	r.SetTime(4.5)
	if events := r.Contacts(p, false); countKind(events, core.EventDamage) != 1 {
		t.Errorf("active wave produced %v, expected damage", events)
	}
}

func TestStompDefeatsEnemy(t *testing.T) {
	s := entity.NewStore()
	r := NewResolver(s, DefaultConfig())
	p := newPlayer(s, r2.Vec{X: 10, Y: 82}, r2.Vec{X: 10, Y: 10}, r2.Vec{Y: 300})
	e := s.Add(entity.Spec{
		Kind:   entity.KindEnemy,
		Type:   "sloth",
		Pos:    r2.Vec{X: 5, Y: 90},
		Size:   r2.Vec{X: 20, Y: 20},
		Health: &entity.Health{HP: 1, Max: 1},
	})

	events := r.Contacts(p, false)

	if countKind(events, core.EventDefeat) != 1 {
		t.Errorf("events = %v, expected a defeat", events)
	}
	if s.Alive(e) {
		t.Error("defeated enemy should be removed")
	}
	want := -DefaultConfig().JumpSpeed * DefaultConfig().StompBounce
	if got := s.Body(p).Vel.Y; got != want {
		t.Errorf("Vel.Y = %v, expected bounce %v", got, want)
	}
	if s.Player(p).Health != 100 {
		t.Error("stomping should not hurt the player")
	}
}

func TestSideContactHurtsPlayer(t *testing.T) {
	s := entity.NewStore()
	r := NewResolver(s, DefaultConfig())
	p := newPlayer(s, r2.Vec{X: 10, Y: 90}, r2.Vec{X: 10, Y: 20}, r2.Vec{X: 100})
	s.Add(entity.Spec{
		Kind: entity.KindEnemy,
		Type: "crab",
		Pos:  r2.Vec{X: 15, Y: 90},
		Size: r2.Vec{X: 20, Y: 20},
	})

	events := r.Contacts(p, false)
	if countKind(events, core.EventDamage) != 1 {
		t.Fatalf("events = %v, expected damage", events)
	}
	if got := s.Player(p).Health; got != 100-DefaultConfig().EnemyDamage {
		t.Errorf("Health = %v, expected %v", got, 100-DefaultConfig().EnemyDamage)
	}

	s.Player(p).Health = 100
	s.Player(p).Invulnerable = 0
	r.SetTime(5)
	if events := r.Contacts(p, true); len(events) != 0 {
		t.Errorf("frozen enemy produced %v", events)
	}
}

func TestPickupCollected(t *testing.T) {
	s := entity.NewStore()
	r := NewResolver(s, DefaultConfig())
	p := newPlayer(s, r2.Vec{X: 10, Y: 10}, r2.Vec{X: 10, Y: 10}, r2.Vec{})
	s.Player(p).Health = 40
	berry := s.Add(entity.Spec{
		Kind:      entity.KindPickup,
		Type:      "health_berry",
		Pos:       r2.Vec{X: 12, Y: 12},
		Size:      r2.Vec{X: 5, Y: 5},
		Kinematic: true,
		Effect:    &entity.Effect{Amount: 30, Points: 5},
	})
	coin := s.Add(entity.Spec{
		Kind:      entity.KindPickup,
		Type:      "coin",
		Pos:       r2.Vec{X: 14, Y: 14},
		Size:      r2.Vec{X: 5, Y: 5},
		Kinematic: true,
	})

	events := r.Contacts(p, false)

	if countKind(events, core.EventPickup) != 2 {
		t.Fatalf("events = %v, expected two pickups", events)
	}
	if events[1].Amount != 10 {
		t.Errorf("coin points = %v, expected 10", events[1].Amount)
	}
	if s.Player(p).Health != 70 {
		t.Errorf("Health = %v, expected 70", s.Player(p).Health)
	}
	if s.Alive(berry) || s.Alive(coin) {
		t.Error("collected pickups should be removed")
	}
	if again := r.Contacts(p, false); len(again) != 0 {
		t.Errorf("second pass collected %v", again)
	}
}

func TestClassifyPickup(t *testing.T) {
	tests := map[string]PickupKind{
		"coin":             PickupPoints,
		"golden_banana":    PickupHealth,
		"nectar":           PickupStamina,
		"speed_boost_leaf": PickupSpeed,
		"mystery":          PickupPoints,
	}
	for typ, want := range tests {
		if got := ClassifyPickup(typ); got != want {
			t.Errorf("ClassifyPickup(%q) = %v, expected %v", typ, got, want)
		}
	}
}

func TestAttachAndDetach(t *testing.T) {
	s := entity.NewStore()
	r := NewResolver(s, DefaultConfig())
	p := newPlayer(s, r2.Vec{X: 95, Y: 145}, r2.Vec{X: 10, Y: 10}, r2.Vec{X: 120})
	pivot := s.Add(entity.Spec{
		Kind:      entity.KindPivot,
		Type:      "vine",
		Pos:       r2.Vec{X: 98, Y: 98},
		Size:      r2.Vec{X: 4, Y: 4},
		Kinematic: true,
		Pivot:     &entity.Pivot{},
	})

	ev, ok := r.Attach(p)
	if !ok || ev.Kind != core.EventAttach {
		t.Fatalf("Attach() = %v, %v; expected attach", ev, ok)
	}
	pl := s.Player(p)
	if pl.Motion != entity.Swinging || pl.Swing.Pivot != pivot {
		t.Fatalf("Motion = %v, pivot = %v", pl.Motion, pl.Swing.Pivot)
	}
	if math.Abs(pl.Swing.Radius-50) > 1e-9 || math.Abs(pl.Swing.Angle) > 1e-9 {
		t.Errorf("swing radius/angle = %v/%v, expected 50/0", pl.Swing.Radius, pl.Swing.Angle)
	}
	if math.Abs(pl.Swing.AngVel-120.0/50) > 1e-9 {
		t.Errorf("AngVel = %v, expected momentum carried as %v", pl.Swing.AngVel, 120.0/50)
	}

	if _, ok := r.Attach(p); ok {
		t.Error("Attach() while swinging should fail")
	}

	pl.Swing.AngVel = 2
	if _, ok := r.Detach(p); !ok {
		t.Fatal("Detach() should succeed while swinging")
	}
	if got := s.Body(p).Vel; math.Abs(got.X-100) > 1e-9 || math.Abs(got.Y) > 1e-9 {
		t.Errorf("Vel after detach = %v, expected tangential (100, 0)", got)
	}
	if s.Player(p).Motion != entity.Airborne {
		t.Error("player should be airborne after detaching")
	}
}

func TestAttachOutOfReach(t *testing.T) {
	s := entity.NewStore()
	r := NewResolver(s, DefaultConfig())
	p := newPlayer(s, r2.Vec{X: 0, Y: 0}, r2.Vec{X: 10, Y: 10}, r2.Vec{})
	s.Add(entity.Spec{Kind: entity.KindPivot, Pos: r2.Vec{X: 300, Y: 300}, Size: r2.Vec{X: 4, Y: 4}, Kinematic: true})

	if _, ok := r.Attach(p); ok {
		t.Error("Attach() should fail with no pivot in reach")
	}
}

func TestLostPivotDetaches(t *testing.T) {
	s := entity.NewStore()
	r := NewResolver(s, DefaultConfig())
	p := newPlayer(s, r2.Vec{X: 95, Y: 145}, r2.Vec{X: 10, Y: 10}, r2.Vec{})
	pivot := s.Add(entity.Spec{Kind: entity.KindPivot, Pos: r2.Vec{X: 98, Y: 98}, Size: r2.Vec{X: 4, Y: 4}, Kinematic: true})

	if _, ok := r.Attach(p); !ok {
		t.Fatal("Attach() failed")
	}
	if _, ok := r.CheckPivot(p); ok {
		t.Error("CheckPivot() should keep a valid pivot")
	}
	s.Remove(pivot)
	if _, ok := r.CheckPivot(p); !ok {
		t.Error("CheckPivot() should detach from a removed pivot")
	}
	if s.Player(p).Motion != entity.Airborne {
		t.Error("player should be airborne after losing the pivot")
	}
}
