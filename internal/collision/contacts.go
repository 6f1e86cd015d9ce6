package collision

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/clock"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
)

// PickupKind groups pickup subtypes by the effect they apply.
type PickupKind int

const (
	PickupPoints PickupKind = iota
	PickupHealth
	PickupStamina
	PickupSpeed
)

var pickupKinds = map[string]PickupKind{
	"coin":             PickupPoints,
	"glow_bud":         PickupPoints,
	"banana":           PickupPoints,
	"pearl":            PickupPoints,
	"health":           PickupHealth,
	"health_berry":     PickupHealth,
	"golden_banana":    PickupHealth,
	"stamina":          PickupStamina,
	"nectar":           PickupStamina,
	"kelp":             PickupStamina,
	"speed":            PickupSpeed,
	"speed_leaf":       PickupSpeed,
	"speed_boost_leaf": PickupSpeed,
}

// ClassifyPickup returns the effect group of a pickup subtype. Unknown
// subtypes are worth points only.
func ClassifyPickup(typ string) PickupKind {
	if k, ok := pickupKinds[typ]; ok {
		return k
	}
	return PickupPoints
}

// Contacts handles every non-solid overlap of the player this tick and
// returns the resulting events. Nothing is pushed out; overlaps only cause
// side effects. Frozen enemies neither hurt nor can be hurt.
func (r *Resolver) Contacts(player entity.ID, enemiesFrozen bool) []core.Event {
	pb := r.store.Body(player)
	pl := r.store.Player(player)
	if pb == nil || pl == nil {
		return nil
	}
	box := pb.Box()
	if !pl.Status.Has(entity.StatusInvincible) {
		clear(r.evaded)
	}

	var events []core.Event
	r.store.ForEach(func(v entity.View) bool {
		if v.ID == player || !box.Intersects(v.Body.Box()) {
			return true
		}
		switch v.Tag.Kind {
		case entity.KindHazard:
			events = r.touchHazard(v, pl, events)
		case entity.KindEnemy:
			if !enemiesFrozen {
				events = r.touchEnemy(v, pb, pl, events)
			}
		case entity.KindPickup:
			events = r.collect(v, pl, events)
		case entity.KindPlayer, entity.KindObstacle, entity.KindPivot, entity.KindGoal:
			// No contact effects.
		}
		return true
	})
	return events
}

// fire reports whether a contact with other may emit an event now, and
// records it if so. Sustained touches emit at most once per ContactWindow.
func (r *Resolver) fire(other *entity.Tag) bool {
	if last, ok := r.lastSeen[other.Seq]; ok && r.now-last < r.cfg.ContactWindow {
		return false
	}
	r.lastSeen[other.Seq] = r.now
	return true
}

// harm applies contact damage from a hazard or enemy. An invincible player
// takes nothing but produces one evade event per contact for as long as the
// invincibility lasts; a player inside the post-hit grace period produces no
// event at all.
func (r *Resolver) harm(other *entity.Tag, pl *entity.Player, amount float64, events []core.Event) []core.Event {
	switch {
	case pl.Status.Has(entity.StatusInvincible):
		if !r.evaded[other.Seq] && r.fire(other) {
			r.evaded[other.Seq] = true
			events = append(events, core.Event{Kind: core.EventEvade, Target: other.Type})
		}
	case pl.Invulnerable > 0:
	default:
		if !r.fire(other) {
			return events
		}
		if r.cfg.DamageScale > 0 {
			amount *= r.cfg.DamageScale
		}
		pl.Health = math.Max(0, pl.Health-amount)
		pl.Invulnerable = r.cfg.HitGrace
		pl.DamageHit = true
		events = append(events, core.Event{Kind: core.EventDamage, Target: other.Type, Amount: amount})
	}
	return events
}

func (r *Resolver) touchHazard(v entity.View, pl *entity.Player, events []core.Event) []core.Event {
	if p := r.store.Periodic(v.ID); p != nil && !clock.Active(r.now+p.Offset, p.Period, p.Duty) {
		return events
	}
	amount := r.cfg.HazardDamage
	if d := r.store.Damage(v.ID); d != nil {
		amount = d.Amount
	}
	return r.harm(v.Tag, pl, amount, events)
}

func (r *Resolver) touchEnemy(v entity.View, pb *entity.Body, pl *entity.Player, events []core.Event) []core.Event {
	enemyTop := v.Body.Pos.Y
	stomp := pb.Vel.Y > 0 && pb.Center().Y < enemyTop
	if stomp || pl.Status.Has(entity.StatusSpinning) {
		if stomp {
			pb.Vel.Y = -r.cfg.JumpSpeed * r.cfg.StompBounce
			pl.Motion = entity.Airborne
			pl.Ground = entity.ID{}
		}
		if !r.fire(v.Tag) {
			return events
		}
		return r.hurtEnemy(v, events)
	}

	amount := r.cfg.EnemyDamage
	if d := r.store.Damage(v.ID); d != nil {
		amount = d.Amount
	}
	return r.harm(v.Tag, pl, amount, events)
}

// hurtEnemy damages an enemy and removes it once its health is gone.
// Enemies without a Health component fall to a single hit.
func (r *Resolver) hurtEnemy(v entity.View, events []core.Event) []core.Event {
	h := r.store.Health(v.ID)
	if h != nil {
		h.HP -= r.cfg.StompDamage
		if h.HP > 0 {
			return events
		}
	}
	r.store.Remove(v.ID)
	return append(events, core.Event{Kind: core.EventDefeat, Target: v.Tag.Type, Amount: 1})
}

// collect applies a pickup's effect and removes it.
func (r *Resolver) collect(v entity.View, pl *entity.Player, events []core.Event) []core.Event {
	eff := entity.Effect{Points: r.cfg.CoinPoints}
	if e := r.store.Effect(v.ID); e != nil {
		eff = *e
	}
	switch ClassifyPickup(v.Tag.Type) {
	case PickupHealth:
		pl.Health = math.Min(pl.MaxHealth, pl.Health+eff.Amount)
	case PickupStamina:
		pl.Stamina = math.Min(pl.MaxStamina, pl.Stamina+eff.Amount)
	case PickupSpeed:
		pl.BoostFactor = eff.Amount
		pl.BoostTime = eff.Duration
	case PickupPoints:
	}
	r.store.Remove(v.ID)
	return append(events, core.Event{Kind: core.EventPickup, Target: v.Tag.Type, Amount: float64(eff.Points)})
}
