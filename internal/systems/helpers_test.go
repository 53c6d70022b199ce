package systems

import (
	"math/rand"

	"underkingdom-server/internal/domain"
)

// Общие фикстуры тестов пакета.

func newTestDeps() *Deps {
	world := domain.NewWorld(16, 16)
	rng := rand.New(rand.NewSource(42))

	deps := &Deps{
		World:  world,
		LOS:    WorldLOS{World: world},
		Rand:   rng,
		Notify: NopNotifier{},
	}
	deps.Combat = NewMeleeResolver(rng)
	deps.Resolver = NewAbilityResolver(deps)
	return deps
}

func spawnCreature(deps *Deps, id string, faction domain.Faction, x, y int) *domain.Entity {
	e := &domain.Entity{
		ID:       id,
		Kind:     domain.KindEnemy,
		Name:     id,
		Pos:      domain.Position{X: x, Y: y},
		Blocking: true,
		Faction:  faction,
		Stats:    domain.NewStats(10, 10, 10, 10, 10, 10),
		AI: &domain.AIComponent{
			Mode:        domain.BehaviorAggressive,
			State:       domain.StateNormal,
			AggroRadius: domain.DefaultAggroRadius,
		},
	}
	e.Stats.BaseDamage = 3
	deps.World.RegisterEntity(e)
	return e
}

// fixedDice всегда выдает одно значение: детерминированные броски d20
type fixedDice struct{ value int }

func (d fixedDice) Intn(n int) int {
	if d.value >= n {
		return n - 1
	}
	return d.value
}

// stubCatalog - каталог способностей на мапе, без YAML
type stubCatalog map[string]*domain.AbilityDef

func (c stubCatalog) Ability(id string) (*domain.AbilityDef, bool) {
	def, ok := c[id]
	return def, ok
}

// recordingNotifier копит события для проверок
type recordingNotifier struct {
	NopNotifier
	died      []string
	dismissed []string
	applied   []string
	expired   []string
}

func (r *recordingNotifier) EntityDied(e *domain.Entity) {
	r.died = append(r.died, e.ID)
}

func (r *recordingNotifier) SummonDismissed(ownerID, summonID string) {
	r.dismissed = append(r.dismissed, summonID)
}

func (r *recordingNotifier) EffectApplied(target *domain.Entity, eff *domain.ActiveEffect) {
	r.applied = append(r.applied, eff.ID)
}

func (r *recordingNotifier) EffectExpired(target *domain.Entity, effectID string) {
	r.expired = append(r.expired, effectID)
}
