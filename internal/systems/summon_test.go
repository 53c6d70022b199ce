package systems

import (
	"testing"

	"underkingdom-server/internal/domain"
)

func newSummonPair(deps *Deps, mode domain.SummonMode, duration int) (owner, summon *domain.Entity) {
	owner = spawnCreature(deps, "owner", domain.FactionPlayer, 5, 5)
	owner.Summoner = &domain.SummonerComponent{}

	summon = &domain.Entity{
		ID:       "wisp",
		Kind:     domain.KindSummon,
		Name:     "wisp",
		Pos:      domain.Position{X: 5, Y: 6},
		Blocking: true,
		Faction:  owner.Faction,
		Stats:    domain.NewStats(10, 10, 10, 10, 10, 10),
		Summon: &domain.SummonComponent{
			OwnerID:  owner.ID,
			Mode:     mode,
			Duration: duration,
		},
	}
	summon.Stats.BaseDamage = 3
	SpawnSummon(owner, summon, deps)
	return owner, summon
}

func TestSummonExpiresBeforeActing(t *testing.T) {
	deps := newTestDeps()
	rec := &recordingNotifier{}
	deps.Notify = rec
	owner, summon := newSummonPair(deps, domain.SummonAggressive, 1)

	// Рядом враг, но истечение срока важнее действия
	enemy := spawnCreature(deps, "gob", domain.FactionMonsters, 5, 7)
	hpBefore := enemy.Stats.HP

	SummonTakeTurn(summon, deps)

	if !summon.Summon.Dismissed {
		t.Fatal("призыв с длительностью 1 распускается до действия")
	}
	if enemy.Stats.HP != hpBefore {
		t.Error("истекший призыв не должен успеть атаковать")
	}
	if owner.Summoner.Has(summon.ID) {
		t.Error("владелец должен забыть распущенный призыв")
	}
	if deps.World.GetEntity(summon.ID) != nil {
		t.Error("распущенный призыв должен сняться с учета мира")
	}
	if len(rec.dismissed) != 1 {
		t.Errorf("dismissed = %v, want одно уведомление", rec.dismissed)
	}
}

func TestUnlimitedSummonNeverExpires(t *testing.T) {
	deps := newTestDeps()
	_, summon := newSummonPair(deps, domain.SummonStay, domain.SummonUnlimited)

	for i := 0; i < 50; i++ {
		SummonTakeTurn(summon, deps)
	}
	if summon.Summon.Dismissed {
		t.Error("бессрочный призыв не истекает")
	}
	if summon.Summon.Duration != domain.SummonUnlimited {
		t.Errorf("duration = %d, want %d (сентинел не тикает)", summon.Summon.Duration, domain.SummonUnlimited)
	}
}

func TestDismissIsIdempotent(t *testing.T) {
	deps := newTestDeps()
	rec := &recordingNotifier{}
	deps.Notify = rec
	owner, summon := newSummonPair(deps, domain.SummonFollow, 10)

	DismissSummon(summon, deps)
	DismissSummon(summon, deps)

	if len(rec.dismissed) != 1 {
		t.Errorf("повторный роспуск должен быть no-op, уведомлений %d", len(rec.dismissed))
	}
	if owner.Summoner.Has(summon.ID) {
		t.Error("призыв остался в списке владельца")
	}
}

func TestSummonDeathDeregistersLikeDismissal(t *testing.T) {
	deps := newTestDeps()
	owner, summon := newSummonPair(deps, domain.SummonFollow, 10)

	DeliverDamage(summon, 1000, nil, deps)

	if owner.Summoner.Has(summon.ID) {
		t.Error("смерть призыва должна снять его с учета у владельца")
	}
	if !summon.Summon.Dismissed {
		t.Error("флаг Dismissed должен взводиться и при смерти")
	}

	// Последующее истечение срока уже ничего не делает
	DismissSummon(summon, deps)
}

func TestFollowModeInterceptsAdjacentHostile(t *testing.T) {
	deps := newTestDeps()
	deps.Combat = NewMeleeResolver(fixedDice{value: 18})
	_, summon := newSummonPair(deps, domain.SummonFollow, 10)

	enemy := spawnCreature(deps, "gob", domain.FactionMonsters, 5, 7) // рядом с призывом (5,6)
	hpBefore := enemy.Stats.HP

	SummonTakeTurn(summon, deps)

	if enemy.Stats.HP >= hpBefore {
		t.Error("режим follow обязан перехватывать врага вплотную")
	}
}

func TestFollowModeKeepsUpWithOwner(t *testing.T) {
	deps := newTestDeps()
	owner, summon := newSummonPair(deps, domain.SummonFollow, 10)
	deps.World.UpdateEntityPos(owner, 10, 10)

	distBefore := summon.Pos.ManhattanTo(owner.Pos)
	SummonTakeTurn(summon, deps)

	if got := summon.Pos.ManhattanTo(owner.Pos); got >= distBefore {
		t.Errorf("призыв должен догонять владельца, dist %d -> %d", distBefore, got)
	}
}

func TestStayModeHoldsPosition(t *testing.T) {
	deps := newTestDeps()
	_, summon := newSummonPair(deps, domain.SummonStay, 10)
	spawnCreature(deps, "gob", domain.FactionMonsters, 10, 10) // далеко

	posBefore := summon.Pos
	SummonTakeTurn(summon, deps)

	if summon.Pos != posBefore {
		t.Errorf("режим stay не двигается: %+v -> %+v", posBefore, summon.Pos)
	}
}

func TestAggressiveFallbackWhenOwnerDead(t *testing.T) {
	deps := newTestDeps()
	owner, summon := newSummonPair(deps, domain.SummonFollow, 10)
	enemy := spawnCreature(deps, "gob", domain.FactionMonsters, 12, 6)

	DeliverDamage(owner, 1000, nil, deps)

	distBefore := summon.Pos.ManhattanTo(enemy.Pos)
	SummonTakeTurn(summon, deps)

	if got := summon.Pos.ManhattanTo(enemy.Pos); got >= distBefore {
		t.Errorf("без владельца follow переходит в агрессию, dist %d -> %d", distBefore, got)
	}
}

func TestSummonIgnoresOtherSummonsAsTargets(t *testing.T) {
	deps := newTestDeps()
	_, summon := newSummonPair(deps, domain.SummonAggressive, 10)

	hostileSummon := &domain.Entity{
		ID: "enemy_wisp", Kind: domain.KindSummon, Name: "enemy_wisp",
		Pos: domain.Position{X: 6, Y: 6}, Blocking: true,
		Faction: domain.FactionMonsters,
		Stats:   domain.NewStats(10, 10, 10, 10, 10, 10),
		Summon:  &domain.SummonComponent{OwnerID: "nobody", Mode: domain.SummonStay, Duration: 10},
	}
	deps.World.RegisterEntity(hostileSummon)

	if got := nearestHostileToSummon(summon, deps); got != nil {
		t.Errorf("цель = %q, призывы не целятся друг в друга", got.ID)
	}
}

func TestSummonCasterResourcesTickEachTurn(t *testing.T) {
	deps := newTestDeps()
	_, summon := newSummonPair(deps, domain.SummonStay, 10)
	summon.AI = &domain.AIComponent{Mode: domain.BehaviorAggressive, State: domain.StateNormal, AggroRadius: 8}
	summon.Caster = &domain.CasterComponent{
		Mana:      5,
		MaxMana:   10,
		Cooldowns: map[string]int{"firebolt": 2},
	}

	TakeTurn(summon, deps)

	if got := summon.Caster.CooldownLeft("firebolt"); got != 1 {
		t.Errorf("кулдаун после хода = %d, want 1: ресурсы тикают и у призыва", got)
	}
}
