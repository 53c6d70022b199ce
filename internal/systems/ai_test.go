package systems

import (
	"testing"

	"underkingdom-server/internal/domain"
)

func TestDamageAlertsUnconditionally(t *testing.T) {
	deps := newTestDeps()
	victim := spawnCreature(deps, "gob", domain.FactionMonsters, 2, 2)
	attacker := spawnCreature(deps, "hero", domain.FactionPlayer, 14, 14)

	victim.AI.AggroRadius = 3 // атакующий далеко за пределами
	victim.AI.State = domain.StateIdle

	DeliverDamage(victim, 2, attacker, deps)

	if !victim.AI.Alerted {
		t.Fatal("урон обязан переводить в боевой режим независимо от дистанции")
	}
	if victim.AI.TargetID != attacker.ID {
		t.Errorf("TargetID = %q, want %q", victim.AI.TargetID, attacker.ID)
	}
	if !victim.AI.HasLastKnown || victim.AI.LastKnown != attacker.Pos {
		t.Errorf("LastKnown = %+v, want %+v", victim.AI.LastKnown, attacker.Pos)
	}
}

func TestMeleeWhenCardinallyAdjacent(t *testing.T) {
	deps := newTestDeps()
	deps.Combat = NewMeleeResolver(fixedDice{value: 18}) // гарантированное попадание
	gob := spawnCreature(deps, "gob", domain.FactionMonsters, 5, 5)
	hero := spawnCreature(deps, "hero", domain.FactionPlayer, 5, 6)

	hpBefore := hero.Stats.HP
	TakeTurn(gob, deps)

	if hero.Stats.HP >= hpBefore {
		t.Error("соседняя цель должна быть атакована, а не обойдена")
	}
	if gob.Pos != (domain.Position{X: 5, Y: 5}) {
		t.Errorf("атака не должна перемещать: pos = %+v", gob.Pos)
	}
}

func TestDiagonalAdjacencyIsNotMeleeRange(t *testing.T) {
	deps := newTestDeps()
	gob := spawnCreature(deps, "gob", domain.FactionMonsters, 5, 5)
	hero := spawnCreature(deps, "hero", domain.FactionPlayer, 6, 6)

	hpBefore := hero.Stats.HP
	TakeTurn(gob, deps)

	if hero.Stats.HP != hpBefore {
		t.Error("диагональ - не дистанция ближнего боя")
	}
	// Вместо атаки - шаг на сближение
	if gob.Pos.ManhattanTo(hero.Pos) != 1 {
		t.Errorf("после хода дистанция = %d, want 1", gob.Pos.ManhattanTo(hero.Pos))
	}
}

func TestFleeingStepsAwayInsteadOfAttacking(t *testing.T) {
	deps := newTestDeps()
	gob := spawnCreature(deps, "gob", domain.FactionMonsters, 5, 5)
	hero := spawnCreature(deps, "hero", domain.FactionPlayer, 5, 6)

	gob.AI.State = domain.StateFleeing
	hpBefore := hero.Stats.HP

	TakeTurn(gob, deps)

	if hero.Stats.HP != hpBefore {
		t.Error("паникующий не атакует даже соседнюю цель")
	}
	if gob.Pos.ManhattanTo(hero.Pos) <= 1 {
		t.Errorf("паникующий должен увеличить дистанцию, dist = %d", gob.Pos.ManhattanTo(hero.Pos))
	}
}

func TestCasterDefensiveKitesWhenTooClose(t *testing.T) {
	deps := newTestDeps()
	deps.Abilities = stubCatalog{} // заклинаний нет, остается позиционирование

	mage := spawnCreature(deps, "mage", domain.FactionMonsters, 5, 5)
	mage.AI.Mode = domain.BehaviorCasterDefensive
	mage.Caster = &domain.CasterComponent{Mana: 10, MaxMana: 10}

	hero := spawnCreature(deps, "hero", domain.FactionPlayer, 5, 7) // dist 2 < CasterMinRange

	TakeTurn(mage, deps)

	if got := mage.Pos.ManhattanTo(hero.Pos); got <= 2 {
		t.Errorf("дистанция после хода = %d, кастер обязан отойти", got)
	}
}

func TestCasterDefensiveRetreatsAtMinimumRange(t *testing.T) {
	deps := newTestDeps()
	deps.Abilities = stubCatalog{}

	mage := spawnCreature(deps, "mage", domain.FactionMonsters, 5, 5)
	mage.AI.Mode = domain.BehaviorCasterDefensive
	mage.Caster = &domain.CasterComponent{Mana: 10, MaxMana: 10}

	hero := spawnCreature(deps, "hero", domain.FactionPlayer, 5, 8) // ровно CasterMinRange

	TakeTurn(mage, deps)

	if got := mage.Pos.ManhattanTo(hero.Pos); got != 4 {
		t.Errorf("дистанция после хода = %d, want 4: минимальная дистанция входит в зону отхода", got)
	}
}

func TestCasterDefensiveClosesWhenTooFar(t *testing.T) {
	deps := newTestDeps()
	deps.Abilities = stubCatalog{}

	mage := spawnCreature(deps, "mage", domain.FactionMonsters, 2, 2)
	mage.AI.Mode = domain.BehaviorCasterDefensive
	mage.AI.AggroRadius = 15
	mage.Caster = &domain.CasterComponent{Mana: 10, MaxMana: 10}

	hero := spawnCreature(deps, "hero", domain.FactionPlayer, 2, 12) // dist 10 > CasterMaxRange

	TakeTurn(mage, deps)

	if got := mage.Pos.ManhattanTo(hero.Pos); got >= 10 {
		t.Errorf("дистанция после хода = %d, кастер обязан сближаться", got)
	}
}

func TestGuardianHoldsPostOutsideAggro(t *testing.T) {
	deps := newTestDeps()
	guard := spawnCreature(deps, "guard", domain.FactionMonsters, 3, 3)
	guard.AI.Mode = domain.BehaviorGuardian
	guard.AI.AggroRadius = 4

	spawnCreature(deps, "hero", domain.FactionPlayer, 12, 12)

	TakeTurn(guard, deps)

	if guard.Pos != (domain.Position{X: 3, Y: 3}) {
		t.Errorf("страж покинул пост: pos = %+v", guard.Pos)
	}
}

func TestBerserkOverridesPassiveBehavior(t *testing.T) {
	deps := newTestDeps()
	rat := spawnCreature(deps, "rat", domain.FactionWild, 3, 3)
	rat.AI.Mode = domain.BehaviorPassive
	rat.AI.State = domain.StateBerserk
	rat.AI.AggroRadius = 15

	hero := spawnCreature(deps, "hero", domain.FactionPlayer, 3, 8)
	distBefore := rat.Pos.ManhattanTo(hero.Pos)

	TakeTurn(rat, deps)

	if got := rat.Pos.ManhattanTo(hero.Pos); got >= distBefore {
		t.Errorf("берсерк должен сближаться вопреки пассивной модели, dist %d -> %d", distBefore, got)
	}
}

func TestNeutralsAcquireNoTargets(t *testing.T) {
	deps := newTestDeps()
	npc := spawnCreature(deps, "npc", domain.FactionNeutral, 3, 3)
	spawnCreature(deps, "hero", domain.FactionPlayer, 3, 4)

	if target := acquireTarget(npc, deps); target != nil {
		t.Errorf("нейтрал нашел цель %q, хотя ни с кем не враждует", target.ID)
	}
}

func TestTargetTieBreakBySmallerID(t *testing.T) {
	deps := newTestDeps()
	gob := spawnCreature(deps, "gob", domain.FactionMonsters, 5, 5)
	spawnCreature(deps, "b_hero", domain.FactionPlayer, 5, 8)
	spawnCreature(deps, "a_hero", domain.FactionPlayer, 8, 5)

	target := acquireTarget(gob, deps)
	if target == nil || target.ID != "a_hero" {
		t.Errorf("при равной дистанции цель = %v, want a_hero", target)
	}
}

func TestCooldownsTickEvenWithoutCast(t *testing.T) {
	deps := newTestDeps()
	deps.Abilities = stubCatalog{}

	mage := spawnCreature(deps, "mage", domain.FactionMonsters, 3, 3)
	mage.AI.Mode = domain.BehaviorCasterAggressive
	mage.Caster = &domain.CasterComponent{Mana: 0, MaxMana: 10}
	mage.Caster.SetCooldown("firebolt", 2)

	TakeTurn(mage, deps)

	if got := mage.Caster.CooldownLeft("firebolt"); got != 1 {
		t.Errorf("кулдаун после хода = %d, want 1", got)
	}
}

func TestCloseDoorBehindWhileFleeing(t *testing.T) {
	deps := newTestDeps()
	doorPos := domain.Position{X: 5, Y: 5}
	deps.World.Map[5][5] = domain.Tile{Kind: domain.TileDoor, DoorClosed: false}

	gob := spawnCreature(deps, "gob", domain.FactionMonsters, 5, 4)
	gob.AI.State = domain.StateFleeing
	gob.AI.PendingDoorClose = &doorPos

	TakeTurn(gob, deps)

	if closed, ok := deps.World.DoorAt(5, 5); !ok || !closed {
		t.Error("дверь должна быть закрыта отложенным действием")
	}
	if gob.AI.PendingDoorClose != nil {
		t.Error("отметка отложенного действия не снята")
	}
}

func TestPendingDoorCloseClearedWhenNotFleeing(t *testing.T) {
	deps := newTestDeps()
	doorPos := domain.Position{X: 5, Y: 5}
	deps.World.Map[5][5] = domain.Tile{Kind: domain.TileDoor, DoorClosed: false}

	gob := spawnCreature(deps, "gob", domain.FactionMonsters, 5, 4)
	gob.AI.PendingDoorClose = &doorPos // состояние уже не fleeing

	TakeTurn(gob, deps)

	if closed, _ := deps.World.DoorAt(5, 5); closed {
		t.Error("успокоившееся существо не закрывает дверь")
	}
	if gob.AI.PendingDoorClose != nil {
		t.Error("отметка должна сниматься в любом случае")
	}
}
