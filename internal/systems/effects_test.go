package systems

import (
	"testing"

	"underkingdom-server/internal/domain"
)

func buffEffect(id string, duration int, deltas map[domain.Attribute]int) domain.ActiveEffect {
	return domain.ActiveEffect{
		ID:       id,
		Kind:     domain.EffectBuff,
		Duration: duration,
		Stat:     &domain.StatPayload{Deltas: deltas},
	}
}

func TestAddEffectRefreshesInsteadOfStacking(t *testing.T) {
	deps := newTestDeps()
	e := spawnCreature(deps, "gob", domain.FactionMonsters, 3, 3)

	eff := buffEffect("fury", 4, map[domain.Attribute]int{domain.Strength: 2})
	AddEffect(e, eff, deps)

	refreshed := buffEffect("fury", 7, map[domain.Attribute]int{domain.Strength: 2})
	AddEffect(e, refreshed, deps)

	if len(e.Effects) != 1 {
		t.Fatalf("effects count = %d, want 1", len(e.Effects))
	}
	if e.Effects[0].Duration != 7 {
		t.Errorf("duration = %d, want 7", e.Effects[0].Duration)
	}
	if got := e.Stats.EffectiveAttribute(domain.Strength); got != 12 {
		t.Errorf("STR = %d, want 12 (бонус не должен удваиваться)", got)
	}
}

func TestEffectExpiryRestoresAttributes(t *testing.T) {
	deps := newTestDeps()
	e := spawnCreature(deps, "gob", domain.FactionMonsters, 3, 3)

	AddEffect(e, buffEffect("weak", 2, map[domain.Attribute]int{domain.Strength: -3}), deps)
	if got := e.Stats.EffectiveAttribute(domain.Strength); got != 7 {
		t.Fatalf("STR под дебафом = %d, want 7", got)
	}

	ProcessTurn(e, deps) // duration 2 -> 1
	if !e.HasEffect("weak") {
		t.Fatal("эффект истек на ход раньше")
	}
	ProcessTurn(e, deps) // duration 1 -> 0, снятие
	if e.HasEffect("weak") {
		t.Fatal("эффект не истек")
	}
	if got := e.Stats.EffectiveAttribute(domain.Strength); got != 10 {
		t.Errorf("STR после снятия = %d, want 10", got)
	}
}

func TestAttributeFloorIsOne(t *testing.T) {
	deps := newTestDeps()
	e := spawnCreature(deps, "gob", domain.FactionMonsters, 3, 3)

	AddEffect(e, buffEffect("drain", 3, map[domain.Attribute]int{domain.Dexterity: -50}), deps)
	if got := e.Stats.EffectiveAttribute(domain.Dexterity); got != 1 {
		t.Errorf("DEX = %d, want 1 (нижняя граница)", got)
	}
}

func TestDotDamageBeforeDurationTick(t *testing.T) {
	deps := newTestDeps()
	rec := &recordingNotifier{}
	deps.Notify = rec
	e := spawnCreature(deps, "gob", domain.FactionMonsters, 3, 3)
	e.Stats.BaseArmor = 50 // DoT идет мимо брони

	AddEffect(e, domain.ActiveEffect{
		ID:       "poisoned",
		Kind:     domain.EffectDot,
		Duration: 1,
		Dot:      &domain.DotPayload{PerTurn: 5, Kind: domain.DamagePoison},
	}, deps)

	hpBefore := e.Stats.HP
	ProcessTurn(e, deps)

	if got := hpBefore - e.Stats.HP; got != 5 {
		t.Errorf("урон за тик = %d, want 5", got)
	}
	// Последний тик DoT обязан нанести урон до снятия
	if e.HasEffect("poisoned") {
		t.Error("эффект с длительностью 1 должен сняться после тика")
	}
	if len(rec.expired) != 1 || rec.expired[0] != "poisoned" {
		t.Errorf("expired = %v, want [poisoned]", rec.expired)
	}
}

func TestDotScaledByChannelResistance(t *testing.T) {
	deps := newTestDeps()
	e := spawnCreature(deps, "gob", domain.FactionMonsters, 3, 3)
	e.Stats.Resist[domain.DamageFire] = 50

	AddEffect(e, domain.ActiveEffect{
		ID:       "burning",
		Kind:     domain.EffectDot,
		Duration: 3,
		Dot:      &domain.DotPayload{PerTurn: 10, Kind: domain.DamageFire},
	}, deps)

	hpBefore := e.Stats.HP
	ProcessTurn(e, deps)

	if got := hpBefore - e.Stats.HP; got != 5 {
		t.Errorf("урон за тик = %d, want 5 (резист 50%%)", got)
	}
}

func TestMultipleDotsAppliedAsSingleHit(t *testing.T) {
	deps := newTestDeps()
	e := spawnCreature(deps, "gob", domain.FactionMonsters, 3, 3)

	AddEffect(e, domain.ActiveEffect{
		ID: "poisoned", Kind: domain.EffectDot, Duration: 3,
		Dot: &domain.DotPayload{PerTurn: 3, Kind: domain.DamagePoison},
	}, deps)
	AddEffect(e, domain.ActiveEffect{
		ID: "bleeding", Kind: domain.EffectDot, Duration: 3,
		Dot: &domain.DotPayload{PerTurn: 4, Kind: domain.DamageSlashing},
	}, deps)

	hpBefore := e.Stats.HP
	ProcessTurn(e, deps)
	if got := hpBefore - e.Stats.HP; got != 7 {
		t.Errorf("суммарный урон = %d, want 7", got)
	}
}

func TestCharmRollbackRestoresFaction(t *testing.T) {
	deps := newTestDeps()
	e := spawnCreature(deps, "gob", domain.FactionMonsters, 3, 3)

	AddEffect(e, domain.ActiveEffect{
		ID:       "charmed",
		Kind:     domain.EffectCharm,
		Duration: 3,
		Mind: &domain.MindPayload{
			OverrideFaction: domain.FactionPlayer,
			HasFaction:      true,
			OverrideState:   domain.StateNormal,
		},
	}, deps)

	if e.Faction != domain.FactionPlayer {
		t.Fatalf("faction = %v, want player (подмена)", e.Faction)
	}

	if !RemoveEffect(e, "charmed", deps) {
		t.Fatal("RemoveEffect вернул false")
	}
	if e.Faction != domain.FactionMonsters {
		t.Errorf("faction = %v, want monsters (откат по снапшоту)", e.Faction)
	}
	if e.AI.State != domain.StateNormal {
		t.Errorf("state = %v, want normal", e.AI.State)
	}
}

func TestFearExpiryResetsState(t *testing.T) {
	deps := newTestDeps()
	e := spawnCreature(deps, "gob", domain.FactionMonsters, 3, 3)

	AddEffect(e, domain.ActiveEffect{
		ID:       "terrified",
		Kind:     domain.EffectFear,
		Duration: 1,
		Mind:     &domain.MindPayload{OverrideState: domain.StateFleeing},
	}, deps)

	if e.AI.State != domain.StateFleeing {
		t.Fatalf("state = %v, want fleeing", e.AI.State)
	}

	ProcessTurn(e, deps)
	if e.HasEffect("terrified") {
		t.Fatal("страх не истек")
	}
	if e.AI.State != domain.StateNormal {
		t.Errorf("state = %v, want normal после истечения", e.AI.State)
	}
}

func TestResistanceEffectComposition(t *testing.T) {
	deps := newTestDeps()
	e := spawnCreature(deps, "gob", domain.FactionMonsters, 3, 3)
	e.Stats.Resist[domain.DamageFire] = 50

	AddEffect(e, domain.ActiveEffect{
		ID:       "fire_ward",
		Kind:     domain.EffectElementalResistance,
		Duration: 5,
		Resist:   &domain.ResistPayload{Channel: domain.DamageFire, Delta: 50},
	}, deps)

	if got := e.EffectiveResistance(domain.DamageFire); got != 75 {
		t.Errorf("резист = %d, want 75 (50 + 50 по убывающей отдаче)", got)
	}
}

func TestDotCanKillAndEffectsStillExpire(t *testing.T) {
	deps := newTestDeps()
	rec := &recordingNotifier{}
	deps.Notify = rec
	e := spawnCreature(deps, "gob", domain.FactionMonsters, 3, 3)
	e.Stats.HP = 3

	AddEffect(e, domain.ActiveEffect{
		ID: "poisoned", Kind: domain.EffectDot, Duration: 1,
		Dot: &domain.DotPayload{PerTurn: 10, Kind: domain.DamagePoison},
	}, deps)

	ProcessTurn(e, deps)

	if e.IsAlive() {
		t.Fatal("цель должна погибнуть от яда")
	}
	if len(rec.died) != 1 {
		t.Errorf("died = %v, want один", rec.died)
	}
	if len(e.Effects) != 0 {
		t.Errorf("на трупе остались эффекты: %d", len(e.Effects))
	}
}
