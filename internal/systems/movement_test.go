package systems

import (
	"testing"

	"underkingdom-server/internal/domain"
)

func TestStepTowardPrefersLongerAxis(t *testing.T) {
	deps := newTestDeps()
	e := spawnCreature(deps, "gob", domain.FactionMonsters, 2, 2)

	out := StepToward(e, domain.Position{X: 8, Y: 4}, deps)

	if out != StepMoved {
		t.Fatalf("outcome = %v, want StepMoved", out)
	}
	if e.Pos != (domain.Position{X: 3, Y: 2}) {
		t.Errorf("pos = %+v, want {3 2} (ось X длиннее)", e.Pos)
	}
}

func TestStepTowardSlidesWhenPrimaryAxisBlocked(t *testing.T) {
	deps := newTestDeps()
	e := spawnCreature(deps, "gob", domain.FactionMonsters, 2, 2)
	deps.World.Map[2][3].Kind = domain.TileWall // клетка (3,2)

	out := StepToward(e, domain.Position{X: 8, Y: 4}, deps)

	if out != StepMoved {
		t.Fatalf("outcome = %v, want StepMoved", out)
	}
	if e.Pos != (domain.Position{X: 2, Y: 3}) {
		t.Errorf("pos = %+v, want {2 3} (скольжение по второй оси)", e.Pos)
	}
}

func TestSmartCreatureOpensDoorInsteadOfMoving(t *testing.T) {
	deps := newTestDeps()
	e := spawnCreature(deps, "gob", domain.FactionMonsters, 2, 2)
	deps.World.Map[2][3] = domain.Tile{Kind: domain.TileDoor, DoorClosed: true}

	out := StepToward(e, domain.Position{X: 8, Y: 2}, deps)

	if out != StepOpenedDoor {
		t.Fatalf("outcome = %v, want StepOpenedDoor", out)
	}
	// Ход потрачен на дверь, позиция не изменилась
	if e.Pos != (domain.Position{X: 2, Y: 2}) {
		t.Errorf("pos = %+v, want {2 2}", e.Pos)
	}
	if closed, _ := deps.World.DoorAt(3, 2); closed {
		t.Error("дверь осталась закрытой")
	}
}

func TestDumbCreatureBlockedByClosedDoor(t *testing.T) {
	deps := newTestDeps()
	e := spawnCreature(deps, "rat", domain.FactionWild, 2, 2)
	e.Stats.Base[domain.Intelligence] = 2
	deps.World.Map[2][3] = domain.Tile{Kind: domain.TileDoor, DoorClosed: true}
	// Вторая ось тоже перекрыта, чтобы не было скольжения
	deps.World.Map[1][2].Kind = domain.TileWall
	deps.World.Map[3][2].Kind = domain.TileWall

	out := StepToward(e, domain.Position{X: 8, Y: 2}, deps)

	if out != StepBlocked {
		t.Fatalf("outcome = %v, want StepBlocked", out)
	}
	if closed, _ := deps.World.DoorAt(3, 2); !closed {
		t.Error("дверь не должна открываться при INT ниже порога")
	}
}

func TestFleeingSmartCreatureMarksDoorBehind(t *testing.T) {
	deps := newTestDeps()
	e := spawnCreature(deps, "shaman", domain.FactionMonsters, 3, 2)
	e.Stats.Base[domain.Intelligence] = 9
	e.AI.State = domain.StateFleeing
	deps.World.Map[2][3] = domain.Tile{Kind: domain.TileDoor, DoorClosed: false}

	// Сущность стоит в открытом дверном проеме и уходит из него
	out := StepToward(e, domain.Position{X: 8, Y: 2}, deps)

	if out != StepMoved {
		t.Fatalf("outcome = %v, want StepMoved", out)
	}
	if e.AI.PendingDoorClose == nil {
		t.Fatal("умный беглец обязан запомнить проем")
	}
	if *e.AI.PendingDoorClose != (domain.Position{X: 3, Y: 2}) {
		t.Errorf("PendingDoorClose = %+v, want {3 2}", *e.AI.PendingDoorClose)
	}
}

func TestCannotEnterFearZoneFromOutside(t *testing.T) {
	deps := newTestDeps()
	e := spawnCreature(deps, "wolf", domain.FactionWild, 2, 5)
	e.AI.FearedComponents = []string{"fire"}
	e.AI.FearDistance = 2

	deps.World.Features = append(deps.World.Features, &domain.Feature{
		ID: "campfire", Name: "Костер",
		Pos:        domain.Position{X: 5, Y: 5},
		Components: []string{"fire", "light"},
		Lit:        true, LightRadius: 2,
	})

	// Шаг на (3,5) вводит в зону (дистанция 2 <= радиус 2)
	out := stepInto(e, 3, 5, deps)

	if out != StepBlocked {
		t.Errorf("outcome = %v, want StepBlocked (вход в зону страха запрещен)", out)
	}
}

func TestUnlitFireDoesNotScare(t *testing.T) {
	deps := newTestDeps()
	e := spawnCreature(deps, "wolf", domain.FactionWild, 2, 5)
	e.AI.FearedComponents = []string{"fire"}
	e.AI.FearDistance = 2

	deps.World.Features = append(deps.World.Features, &domain.Feature{
		ID: "campfire", Name: "Потухший костер",
		Pos:        domain.Position{X: 5, Y: 5},
		Components: []string{"fire", "light"},
		Lit:        false, LightRadius: 2,
	})

	if InFearZone(e, domain.Position{X: 5, Y: 5}, deps) {
		t.Error("потухший огонь не пугает")
	}
	if _, ok := NearestFearedSource(e, deps); ok {
		t.Error("источник страха не должен находиться")
	}
}

func TestLitFireRadiusIsMaxOfLightAndFearDistance(t *testing.T) {
	deps := newTestDeps()
	e := spawnCreature(deps, "wolf", domain.FactionWild, 2, 5)
	e.AI.FearedComponents = []string{"fire"}
	e.AI.FearDistance = 1

	deps.World.Features = append(deps.World.Features, &domain.Feature{
		ID: "campfire", Name: "Костер",
		Pos:        domain.Position{X: 5, Y: 5},
		Components: []string{"fire", "light"},
		Lit:        true, LightRadius: 4,
	})

	// Свет бьет дальше страха: радиус зоны = 4
	if !InFearZone(e, domain.Position{X: 5, Y: 9}, deps) {
		t.Error("радиус зоны обязан равняться радиусу света, когда тот больше")
	}
	if InFearZone(e, domain.Position{X: 5, Y: 10}, deps) {
		t.Error("клетка за радиусом света не в зоне")
	}
}

func TestBresenhamBlockedByWall(t *testing.T) {
	deps := newTestDeps()
	deps.World.Map[5][5].Kind = domain.TileWall

	if HasLineOfSight(deps.World, domain.Position{X: 3, Y: 5}, domain.Position{X: 8, Y: 5}) {
		t.Error("стена между точками должна рвать линию взгляда")
	}
	if !HasLineOfSight(deps.World, domain.Position{X: 3, Y: 6}, domain.Position{X: 8, Y: 6}) {
		t.Error("чистая линия должна быть видима")
	}
}
