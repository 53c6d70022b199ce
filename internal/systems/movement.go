package systems

import "underkingdom-server/internal/domain"

// StepOutcome - результат попытки шага.
// Открытие двери тоже тратит ход, поэтому это отдельный исход.
type StepOutcome uint8

const (
	StepBlocked StepOutcome = iota
	StepMoved
	StepOpenedDoor
)

// Consumed - потратило ли действие ход
func (s StepOutcome) Consumed() bool {
	return s != StepBlocked
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// canEnter проверяет, может ли сущность встать в клетку:
// проходимость, занятость и запрет на вход в пугающую зону
// (если сущность еще не внутри такой зоны).
func canEnter(e *domain.Entity, x, y int, deps *Deps) bool {
	if !deps.World.IsWalkable(x, y) {
		return false
	}
	if deps.World.IsOccupied(x, y) {
		return false
	}
	if InFearZone(e, domain.Position{X: x, Y: y}, deps) && !InFearZone(e, e.Pos, deps) {
		return false
	}
	return true
}

// stepInto выполняет один шаг в клетку (или открывает дверь в ней).
func stepInto(e *domain.Entity, x, y int, deps *Deps) StepOutcome {
	// Закрытая дверь: достаточно умные существа открывают ее,
	// и это действие съедает ход вместо перемещения.
	if closed, ok := deps.World.DoorAt(x, y); ok && closed {
		if e.Stats != nil && e.Stats.EffectiveAttribute(domain.Intelligence) >= domain.DoorOpenIntelligence {
			deps.World.OpenDoor(x, y)
			return StepOpenedDoor
		}
		return StepBlocked
	}

	if !canEnter(e, x, y, deps) {
		return StepBlocked
	}

	from := e.Pos
	vacatedDoorOpen := false
	if closed, ok := deps.World.DoorAt(from.X, from.Y); ok && !closed {
		vacatedDoorOpen = true
	}

	if err := deps.World.UpdateEntityPos(e, x, y); err != nil {
		return StepBlocked
	}

	// Умное убегающее существо запоминает дверной проем, чтобы закрыть
	// его отдельным действием на следующем ходу.
	if e.AI != nil && e.AI.State == domain.StateFleeing && vacatedDoorOpen &&
		e.Stats != nil && e.Stats.EffectiveAttribute(domain.Intelligence) >= domain.DoorCloseIntelligence {
		pos := from
		e.AI.PendingDoorClose = &pos
	}

	if deps.Notify != nil {
		deps.Notify.EntityMoved(e, from, e.Pos)
	}
	return StepMoved
}

// StepToward делает один шаг к цели: сначала вдоль оси с большей
// абсолютной дельтой, при блокировке - вдоль второй оси.
func StepToward(e *domain.Entity, target domain.Position, deps *Deps) StepOutcome {
	dxRaw := target.X - e.Pos.X
	dyRaw := target.Y - e.Pos.Y
	if dxRaw == 0 && dyRaw == 0 {
		return StepBlocked
	}
	return stepByAxes(e, dxRaw, dyRaw, deps)
}

// StepAway делает один шаг строго от точки (инверсия дельт)
func StepAway(e *domain.Entity, from domain.Position, deps *Deps) StepOutcome {
	dxRaw := e.Pos.X - from.X
	dyRaw := e.Pos.Y - from.Y
	if dxRaw == 0 && dyRaw == 0 {
		// Стоим на самой точке - бежим в любую открытую сторону
		return WanderRandom(e, deps)
	}
	return stepByAxes(e, dxRaw, dyRaw, deps)
}

func stepByAxes(e *domain.Entity, dxRaw, dyRaw int, deps *Deps) StepOutcome {
	stepX := sign(dxRaw)
	stepY := sign(dyRaw)

	abs := func(v int) int {
		if v < 0 {
			return -v
		}
		return v
	}

	xFirst := abs(dxRaw) >= abs(dyRaw)

	if xFirst {
		if stepX != 0 {
			if out := stepInto(e, e.Pos.X+stepX, e.Pos.Y, deps); out.Consumed() {
				return out
			}
		}
		if stepY != 0 {
			if out := stepInto(e, e.Pos.X, e.Pos.Y+stepY, deps); out.Consumed() {
				return out
			}
		}
	} else {
		if stepY != 0 {
			if out := stepInto(e, e.Pos.X, e.Pos.Y+stepY, deps); out.Consumed() {
				return out
			}
		}
		if stepX != 0 {
			if out := stepInto(e, e.Pos.X+stepX, e.Pos.Y, deps); out.Consumed() {
				return out
			}
		}
	}
	return StepBlocked
}

var cardinalDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// WanderRandom делает шаг в случайную открытую соседнюю клетку.
// Двери в блуждании не открываются - незачем.
func WanderRandom(e *domain.Entity, deps *Deps) StepOutcome {
	if deps.Rand == nil {
		return StepBlocked
	}
	start := deps.Rand.Intn(4)
	for i := 0; i < 4; i++ {
		d := cardinalDirs[(start+i)%4]
		x, y := e.Pos.X+d[0], e.Pos.Y+d[1]
		if closed, ok := deps.World.DoorAt(x, y); ok && closed {
			continue
		}
		if canEnter(e, x, y, deps) {
			return stepInto(e, x, y, deps)
		}
	}
	return StepBlocked
}
