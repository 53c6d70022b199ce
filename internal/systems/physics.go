package systems

import "underkingdom-server/internal/domain"

// HasLineOfSight проверяет прямую видимость между двумя клетками (Брезенхэм).
// Стартовая и конечная точки препятствиями не считаются.
func HasLineOfSight(w *domain.GameWorld, p1, p2 domain.Position) bool {
	if p1.X == p2.X && p1.Y == p2.Y {
		return true
	}

	x0, y0 := p1.X, p1.Y
	x1, y1 := p2.X, p2.Y

	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}

	sx := sign(x1 - x0)
	sy := sign(y1 - y0)

	err := dx - dy

	for {
		isStart := x0 == p1.X && y0 == p1.Y
		isEnd := x0 == p2.X && y0 == p2.Y

		if !isStart && !isEnd && !w.IsTransparent(x0, y0) {
			return false
		}

		if x0 == x1 && y0 == y1 {
			return true
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// WorldLOS - дефолтная реализация интерфейса LineOfSight поверх карты
type WorldLOS struct {
	World *domain.GameWorld
}

func (l WorldLOS) HasLineOfSight(from, to domain.Position) bool {
	return HasLineOfSight(l.World, from, to)
}
