package systems

import "underkingdom-server/internal/domain"

// Избегание пугающих строений. Существо с настроенными FearedComponents
// держится на расстоянии от подходящих объектов (например, волки и огонь).

const fireComponent = "fire"

// fearRadius возвращает действующий радиус избегания строения для сущности.
// Огонь пугает только пока горит, и его радиус - максимум из дистанции
// страха и радиуса света костра.
func fearRadius(f *domain.Feature, ai *domain.AIComponent) (int, bool) {
	matched := false
	for _, c := range ai.FearedComponents {
		if f.HasComponent(c) {
			if c == fireComponent {
				if !f.Lit {
					continue
				}
			}
			matched = true
			break
		}
	}
	if !matched {
		return 0, false
	}

	radius := ai.FearDistance
	if f.HasComponent(fireComponent) && f.Lit && f.LightRadius > radius {
		radius = f.LightRadius
	}
	return radius, true
}

// NearestFearedSource ищет ближайшее пугающее строение, в чьей зоне
// сущность находится прямо сейчас.
func NearestFearedSource(e *domain.Entity, deps *Deps) (*domain.Feature, bool) {
	if e.AI == nil || len(e.AI.FearedComponents) == 0 || deps == nil || deps.World == nil {
		return nil, false
	}

	var nearest *domain.Feature
	bestDist := 0
	for _, f := range deps.World.Features {
		radius, ok := fearRadius(f, e.AI)
		if !ok {
			continue
		}
		dist := e.Pos.ManhattanTo(f.Pos)
		if dist > radius {
			continue
		}
		if nearest == nil || dist < bestDist {
			nearest = f
			bestDist = dist
		}
	}
	return nearest, nearest != nil
}

// InFearZone проверяет, попадает ли клетка в зону какого-либо
// пугающего строения для данной сущности.
func InFearZone(e *domain.Entity, pos domain.Position, deps *Deps) bool {
	if e.AI == nil || len(e.AI.FearedComponents) == 0 || deps == nil || deps.World == nil {
		return false
	}
	for _, f := range deps.World.Features {
		radius, ok := fearRadius(f, e.AI)
		if !ok {
			continue
		}
		if pos.ManhattanTo(f.Pos) <= radius {
			return true
		}
	}
	return false
}
