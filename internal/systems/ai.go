package systems

import (
	"underkingdom-server/internal/domain"
	"underkingdom-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// AI-контроллер. Вызывается планировщиком один раз за ход для каждой
// неигровой сущности. Итог хода - ровно одно действие (или ничего).
//
// Порядок диспетчеризации, обрыв на первом успехе:
//  1. закрыть дверь за собой (отложенное действие убегающего);
//  2. ближний бой, если цель в кардинально соседней клетке;
//  3. бегство от цели, если состояние fleeing;
//  4. отход от пугающего строения;
//  5. каст для кастер-режимов;
//  6. движение по модели поведения.

// TakeTurn - единственная точка входа AI
func TakeTurn(e *domain.Entity, deps *Deps) {
	if e == nil || !e.IsAlive() || e.AI == nil {
		return
	}

	// Кулдауны и регенерация маны тикают всегда, был каст или нет
	if e.Caster != nil {
		e.Caster.TickResources()
	}

	// Призыв ходит по своим правилам
	if e.Summon != nil {
		SummonTakeTurn(e, deps)
		return
	}

	target := acquireTarget(e, deps)

	// Обнаружение по дистанции (урон будит отдельно и безусловно)
	if target != nil && e.Pos.ManhattanTo(target.Pos) <= e.AI.AggroRadius {
		e.AI.Alert(target.ID, target.Pos)
	}

	aiLogger := logger.Log.WithFields(logrus.Fields{
		"component": "ai_system",
		"entity_id": e.ID,
		"name":      e.Name,
		"mode":      e.AI.Mode.String(),
	})

	// 1. Отложенное закрытие двери
	if tryCloseDoorBehind(e, deps) {
		aiLogger.Debug("Closed the door behind.")
		return
	}

	// 2. Ближний бой
	if target != nil && e.Pos.IsCardinalAdjacent(target.Pos) && e.AI.State != domain.StateFleeing {
		meleeAttack(e, target, deps)
		return
	}

	// 3. Паника (mind-эффект страха)
	if e.AI.State == domain.StateFleeing && target != nil {
		StepAway(e, target.Pos, deps)
		return
	}

	// 4. Страх перед строениями
	if src, ok := NearestFearedSource(e, deps); ok {
		aiLogger.WithField("feared", src.Name).Debug("Avoiding feared feature.")
		StepAway(e, src.Pos, deps)
		return
	}

	// 5. Заклинания
	if e.AI.Mode.IsCaster() && e.Caster != nil {
		if TryCast(e, target, deps) {
			return
		}
	}

	// 6. Движение по модели поведения.
	// Берсерк игнорирует свою модель и просто прет на цель.
	mode := e.AI.Mode
	if e.AI.State == domain.StateBerserk {
		mode = domain.BehaviorAggressive
	}

	switch mode {
	case domain.BehaviorAggressive, domain.BehaviorPack:
		if target != nil {
			StepToward(e, target.Pos, deps)
		}

	case domain.BehaviorGuardian:
		// Страж не покидает пост: преследует только внутри агро-радиуса
		if target != nil && e.Pos.ManhattanTo(target.Pos) <= e.AI.AggroRadius {
			StepToward(e, target.Pos, deps)
		}

	case domain.BehaviorWander:
		if e.AI.Alerted && e.AI.HasLastKnown {
			StepToward(e, e.AI.LastKnown, deps)
		} else {
			WanderRandom(e, deps)
		}

	case domain.BehaviorPassive:
		if e.AI.Alerted && target != nil {
			StepAway(e, target.Pos, deps)
		} else {
			WanderRandom(e, deps)
		}

	case domain.BehaviorCasterAggressive:
		// Каст не удался - сближаемся до дистанции ближнего боя
		if target != nil && e.Pos.ManhattanTo(target.Pos) > domain.CasterMeleeThreshold {
			StepToward(e, target.Pos, deps)
		}

	case domain.BehaviorCasterDefensive:
		// Держим дистанцию: на минимальной и ближе - отходим,
		// дальше максимальной - догоняем
		if target != nil {
			dist := e.Pos.ManhattanTo(target.Pos)
			if dist <= domain.CasterMinRange {
				StepAway(e, target.Pos, deps)
			} else if dist > domain.CasterMaxRange {
				StepToward(e, target.Pos, deps)
			}
		}
	}
}

// acquireTarget находит ближайшую живую враждебную сущность.
// Детерминированно: при равной дистанции побеждает меньший ID.
func acquireTarget(e *domain.Entity, deps *Deps) *domain.Entity {
	if deps == nil || deps.World == nil {
		return nil
	}

	var best *domain.Entity
	bestDist := 0
	for _, other := range deps.World.EntityRegistry {
		if other.ID == e.ID || !other.IsAlive() {
			continue
		}
		if !e.Faction.Hostile(other.Faction) {
			continue
		}
		dist := e.Pos.ManhattanTo(other.Pos)
		if best == nil || dist < bestDist || (dist == bestDist && other.ID < best.ID) {
			best = other
			bestDist = dist
		}
	}
	return best
}

// tryCloseDoorBehind закрывает дверной проем, оставленный при бегстве.
// Действие возможно, только если сущность все еще рядом, дверь открыта
// и проем никем не занят. В любом случае отметка снимается.
func tryCloseDoorBehind(e *domain.Entity, deps *Deps) bool {
	if e.AI.PendingDoorClose == nil {
		return false
	}
	pos := *e.AI.PendingDoorClose
	e.AI.PendingDoorClose = nil

	if e.AI.State != domain.StateFleeing {
		return false
	}
	if !e.Pos.IsCardinalAdjacent(pos) {
		return false
	}
	if closed, ok := deps.World.DoorAt(pos.X, pos.Y); !ok || closed {
		return false
	}
	if deps.World.IsOccupied(pos.X, pos.Y) {
		return false
	}
	return deps.World.CloseDoor(pos.X, pos.Y)
}
