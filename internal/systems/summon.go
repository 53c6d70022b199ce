package systems

import (
	"fmt"

	"underkingdom-server/internal/domain"
	"underkingdom-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Поведение призванных существ. Заменяет общий AI-диспетчер:
// призыв слушается приказа владельца, а не своей модели поведения.

// SummonTakeTurn - ход призванного существа
func SummonTakeTurn(e *domain.Entity, deps *Deps) {
	s := e.Summon
	if s == nil || s.Dismissed {
		return
	}

	// Время жизни тикает до любого действия. Истекший призыв
	// распускается и в этот ход уже не действует.
	if s.Duration != domain.SummonUnlimited {
		s.Duration--
		if s.Duration <= 0 {
			DismissSummon(e, deps)
			return
		}
	}

	owner := deps.World.GetEntity(s.OwnerID)
	hostile := nearestHostileToSummon(e, deps)

	switch s.Mode {
	case domain.SummonFollow:
		// Сначала перехват: бьем врага, подошедшего вплотную
		if hostile != nil && e.Pos.IsCardinalAdjacent(hostile.Pos) {
			meleeAttack(e, hostile, deps)
			return
		}
		// Владелец мертв или недостижим - переходим к агрессии
		if owner == nil || !owner.IsAlive() {
			summonAggressive(e, nil, hostile, deps)
			return
		}
		if e.Pos.ManhattanTo(owner.Pos) > domain.SummonFollowRadius {
			StepToward(e, owner.Pos, deps)
		}

	case domain.SummonAggressive:
		summonAggressive(e, owner, hostile, deps)

	case domain.SummonDefensive:
		if hostile != nil && e.Pos.IsCardinalAdjacent(hostile.Pos) {
			meleeAttack(e, hostile, deps)
			return
		}
		if owner != nil && owner.IsAlive() && e.Pos.ManhattanTo(owner.Pos) > domain.SummonDefensiveRadius {
			StepToward(e, owner.Pos, deps)
		}

	case domain.SummonStay:
		// Стоим на месте, бьем только то, что само подошло
		if hostile != nil && e.Pos.IsCardinalAdjacent(hostile.Pos) {
			meleeAttack(e, hostile, deps)
		}
	}
}

func summonAggressive(e, owner, hostile *domain.Entity, deps *Deps) {
	if hostile != nil {
		if e.Pos.IsCardinalAdjacent(hostile.Pos) {
			meleeAttack(e, hostile, deps)
			return
		}
		StepToward(e, hostile.Pos, deps)
		return
	}
	// Врагов нет - держимся владельца
	if owner != nil && owner.IsAlive() && e.Pos.ManhattanTo(owner.Pos) > domain.SummonFollowRadius {
		StepToward(e, owner.Pos, deps)
	}
}

// nearestHostileToSummon ищет ближайшего живого врага, исключая других призывов
func nearestHostileToSummon(e *domain.Entity, deps *Deps) *domain.Entity {
	var best *domain.Entity
	bestDist := 0
	for _, other := range deps.World.EntityRegistry {
		if other.ID == e.ID || !other.IsAlive() || other.Summon != nil {
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

// SpawnSummon регистрирует призванное существо в мире и у владельца
func SpawnSummon(owner, summon *domain.Entity, deps *Deps) {
	if owner.Summoner == nil {
		owner.Summoner = &domain.SummonerComponent{}
	}
	owner.Summoner.Add(summon.ID)
	deps.World.RegisterEntity(summon)

	logger.Log.WithFields(logrus.Fields{
		"component": "summon_system",
		"owner_id":  owner.ID,
		"summon_id": summon.ID,
	}).Info("Summon created.")

	if deps.Notify != nil {
		deps.Notify.SummonCreated(owner, summon)
	}
}

// DismissSummon распускает призыв: снятие с учета у владельца,
// удаление из мира, уведомление. Повторный вызов - no-op.
func DismissSummon(e *domain.Entity, deps *Deps) {
	if e.Summon == nil || e.Summon.Dismissed {
		return
	}
	deregisterSummon(e, deps)

	if deps.Notify != nil {
		deps.Notify.SummonDismissed(e.Summon.OwnerID, e.ID)
		deps.Notify.Message(fmt.Sprintf("%s растворяется в воздухе.", e.Name), "INFO")
	}
}

// deregisterSummon - общий шаг снятия с учета для роспуска И смерти.
// Флаг Dismissed гарантирует ровно одно выполнение.
func deregisterSummon(e *domain.Entity, deps *Deps) {
	if e.Summon == nil || e.Summon.Dismissed {
		return
	}
	e.Summon.Dismissed = true

	if owner := deps.World.GetEntity(e.Summon.OwnerID); owner != nil && owner.Summoner != nil {
		owner.Summoner.Remove(e.ID)
	}
	deps.World.UnregisterEntity(e.ID)

	logger.Log.WithFields(logrus.Fields{
		"component": "summon_system",
		"summon_id": e.ID,
		"owner_id":  e.Summon.OwnerID,
	}).Debug("Summon deregistered.")
}
