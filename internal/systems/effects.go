package systems

import (
	"underkingdom-server/internal/domain"
	"underkingdom-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Система эффектов. Владеет списком Entity.Effects: добавление, снятие,
// тик длительностей и пересчет агрегированных модификаторов.

// AddEffect накладывает эффект на цель.
// Если эффект с таким id уже висит, обновляется только длительность -
// дубликаты не создаются.
func AddEffect(target *domain.Entity, eff domain.ActiveEffect, deps *Deps) {
	if target == nil || target.Stats == nil {
		return
	}

	effLogger := logger.Log.WithFields(logrus.Fields{
		"component": "effect_system",
		"target_id": target.ID,
		"effect_id": eff.ID,
		"kind":      eff.Kind.String(),
	})

	for i := range target.Effects {
		if target.Effects[i].ID == eff.ID {
			target.Effects[i].Duration = eff.Duration
			effLogger.Debug("Effect refreshed.")
			RecomputeModifiers(target)
			return
		}
	}

	// Mind-эффекты запоминают фракцию на момент наложения и сразу
	// подменяют фракцию/состояние AI.
	if eff.Kind.IsMindEffect() && eff.Mind != nil {
		eff.FactionSnapshot = target.Faction
		if eff.Mind.HasFaction {
			target.Faction = eff.Mind.OverrideFaction
		}
		if target.AI != nil {
			target.AI.State = eff.Mind.OverrideState
		}
	}

	target.Effects = append(target.Effects, eff)
	RecomputeModifiers(target)

	effLogger.WithField("duration", eff.Duration).Info("Effect applied.")
	if deps != nil && deps.Notify != nil {
		deps.Notify.EffectApplied(target, &eff)
	}
}

// RemoveEffect снимает эффект по id (диспел, лечение).
// false = эффекта не было. Откат зависит от вида эффекта.
func RemoveEffect(target *domain.Entity, effectID string, deps *Deps) bool {
	if target == nil {
		return false
	}
	for i := range target.Effects {
		if target.Effects[i].ID == effectID {
			removed := target.Effects[i]
			target.Effects = append(target.Effects[:i], target.Effects[i+1:]...)
			rollbackEffect(target, &removed)
			RecomputeModifiers(target)
			if deps != nil && deps.Notify != nil {
				deps.Notify.EffectRemoved(target, effectID)
			}
			return true
		}
	}
	return false
}

// rollbackEffect выполняет типо-специфичный откат при снятии/истечении:
//   - charm/calm/enrage восстанавливают фракцию по снапшоту и сбрасывают AI-состояние;
//   - fear/enrage сбрасывают AI-состояние безусловно.
func rollbackEffect(target *domain.Entity, eff *domain.ActiveEffect) {
	switch eff.Kind {
	case domain.EffectCharm, domain.EffectCalm, domain.EffectEnrage:
		target.Faction = eff.FactionSnapshot
		if target.AI != nil {
			target.AI.State = domain.StateNormal
		}
	}
	switch eff.Kind {
	case domain.EffectFear, domain.EffectEnrage:
		if target.AI != nil {
			target.AI.State = domain.StateNormal
		}
	}
}

// ProcessTurn делает один тик эффектов сущности:
// сначала весь DoT-урон одной аппликацией (мимо брони),
// затем декремент длительностей и снятие истекших.
func ProcessTurn(target *domain.Entity, deps *Deps) {
	if target == nil || !target.IsAlive() || len(target.Effects) == 0 {
		return
	}

	// 1. Суммируем периодический урон. Резист канала применяется
	// к каждому источнику отдельно, броня не участвует вовсе.
	total := 0
	for i := range target.Effects {
		eff := &target.Effects[i]
		if eff.Kind == domain.EffectDot && eff.Dot != nil {
			res := target.EffectiveResistance(eff.Dot.Kind)
			total += eff.Dot.PerTurn * (100 - res) / 100
		}
	}
	if total > 0 {
		DeliverDamage(target, total, nil, deps)
	}

	// 2. Тик длительностей. Урон мог убить цель, но эффекты на трупе
	// все равно дотикиваются и снимаются.
	var expired []domain.ActiveEffect
	kept := target.Effects[:0]
	for i := range target.Effects {
		target.Effects[i].Duration--
		if target.Effects[i].Duration <= 0 {
			expired = append(expired, target.Effects[i])
		} else {
			kept = append(kept, target.Effects[i])
		}
	}
	target.Effects = kept

	if len(expired) == 0 {
		return
	}

	for i := range expired {
		rollbackEffect(target, &expired[i])
		logger.Log.WithFields(logrus.Fields{
			"component": "effect_system",
			"target_id": target.ID,
			"effect_id": expired[i].ID,
		}).Debug("Effect expired.")
		if deps != nil && deps.Notify != nil {
			deps.Notify.EffectExpired(target, expired[i].ID)
		}
	}
	RecomputeModifiers(target)
}

// RecomputeModifiers пересчитывает агрегированные модификаторы с нуля:
// обнуляем все дельты, кладем постоянные источники (раса/класс),
// сверху суммируем нагрузки всех активных эффектов.
// Так снятый эффект физически не может оставить след.
func RecomputeModifiers(target *domain.Entity) {
	if target.Stats == nil {
		return
	}
	target.Stats.ClearStatModifiers()

	if target.Traits != nil {
		target.Traits.Each(func(t *domain.Trait) {
			target.Stats.ApplyStatModifiers(t.StatBonus)
			target.Stats.ArmorDelta += t.ArmorBonus
		})
	}

	for i := range target.Effects {
		eff := &target.Effects[i]
		if eff.Stat == nil {
			continue
		}
		target.Stats.ApplyStatModifiers(eff.Stat.Deltas)
		target.Stats.ArmorDelta += eff.Stat.Armor
		target.Stats.LightDelta += eff.Stat.Light
	}
}
