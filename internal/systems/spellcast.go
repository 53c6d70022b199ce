package systems

import (
	"underkingdom-server/internal/domain"
	"underkingdom-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Решение "что кастовать". Приоритет фиксированный:
//  1. дебаф, которого на цели еще нет;
//  2. любая способность с прямым уроном;
//  3. DoT, которого на цели еще нет;
//  4. баф на себя, который еще не активен.
// Если ничего не подошло - каст проваливается, и AI уходит в движение.

// castable проверяет общие предусловия способности
func castable(caster *domain.Entity, target *domain.Entity, def *domain.AbilityDef, deps *Deps) bool {
	c := caster.Caster
	if c.CooldownLeft(def.ID) > 0 {
		return false
	}
	if c.Mana < def.Cost {
		return false
	}
	if def.Targeting == domain.TargetSelf {
		return true
	}
	if target == nil {
		return false
	}
	if caster.Pos.ManhattanTo(target.Pos) > def.Range {
		return false
	}
	if deps.LOS != nil && !deps.LOS.HasLineOfSight(caster.Pos, target.Pos) {
		return false
	}
	return true
}

// pickAbility выбирает способность по приоритету
func pickAbility(caster, target *domain.Entity, deps *Deps) *domain.AbilityDef {
	var candidates []*domain.AbilityDef
	for _, id := range caster.Caster.Known {
		def, ok := deps.Abilities.Ability(id)
		if !ok {
			// Неизвестный id в данных - не фатально, просто пропускаем
			continue
		}
		if castable(caster, target, def, deps) {
			candidates = append(candidates, def)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	// 1. Свежий дебаф
	for _, def := range candidates {
		if eff := def.FirstEffectOfKind(domain.EffectDebuff); eff != nil {
			if target != nil && !target.HasEffect(eff.ID) {
				return def
			}
		}
	}
	// 2. Прямой урон
	for _, def := range candidates {
		if def.HasDirectDamage() && target != nil {
			return def
		}
	}
	// 3. Свежий DoT
	for _, def := range candidates {
		if eff := def.FirstEffectOfKind(domain.EffectDot); eff != nil {
			if target != nil && !target.HasEffect(eff.ID) {
				return def
			}
		}
	}
	// 4. Свежий баф на себя
	for _, def := range candidates {
		if def.IsSelfBuff() {
			if eff := def.FirstEffectOfKind(domain.EffectBuff); eff != nil && !caster.HasEffect(eff.ID) {
				return def
			}
		}
	}
	return nil
}

// TryCast пытается скастовать лучшую доступную способность.
// true = каст состоялся и ход потрачен.
func TryCast(caster, target *domain.Entity, deps *Deps) bool {
	if caster.Caster == nil || len(caster.Caster.Known) == 0 || deps.Abilities == nil {
		return false
	}

	def := pickAbility(caster, target, deps)
	if def == nil {
		return false
	}

	actualTarget := target
	if def.Targeting == domain.TargetSelf {
		actualTarget = caster
	}

	if !caster.Caster.SpendMana(def.Cost) {
		return false
	}
	caster.Caster.SetCooldown(def.ID, def.Cooldown)

	logger.Log.WithFields(logrus.Fields{
		"component":  "spell_system",
		"caster_id":  caster.ID,
		"ability_id": def.ID,
		"mana_left":  caster.Caster.Mana,
	}).Info("Ability cast.")

	// Применение эффектов - дело резолвера способностей
	if deps.Resolver != nil {
		deps.Resolver.ApplyAbility(caster, actualTarget, def)
	}
	return true
}
