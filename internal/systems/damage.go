package systems

import (
	"fmt"

	"underkingdom-server/internal/domain"
	"underkingdom-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ApplyDamage наносит урон с учетом резиста канала (броня здесь не участвует -
// она дело боевого резолвера). Возвращает true, если цель погибла.
func ApplyDamage(target *domain.Entity, amount int, kind domain.DamageKind, source *domain.Entity, deps *Deps) bool {
	if target == nil || target.Stats == nil {
		return false
	}
	res := target.EffectiveResistance(kind)
	scaled := amount * (100 - res) / 100
	if scaled < 0 {
		scaled = 0
	}
	return DeliverDamage(target, scaled, source, deps)
}

// DeliverDamage применяет уже посчитанный урон: HP, тревога AI,
// срыв концентрации, смерть. source == nil для безличного урона (DoT).
func DeliverDamage(target *domain.Entity, amount int, source *domain.Entity, deps *Deps) bool {
	if target == nil || target.Stats == nil || target.Stats.IsDead {
		return false
	}

	died := target.Stats.TakeDamage(amount)

	// Урон будит безусловно: тревога и позиция источника ставятся
	// независимо от дистанции и прежнего состояния.
	if source != nil && target.AI != nil && !target.Stats.IsDead {
		target.AI.Alert(source.ID, source.Pos)
	}

	// Любой урон рвет поддерживаемый эффект
	if target.Caster != nil && target.Caster.Concentration != nil {
		BreakConcentration(target, deps)
	}

	if died {
		handleDeath(target, deps)
	}
	return died
}

// handleDeath выполняется ровно один раз на смерть (TakeDamage гарантирует).
func handleDeath(target *domain.Entity, deps *Deps) {
	target.Blocking = false

	logger.Log.WithFields(logrus.Fields{
		"component": "combat_system",
		"entity_id": target.ID,
		"name":      target.Name,
	}).Info("Entity died.")

	if deps != nil && deps.Notify != nil {
		deps.Notify.EntityDied(target)
	}

	// Призванное существо при смерти снимается с учета у владельца
	// тем же путем, что и при роспуске.
	if target.Summon != nil {
		deregisterSummon(target, deps)
	}
}

// BreakConcentration - хук для внешних триггеров (урон, принудительное
// перемещение): синхронно обрывает поддерживаемый кастером эффект.
func BreakConcentration(caster *domain.Entity, deps *Deps) {
	if caster == nil || caster.Caster == nil || caster.Caster.Concentration == nil {
		return
	}
	conc := caster.Caster.Concentration
	caster.Caster.Concentration = nil

	if deps != nil && deps.World != nil {
		if target := deps.World.GetEntity(conc.TargetID); target != nil {
			RemoveEffect(target, conc.EffectID, deps)
		}
	}

	if deps != nil && deps.Notify != nil {
		deps.Notify.Message(fmt.Sprintf("%s теряет концентрацию.", caster.Name), "COMBAT")
	}
}
