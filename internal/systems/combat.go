package systems

import (
	"fmt"

	"underkingdom-server/internal/domain"
	"underkingdom-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// MeleeResolver - дефолтная реализация CombatResolver.
// d20 на попадание против 10 + модификатор DEX цели,
// урон = базовый урон + модификатор STR, минус броня, минимум 1.
type MeleeResolver struct {
	Rand Dice
}

func NewMeleeResolver(rand Dice) *MeleeResolver {
	return &MeleeResolver{Rand: rand}
}

// attrMod - классический модификатор характеристики: (значение-10)/2
func attrMod(value int) int {
	return (value - 10) / 2
}

func (r *MeleeResolver) ResolveAttack(attacker, defender *domain.Entity) (bool, int) {
	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":     "combat_system",
		"attacker_id":   attacker.ID,
		"attacker_name": attacker.Name,
		"target_id":     defender.ID,
		"target_name":   defender.Name,
	})

	if defender.Stats == nil {
		combatLogger.Warn("Attack failed: target has no stats.")
		return false, 0
	}
	if defender.Stats.IsDead {
		combatLogger.Info("Attack ineffective: target is already dead.")
		return false, 0
	}

	roll := 10
	if r.Rand != nil {
		roll = r.Rand.Intn(20) + 1
	}

	hitBonus := 0
	baseDamage := 1
	if attacker.Stats != nil {
		hitBonus = attrMod(attacker.Stats.EffectiveAttribute(domain.Strength))
		baseDamage = attacker.Stats.BaseDamage + hitBonus
	}

	defense := 10 + attrMod(defender.Stats.EffectiveAttribute(domain.Dexterity))

	// 1 - всегда промах, 20 - всегда попадание
	hit := roll == 20 || (roll != 1 && roll+hitBonus >= defense)
	if !hit {
		combatLogger.WithField("roll", roll).Debug("Attack missed.")
		return false, 0
	}

	finalDamage := baseDamage - defender.Stats.EffectiveArmor()
	if finalDamage < 1 {
		finalDamage = 1
	}

	// Резист рубящего: оружейный урон по умолчанию режет
	res := defender.EffectiveResistance(domain.DamageSlashing)
	finalDamage = finalDamage * (100 - res) / 100
	if finalDamage < 0 {
		finalDamage = 0
	}

	combatLogger.WithFields(logrus.Fields{
		"roll":         roll,
		"base_damage":  baseDamage,
		"final_damage": finalDamage,
	}).Info("Attack resolved.")

	return true, finalDamage
}

// meleeAttack выполняет атаку ближнего боя через резолвер и доносит урон
func meleeAttack(attacker, target *domain.Entity, deps *Deps) {
	hit, damage := deps.Combat.ResolveAttack(attacker, target)
	if !hit {
		if deps.Notify != nil {
			deps.Notify.Message(fmt.Sprintf("%s промахивается по %s.", attacker.Name, target.Name), "COMBAT")
		}
		// Даже промах будит цель
		if target.AI != nil && target.IsAlive() {
			target.AI.Alert(attacker.ID, attacker.Pos)
		}
		return
	}

	died := DeliverDamage(target, damage, attacker, deps)

	if deps.Notify != nil {
		msg := fmt.Sprintf("%s наносит %d урона по %s.", attacker.Name, damage, target.Name)
		if died {
			msg += fmt.Sprintf(" %s погибает.", target.Name)
		}
		deps.Notify.Message(msg, "COMBAT")
	}
}
