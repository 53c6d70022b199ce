package systems

import (
	"fmt"

	"underkingdom-server/internal/domain"
)

// StandardAbilityResolver - дефолтная реализация применения способностей:
// прямой урон через таблицу резистов, эффекты через систему эффектов.
type StandardAbilityResolver struct {
	Deps *Deps
}

func NewAbilityResolver(deps *Deps) *StandardAbilityResolver {
	return &StandardAbilityResolver{Deps: deps}
}

func (r *StandardAbilityResolver) ApplyAbility(caster, target *domain.Entity, def *domain.AbilityDef) {
	if target == nil {
		return
	}
	deps := r.Deps

	if def.HasDirectDamage() && target != caster {
		ApplyDamage(target, def.Damage, def.DamageKind, caster, deps)
		if deps.Notify != nil {
			deps.Notify.Message(
				fmt.Sprintf("%s поражает %s: %s.", caster.Name, target.Name, def.Name), "COMBAT")
		}
	}

	for i := range def.Effects {
		if !target.IsAlive() {
			break
		}
		eff := def.Effects[i].Clone()
		eff.Source = def.ID
		AddEffect(target, eff, deps)

		if def.Concentration && caster.Caster != nil {
			caster.Caster.Concentration = &domain.Concentration{
				EffectID: eff.ID,
				TargetID: target.ID,
			}
		}
	}
}
