package systems

import "underkingdom-server/internal/domain"

// Интерфейсы коллабораторов симуляции.
// Системы не трогают глобальных менеджеров: всё, что им нужно,
// передается явно через Deps - иначе ядро не потестировать без живого мира.

// CombatResolver разыгрывает одну атаку ближнего боя.
// Возвращает попадание и итоговый урон (уже после брони и резистов).
type CombatResolver interface {
	ResolveAttack(attacker, defender *domain.Entity) (hit bool, damage int)
}

// AbilityCatalog - справочник способностей по id
type AbilityCatalog interface {
	Ability(id string) (*domain.AbilityDef, bool)
}

// AbilityResolver применяет эффекты способности к цели.
// Решение "что кастовать" принимает AI, применение - отдельный сервис.
type AbilityResolver interface {
	ApplyAbility(caster, target *domain.Entity, def *domain.AbilityDef)
}

// LineOfSight - проверка прямой видимости между клетками
type LineOfSight interface {
	HasLineOfSight(from, to domain.Position) bool
}

// Dice - источник случайности. math/rand.Rand подходит напрямую.
type Dice interface {
	Intn(n int) int
}

// Notifier - односторонние исходящие уведомления.
// Ядро шлет и не ждет ответа; блокироваться здесь нельзя.
type Notifier interface {
	EntityDied(e *domain.Entity)
	EntityMoved(e *domain.Entity, from, to domain.Position)
	EffectApplied(target *domain.Entity, eff *domain.ActiveEffect)
	EffectRemoved(target *domain.Entity, effectID string)
	EffectExpired(target *domain.Entity, effectID string)
	SummonCreated(owner, summon *domain.Entity)
	SummonDismissed(ownerID, summonID string)
	Message(text, severity string)
}

// Deps - все зависимости, которые нужны системам на один вызов.
// World передается конкретным типом (как у карты и реестра один владелец),
// остальное - интерфейсами.
type Deps struct {
	World     *domain.GameWorld
	Combat    CombatResolver
	Abilities AbilityCatalog
	Resolver  AbilityResolver
	LOS       LineOfSight
	Rand      Dice
	Notify    Notifier
}

// NopNotifier - заглушка для тестов и оффлайн-симуляции
type NopNotifier struct{}

func (NopNotifier) EntityDied(*domain.Entity)                                   {}
func (NopNotifier) EntityMoved(*domain.Entity, domain.Position, domain.Position) {}
func (NopNotifier) EffectApplied(*domain.Entity, *domain.ActiveEffect)           {}
func (NopNotifier) EffectRemoved(*domain.Entity, string)                         {}
func (NopNotifier) EffectExpired(*domain.Entity, string)                         {}
func (NopNotifier) SummonCreated(*domain.Entity, *domain.Entity)                 {}
func (NopNotifier) SummonDismissed(string, string)                               {}
func (NopNotifier) Message(string, string)                                       {}
