package domain

import "strings"

// TargetMode - режим нацеливания способности
type TargetMode uint8

const (
	TargetEnemy TargetMode = iota
	TargetSelf
)

func ParseTargetMode(s string) TargetMode {
	if strings.ToLower(s) == "self" {
		return TargetSelf
	}
	return TargetEnemy
}

func (t TargetMode) String() string {
	if t == TargetSelf {
		return "self"
	}
	return "enemy"
}

// AbilityDef - статическое описание способности из каталога.
// Валидируется при загрузке данных, после этого считается корректным.
type AbilityDef struct {
	ID   string
	Name string

	Cost     int // мана
	Range    int // клетки, манхэттен
	Cooldown int // ходов

	Targeting TargetMode

	// Прямой урон (0 = способность не бьет напрямую)
	Damage     int
	DamageKind DamageKind

	// Effects - шаблоны эффектов, которые накладывает способность.
	// Duration в шаблоне - начальная длительность.
	Effects []ActiveEffect

	// Concentration - эффект поддерживается кастером и рвется,
	// когда кастер получает урон.
	Concentration bool
}

// HasDirectDamage - есть ли у способности компонент прямого урона
func (a *AbilityDef) HasDirectDamage() bool {
	return a.Damage > 0
}

// FirstEffectOfKind возвращает первый шаблон эффекта заданного вида (или nil)
func (a *AbilityDef) FirstEffectOfKind(kind EffectKind) *ActiveEffect {
	for i := range a.Effects {
		if a.Effects[i].Kind == kind {
			return &a.Effects[i]
		}
	}
	return nil
}

// IsSelfBuff - баф, который кастер вешает на себя
func (a *AbilityDef) IsSelfBuff() bool {
	return a.Targeting == TargetSelf && a.FirstEffectOfKind(EffectBuff) != nil
}
