package domain

import "fmt"

// --- ПОЛЕЗНЫЕ НАГРУЗКИ ЭФФЕКТОВ ---
// Каждому EffectKind соответствует своя типизированная нагрузка.
// nil-поле означает отсутствие нагрузки (как nil-компонент у Entity).

// StatPayload - дельты характеристик, брони и радиуса света (buff/debuff)
type StatPayload struct {
	Deltas map[Attribute]int `json:"deltas,omitempty" yaml:"deltas,omitempty"`
	Armor  int               `json:"armor,omitempty" yaml:"armor,omitempty"`
	Light  int               `json:"light,omitempty" yaml:"light,omitempty"`
}

// DotPayload - периодический урон (яд, горение, кровотечение)
type DotPayload struct {
	PerTurn int        `json:"perTurn" yaml:"per_turn"`
	Kind    DamageKind `json:"kind" yaml:"-"`
}

// ResistPayload - временный сдвиг одного канала резистов
type ResistPayload struct {
	Channel DamageKind `json:"channel" yaml:"-"`
	Delta   int        `json:"delta" yaml:"delta"`
}

// MindPayload - подмена фракции и/или состояния AI (charm/fear/calm/enrage)
type MindPayload struct {
	OverrideFaction Faction `json:"overrideFaction,omitempty"`
	HasFaction      bool    `json:"hasFaction,omitempty"`
	OverrideState   AIState `json:"overrideState,omitempty"`
}

// ActiveEffect - активный временный эффект на сущности.
// ID уникален в пределах сущности: повторное наложение обновляет длительность,
// а не создает дубликат.
type ActiveEffect struct {
	ID       string     `json:"id"`
	Kind     EffectKind `json:"kind"`
	Duration int        `json:"duration"` // ходов осталось
	Source   string     `json:"source"`   // id способности-источника

	Stat   *StatPayload   `json:"stat,omitempty"`
	Dot    *DotPayload    `json:"dot,omitempty"`
	Resist *ResistPayload `json:"resist,omitempty"`
	Mind   *MindPayload   `json:"mind,omitempty"`

	// FactionSnapshot - фракция цели на момент наложения.
	// Заполняется только для mind-эффектов, восстанавливается при снятии.
	FactionSnapshot Faction `json:"factionSnapshot,omitempty"`
}

// Validate проверяет согласованность вида эффекта и его нагрузки.
// Вызывается один раз при загрузке данных, а не на каждом тике.
func (e *ActiveEffect) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("effect without id")
	}
	switch e.Kind {
	case EffectBuff, EffectDebuff:
		if e.Stat == nil {
			return fmt.Errorf("effect %q: kind %s requires stat payload", e.ID, e.Kind)
		}
	case EffectDot:
		if e.Dot == nil {
			return fmt.Errorf("effect %q: kind dot requires dot payload", e.ID)
		}
		if e.Dot.PerTurn < 0 {
			return fmt.Errorf("effect %q: negative dot damage", e.ID)
		}
	case EffectElementalResistance:
		if e.Resist == nil {
			return fmt.Errorf("effect %q: kind elemental_resistance requires resist payload", e.ID)
		}
	case EffectCharm, EffectFear, EffectCalm, EffectEnrage:
		if e.Mind == nil {
			return fmt.Errorf("effect %q: mind effect requires mind payload", e.ID)
		}
	default:
		return fmt.Errorf("effect %q: unknown kind", e.ID)
	}
	return nil
}

// Clone возвращает глубокую копию эффекта.
// Нужна, чтобы шаблон из каталога способностей не делил память с активным экземпляром.
func (e *ActiveEffect) Clone() ActiveEffect {
	out := *e
	if e.Stat != nil {
		stat := *e.Stat
		if e.Stat.Deltas != nil {
			stat.Deltas = make(map[Attribute]int, len(e.Stat.Deltas))
			for k, v := range e.Stat.Deltas {
				stat.Deltas[k] = v
			}
		}
		out.Stat = &stat
	}
	if e.Dot != nil {
		dot := *e.Dot
		out.Dot = &dot
	}
	if e.Resist != nil {
		res := *e.Resist
		out.Resist = &res
	}
	if e.Mind != nil {
		mind := *e.Mind
		out.Mind = &mind
	}
	return out
}
