package api

// --- СЕРВЕР -> КЛИЕНТ ---
// Ядро шлет односторонние уведомления; ответа не ждет.

// Типы уведомлений
const (
	NotifyEntityDied      = "ENTITY_DIED"
	NotifyEntityMoved     = "ENTITY_MOVED"
	NotifyEffectApplied   = "EFFECT_APPLIED"
	NotifyEffectRemoved   = "EFFECT_REMOVED"
	NotifyEffectExpired   = "EFFECT_EXPIRED"
	NotifySummonCreated   = "SUMMON_CREATED"
	NotifySummonDismissed = "SUMMON_DISMISSED"
	NotifyMessage         = "MESSAGE"
)

// Уровни важности текстовых сообщений
const (
	SeverityInfo   = "INFO"
	SeverityCombat = "COMBAT"
	SeverityError  = "ERROR"
)

// PositionView - координаты в уведомлении
type PositionView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Notification - одно исходящее событие симуляции.
// Поля заполняются по типу события, остальные опускаются.
type Notification struct {
	Type string `json:"type"`
	Tick int    `json:"tick"`

	EntityID string `json:"entityId,omitempty"`
	OwnerID  string `json:"ownerId,omitempty"`
	EffectID string `json:"effectId,omitempty"`

	From *PositionView `json:"from,omitempty"`
	To   *PositionView `json:"to,omitempty"`

	Text     string `json:"text,omitempty"`
	Severity string `json:"severity,omitempty"`
}

// EntityView - слепок сущности для отладочного эндпоинта
type EntityView struct {
	ID      string       `json:"id"`
	Kind    string       `json:"kind"`
	Name    string       `json:"name"`
	Pos     PositionView `json:"pos"`
	HP      int          `json:"hp"`
	MaxHP   int          `json:"maxHp"`
	IsDead  bool         `json:"isDead"`
	Faction string       `json:"faction"`
	Effects []string     `json:"effects,omitempty"`
}
