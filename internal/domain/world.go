package domain

import "errors"

// TileKind - тип клетки карты
type TileKind uint8

const (
	TileFloor TileKind = iota
	TileWall
	TileDoor
)

type Tile struct {
	Kind TileKind `json:"kind"`

	// DoorClosed имеет смысл только для TileDoor
	DoorClosed bool `json:"doorClosed,omitempty"`
}

// Walkable - можно ли встать на клетку
func (t Tile) Walkable() bool {
	if t.Kind == TileWall {
		return false
	}
	if t.Kind == TileDoor && t.DoorClosed {
		return false
	}
	return true
}

// Transparent - проходит ли через клетку взгляд
func (t Tile) Transparent() bool {
	return t.Walkable()
}

// Feature - строение/объект мира (костер, алтарь, ловушка).
// Компоненты - строковые теги ("fire", "light"), по ним работает избегание.
type Feature struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Pos  Position `json:"pos"`

	Components  []string `json:"components,omitempty"`
	Lit         bool     `json:"lit,omitempty"`
	LightRadius int      `json:"lightRadius,omitempty"`
}

// HasComponent проверяет наличие компонента у строения
func (f *Feature) HasComponent(name string) bool {
	for _, c := range f.Components {
		if c == name {
			return true
		}
	}
	return false
}

// GameWorld - карта уровня плюс индексы сущностей
type GameWorld struct {
	Map    [][]Tile `json:"map"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Tick   int      `json:"tick"`

	Features []*Feature `json:"features,omitempty"`

	// SpatialHash: индекс клетки (Y*Width+X) -> сущности в ней.
	// Не сериализуется, восстанавливается из позиций.
	SpatialHash    map[int][]*Entity  `json:"-"`
	EntityRegistry map[string]*Entity `json:"-"`
}

// NewWorld создает пустой мир заданного размера (весь пол)
func NewWorld(width, height int) *GameWorld {
	tiles := make([][]Tile, height)
	for y := 0; y < height; y++ {
		tiles[y] = make([]Tile, width)
	}
	return &GameWorld{
		Map:            tiles,
		Width:          width,
		Height:         height,
		SpatialHash:    make(map[int][]*Entity),
		EntityRegistry: make(map[string]*Entity),
	}
}

func (w *GameWorld) GetIndex(x, y int) int {
	return y*w.Width + x
}

func (w *GameWorld) InBounds(x, y int) bool {
	return x >= 0 && x < w.Width && y >= 0 && y < w.Height
}

// IsWalkable - границы + стены + закрытые двери
func (w *GameWorld) IsWalkable(x, y int) bool {
	if !w.InBounds(x, y) {
		return false
	}
	return w.Map[y][x].Walkable()
}

// IsTransparent - для расчета линии взгляда
func (w *GameWorld) IsTransparent(x, y int) bool {
	if !w.InBounds(x, y) {
		return false
	}
	return w.Map[y][x].Transparent()
}

// DoorAt возвращает (закрыта, это_дверь)
func (w *GameWorld) DoorAt(x, y int) (closed bool, ok bool) {
	if !w.InBounds(x, y) || w.Map[y][x].Kind != TileDoor {
		return false, false
	}
	return w.Map[y][x].DoorClosed, true
}

// OpenDoor открывает дверь. false = там нет двери.
func (w *GameWorld) OpenDoor(x, y int) bool {
	if _, ok := w.DoorAt(x, y); !ok {
		return false
	}
	w.Map[y][x].DoorClosed = false
	return true
}

// CloseDoor закрывает дверь. false = нет двери или клетка занята.
func (w *GameWorld) CloseDoor(x, y int) bool {
	if _, ok := w.DoorAt(x, y); !ok {
		return false
	}
	for _, e := range w.GetEntitiesAt(x, y) {
		if e.IsAlive() {
			return false
		}
	}
	w.Map[y][x].DoorClosed = true
	return true
}

// --- ИНДЕКСЫ СУЩНОСТЕЙ ---

// GetEntitiesAt возвращает список сущностей в конкретной клетке (быстро!)
func (w *GameWorld) GetEntitiesAt(x, y int) []*Entity {
	if !w.InBounds(x, y) {
		return nil
	}
	return w.SpatialHash[w.GetIndex(x, y)]
}

// IsOccupied - стоит ли в клетке живая блокирующая сущность
func (w *GameWorld) IsOccupied(x, y int) bool {
	for _, e := range w.GetEntitiesAt(x, y) {
		if e.Blocking && e.IsAlive() {
			return true
		}
	}
	return false
}

// GetEntity ищет сущность по ID
func (w *GameWorld) GetEntity(id string) *Entity {
	if w.EntityRegistry == nil {
		return nil
	}
	return w.EntityRegistry[id]
}

// RegisterEntity добавляет сущность в реестр и пространственный индекс
func (w *GameWorld) RegisterEntity(e *Entity) {
	if w.EntityRegistry == nil {
		w.EntityRegistry = make(map[string]*Entity)
	}
	w.EntityRegistry[e.ID] = e
	w.addToHash(e)
}

// UnregisterEntity удаляет сущность из реестра и индекса
func (w *GameWorld) UnregisterEntity(id string) {
	e, ok := w.EntityRegistry[id]
	if !ok {
		return
	}
	w.removeFromHash(e)
	delete(w.EntityRegistry, id)
}

func (w *GameWorld) addToHash(e *Entity) {
	idx := w.GetIndex(e.Pos.X, e.Pos.Y)
	w.SpatialHash[idx] = append(w.SpatialHash[idx], e)
}

func (w *GameWorld) removeFromHash(e *Entity) {
	idx := w.GetIndex(e.Pos.X, e.Pos.Y)
	entities := w.SpatialHash[idx]
	for i, other := range entities {
		if other.ID == e.ID {
			// Swap with last: порядок внутри клетки не важен
			lastIdx := len(entities) - 1
			entities[i] = entities[lastIdx]
			w.SpatialHash[idx] = entities[:lastIdx]
			return
		}
	}
}

// UpdateEntityPos перемещает сущность в индексе
func (w *GameWorld) UpdateEntityPos(e *Entity, newX, newY int) error {
	if !w.InBounds(newX, newY) {
		return errors.New("out of bounds")
	}
	w.removeFromHash(e)
	e.Pos.X = newX
	e.Pos.Y = newY
	w.addToHash(e)
	return nil
}

// FeaturesNear возвращает строения в радиусе (манхэттен) от позиции
func (w *GameWorld) FeaturesNear(pos Position, radius int) []*Feature {
	var out []*Feature
	for _, f := range w.Features {
		if pos.ManhattanTo(f.Pos) <= radius {
			out = append(out, f)
		}
	}
	return out
}
