package engine

import (
	"underkingdom-server/internal/domain"
)

// --- РАЗМЕТКА СТАРТОВОЙ АРЕНЫ ---
// Полноценная генерация подземелья живет в отдельном проекте; здесь
// достаточно огороженной арены с перегородкой, дверью и костром,
// чтобы симуляция упиралась в стены, а не уходила за край карты.

// BuildArena обносит карту стенами и ставит перегородку с дверью
func (s *GameService) BuildArena() {
	w := s.World
	for x := 0; x < w.Width; x++ {
		w.Map[0][x].Kind = domain.TileWall
		w.Map[w.Height-1][x].Kind = domain.TileWall
	}
	for y := 0; y < w.Height; y++ {
		w.Map[y][0].Kind = domain.TileWall
		w.Map[y][w.Width-1].Kind = domain.TileWall
	}

	// Вертикальная перегородка с дверью посередине
	midX := w.Width / 2
	doorY := w.Height / 2
	for y := 1; y < w.Height-1; y++ {
		if y == doorY {
			w.Map[y][midX] = domain.Tile{Kind: domain.TileDoor, DoorClosed: true}
			continue
		}
		w.Map[y][midX].Kind = domain.TileWall
	}
}

// PlaceCampfire ставит горящий костер. Животные с боязнью огня
// будут обходить его, пока он горит.
func (s *GameService) PlaceCampfire(pos domain.Position) *domain.Feature {
	f := &domain.Feature{
		ID:          domain.NewID(),
		Name:        "Костер",
		Pos:         pos,
		Components:  []string{"fire", "light"},
		Lit:         true,
		LightRadius: 4,
	}
	s.World.Features = append(s.World.Features, f)
	return f
}
