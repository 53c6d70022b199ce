package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"underkingdom-server/internal/domain"
)

const (
	MagicHeader string = `UKSV` // 4 байта
	Version1    uint32 = 1
)

// SaveFileHeader - точное представление заголовка файла в памяти.
// binary.Write пишет структуру целиком: внутри только массивы и числа.
type SaveFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт
	Timestamp   int64   // 8 байт
	Tick        int32   // 4 байта
	EntityCount int32   // 4 байта
}

// EntityHeader - заголовок каждой записи сущности
type EntityHeader struct {
	RecordLen uint32 // 4
}

// Snapshot - сохраняемое состояние симуляции
type Snapshot struct {
	Seed      int64
	Timestamp int64
	Tick      int
	Entities  []domain.EntityRecord
}

type SnapshotService struct {
	SaveDir string
}

func NewSnapshotService(dir string) *SnapshotService {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &SnapshotService{SaveDir: dir}
}

// Capture собирает снимок из живого мира
func Capture(seed int64, tick int, entities []*domain.Entity) *Snapshot {
	snap := &Snapshot{
		Seed:      seed,
		Timestamp: time.Now().Unix(),
		Tick:      tick,
		Entities:  make([]domain.EntityRecord, 0, len(entities)),
	}
	for _, e := range entities {
		snap.Entities = append(snap.Entities, e.ToRecord())
	}
	return snap
}

func (s *SnapshotService) Save(snap *Snapshot) (string, error) {
	filename := fmt.Sprintf("save_%d_t%d_%d.uksv", snap.Seed, snap.Tick, snap.Timestamp)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := writeBinary(f, snap); err != nil {
		return "", err
	}
	return path, nil
}

func writeBinary(w io.Writer, s *Snapshot) error {
	header := SaveFileHeader{
		Version:     Version1,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		Tick:        int32(s.Tick),
		EntityCount: int32(len(s.Entities)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// Тело: каждая сущность как length-prefixed JSON.
	// Записи разной формы (компоненты опциональны), фиксированная
	// структура тут не живет.
	for i := range s.Entities {
		raw, err := json.Marshal(&s.Entities[i])
		if err != nil {
			return fmt.Errorf("failed to marshal entity %q: %w", s.Entities[i].ID, err)
		}

		eh := EntityHeader{RecordLen: uint32(len(raw))}
		if err := binary.Write(w, binary.LittleEndian, &eh); err != nil {
			return err
		}
		if _, err := w.Write(raw); err != nil {
			return err
		}
	}

	return nil
}
