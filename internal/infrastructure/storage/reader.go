package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"underkingdom-server/internal/domain"
)

func (s *SnapshotService) Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(f)
}

func readBinary(r io.Reader) (*Snapshot, error) {
	var header SaveFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	snap := &Snapshot{
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Tick:      int(header.Tick),
		Entities:  make([]domain.EntityRecord, header.EntityCount),
	}

	for i := 0; i < int(header.EntityCount); i++ {
		var eh EntityHeader
		if err := binary.Read(r, binary.LittleEndian, &eh); err != nil {
			return nil, err
		}

		raw := make([]byte, eh.RecordLen)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &snap.Entities[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entity %d: %w", i, err)
		}
	}

	return snap, nil
}

// Restore восстанавливает сущности снимка в доменные структуры
func (s *Snapshot) Restore() []*domain.Entity {
	out := make([]*domain.Entity, 0, len(s.Entities))
	for i := range s.Entities {
		out = append(out, domain.FromRecord(s.Entities[i]))
	}
	return out
}
