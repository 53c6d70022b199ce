package storage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"underkingdom-server/internal/domain"
)

func sampleEntities() []*domain.Entity {
	hero := &domain.Entity{
		ID: "hero_1", Kind: domain.KindPlayer, Name: "Герой",
		Pos: domain.Position{X: 3, Y: 4}, Blocking: true,
		Faction: domain.FactionPlayer,
		Stats:   domain.NewStats(12, 10, 14, 10, 10, 10),
	}
	gob := &domain.Entity{
		ID: "gob_1", Kind: domain.KindEnemy, Name: "Гоблин",
		Pos: domain.Position{X: 8, Y: 8}, Blocking: true,
		Faction: domain.FactionMonsters,
		Stats:   domain.NewStats(8, 12, 8, 6, 8, 6),
		AI:      &domain.AIComponent{Mode: domain.BehaviorAggressive, AggroRadius: 8},
	}
	gob.Effects = []domain.ActiveEffect{{
		ID: "poisoned", Kind: domain.EffectDot, Duration: 3,
		Dot: &domain.DotPayload{PerTurn: 2, Kind: domain.DamagePoison},
	}}
	return []*domain.Entity{hero, gob}
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	svc := NewSnapshotService(t.TempDir())

	snap := Capture(12345, 77, sampleEntities())
	path, err := svc.Save(snap)
	require.NoError(t, err)

	loaded, err := svc.Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(12345), loaded.Seed)
	assert.Equal(t, 77, loaded.Tick)
	require.Len(t, loaded.Entities, 2)

	restored := loaded.Restore()
	require.Len(t, restored, 2)

	hero := restored[0]
	assert.Equal(t, "hero_1", hero.ID)
	assert.Equal(t, domain.Position{X: 3, Y: 4}, hero.Pos)
	assert.Equal(t, 80, hero.Stats.MaxHP)

	gob := restored[1]
	require.NotNil(t, gob.AI)
	assert.Equal(t, domain.BehaviorAggressive, gob.AI.Mode)
	require.Len(t, gob.Effects, 1)
	assert.Equal(t, domain.EffectDot, gob.Effects[0].Kind)
	assert.Equal(t, 2, gob.Effects[0].Dot.PerTurn)
}

func TestReadRejectsWrongMagic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBinary(&buf, Capture(1, 1, nil)))

	raw := buf.Bytes()
	copy(raw[:4], []byte("XXXX"))

	_, err := readBinary(bytes.NewReader(raw))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid magic")
}

func TestReadRejectsUnsupportedVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBinary(&buf, Capture(1, 1, nil)))

	raw := buf.Bytes()
	raw[4] = 0xFF // поле Version сразу после магии, little-endian

	_, err := readBinary(bytes.NewReader(raw))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported version")
}

func TestReadRejectsTruncatedBody(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBinary(&buf, Capture(1, 1, sampleEntities())))

	raw := buf.Bytes()
	_, err := readBinary(bytes.NewReader(raw[:len(raw)-10]))
	require.Error(t, err)
}
