// Package registry serves the reference data joined onto rearing units at
// the start of a batch run: house masters (construction type, usable area)
// and sector masters (geographic zone). The data changes rarely, so a run
// loads one snapshot up front and resolves against it in memory.
package registry

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// HouseMaster is one row of the house reference table.
type HouseMaster struct {
	SectorCode       string  `db:"sector_code"`
	House            int     `db:"house_number"`
	ConstructionType string  `db:"construction_type"`
	UsableAreaM2     float64 `db:"usable_area_m2"`
}

// SectorMaster is one row of the sector reference table.
type SectorMaster struct {
	SectorCode     string `db:"sector_code"`
	SectorName     string `db:"sector_name"`
	GeographicZone string `db:"geographic_zone"`
}

type houseKey struct {
	sector string
	house  int
}

// Snapshot is an immutable in-memory view of the registry for one run.
type Snapshot struct {
	houses  map[houseKey]HouseMaster
	sectors map[string]SectorMaster
}

// NewSnapshot indexes master rows for lookup.
func NewSnapshot(houses []HouseMaster, sectors []SectorMaster) *Snapshot {
	s := &Snapshot{
		houses:  make(map[houseKey]HouseMaster, len(houses)),
		sectors: make(map[string]SectorMaster, len(sectors)),
	}
	for _, h := range houses {
		s.houses[houseKey{sector: h.SectorCode, house: h.House}] = h
	}
	for _, sec := range sectors {
		s.sectors[sec.SectorCode] = sec
	}
	return s
}

// House returns the master row for a (sector, house) pair.
func (s *Snapshot) House(sectorCode string, house int) (HouseMaster, bool) {
	h, ok := s.houses[houseKey{sector: sectorCode, house: house}]
	return h, ok
}

// Sector returns the master row for a sector code.
func (s *Snapshot) Sector(sectorCode string) (SectorMaster, bool) {
	sec, ok := s.sectors[sectorCode]
	return sec, ok
}

// Loader produces the registry snapshot for a run.
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// PostgresLoader reads the master tables over sqlx.
type PostgresLoader struct {
	db *sqlx.DB
}

func NewPostgresLoader(db *sqlx.DB) *PostgresLoader {
	return &PostgresLoader{db: db}
}

func (l *PostgresLoader) Load(ctx context.Context) (*Snapshot, error) {
	var houses []HouseMaster
	query := `SELECT sector_code, house_number, construction_type, usable_area_m2
		FROM house_masters`
	if err := l.db.SelectContext(ctx, &houses, query); err != nil {
		return nil, fmt.Errorf("loading house masters: %w", err)
	}

	var sectors []SectorMaster
	query = `SELECT sector_code, sector_name, geographic_zone
		FROM sector_masters`
	if err := l.db.SelectContext(ctx, &sectors, query); err != nil {
		return nil, fmt.Errorf("loading sector masters: %w", err)
	}

	return NewSnapshot(houses, sectors), nil
}

// StaticLoader serves a fixed snapshot. Used in tests and in runs without a
// registry database.
type StaticLoader struct {
	Snapshot *Snapshot
}

func (l *StaticLoader) Load(context.Context) (*Snapshot, error) {
	if l.Snapshot == nil {
		return NewSnapshot(nil, nil), nil
	}
	return l.Snapshot, nil
}
