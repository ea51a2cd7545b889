package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jtholloran/runeforge/internal/catalog"
)

// CatalogRepository loads catalog content into immutable snapshots. The
// mechanic-id mapping stays file-based rules configuration and is passed in
// at snapshot time.
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a CatalogRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Snapshot loads all parts, properties, and progression rows once and
// indexes them into a catalog.Snapshot.
//
// Postcondition: Returns an indexed snapshot reflecting one consistent read
// of the catalog tables, or a non-nil error.
func (r *CatalogRepository) Snapshot(ctx context.Context, mechanics *catalog.MechanicMap) (*catalog.Snapshot, error) {
	parts, err := r.loadParts(ctx)
	if err != nil {
		return nil, err
	}
	properties, err := r.loadProperties(ctx)
	if err != nil {
		return nil, err
	}
	progression, err := r.loadProgression(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewSnapshot(parts, properties, progression, mechanics)
}

func (r *CatalogRepository) loadParts(ctx context.Context) ([]*catalog.Part, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, category, kind, energy, training_points,
		       mechanic, percentage, duration_scaled
		FROM parts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying parts: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*catalog.Part)
	parts := make([]*catalog.Part, 0)
	for rows.Next() {
		var p catalog.Part
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Category, &p.Kind, &p.Energy, &p.TrainingPoints,
			&p.Mechanic, &p.Percentage, &p.DurationScaled,
		); err != nil {
			return nil, fmt.Errorf("scanning part row: %w", err)
		}
		byID[p.ID] = &p
		parts = append(parts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating part rows: %w", err)
	}

	optRows, err := r.db.Query(ctx, `
		SELECT part_id, slot, description, energy, training_points
		FROM part_options ORDER BY part_id, slot`)
	if err != nil {
		return nil, fmt.Errorf("querying part options: %w", err)
	}
	defer optRows.Close()

	for optRows.Next() {
		var partID string
		var slot int
		var opt catalog.Option
		if err := optRows.Scan(&partID, &slot, &opt.Description, &opt.Energy, &opt.TrainingPoints); err != nil {
			return nil, fmt.Errorf("scanning part option row: %w", err)
		}
		p, ok := byID[partID]
		if !ok {
			return nil, fmt.Errorf("part option references unknown part %q", partID)
		}
		if slot < 0 || slot >= len(p.Options) {
			return nil, fmt.Errorf("part %q option slot %d out of range", partID, slot)
		}
		p.Options[slot] = opt
	}
	return parts, optRows.Err()
}

func (r *CatalogRepository) loadProperties(ctx context.Context) ([]*catalog.Property, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, kind, item_points, training_points, currency_factor,
		       option_description, option_item_points, option_training_points, option_currency_factor
		FROM properties ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying properties: %w", err)
	}
	defer rows.Close()

	properties := make([]*catalog.Property, 0)
	for rows.Next() {
		var p catalog.Property
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Kind, &p.ItemPoints, &p.TrainingPoints, &p.CurrencyFactor,
			&p.Option.Description, &p.Option.ItemPoints, &p.Option.TrainingPoints, &p.Option.CurrencyFactor,
		); err != nil {
			return nil, fmt.Errorf("scanning property row: %w", err)
		}
		properties = append(properties, &p)
	}
	return properties, rows.Err()
}

func (r *CatalogRepository) loadProgression(ctx context.Context) (map[catalog.Archetype][]*catalog.ProgressionRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT archetype, level, proficiency_points, armament_proficiency_cap, feat_points, bonus_feats
		FROM progression_rows ORDER BY archetype, level`)
	if err != nil {
		return nil, fmt.Errorf("querying progression rows: %w", err)
	}
	defer rows.Close()

	tables := make(map[catalog.Archetype][]*catalog.ProgressionRow)
	for rows.Next() {
		var arch catalog.Archetype
		var row catalog.ProgressionRow
		if err := rows.Scan(
			&arch, &row.Level, &row.ProficiencyPoints, &row.ArmamentProficiencyCap,
			&row.FeatPoints, &row.BonusFeats,
		); err != nil {
			return nil, fmt.Errorf("scanning progression row: %w", err)
		}
		tables[arch] = append(tables[arch], &row)
	}
	return tables, rows.Err()
}

// ImportParts upserts parts and their option slots inside one transaction.
//
// Precondition: every part must have a non-empty ID.
// Postcondition: All parts are persisted or none are.
func (r *CatalogRepository) ImportParts(ctx context.Context, parts []*catalog.Part) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range parts {
		if _, err := tx.Exec(ctx, `
			INSERT INTO parts (id, name, category, kind, energy, training_points,
			                   mechanic, percentage, duration_scaled)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name, category = EXCLUDED.category,
				kind = EXCLUDED.kind, energy = EXCLUDED.energy,
				training_points = EXCLUDED.training_points,
				mechanic = EXCLUDED.mechanic, percentage = EXCLUDED.percentage,
				duration_scaled = EXCLUDED.duration_scaled`,
			p.ID, p.Name, p.Category, p.Kind, p.Energy, p.TrainingPoints,
			p.Mechanic, p.Percentage, p.DurationScaled,
		); err != nil {
			return fmt.Errorf("upserting part %q: %w", p.ID, err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM part_options WHERE part_id = $1`, p.ID); err != nil {
			return fmt.Errorf("clearing options for part %q: %w", p.ID, err)
		}
		for slot, opt := range p.Options {
			if !opt.HasContent() {
				continue
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO part_options (part_id, slot, description, energy, training_points)
				VALUES ($1,$2,$3,$4,$5)`,
				p.ID, slot, opt.Description, opt.Energy, opt.TrainingPoints,
			); err != nil {
				return fmt.Errorf("inserting option %d for part %q: %w", slot, p.ID, err)
			}
		}
	}
	return tx.Commit(ctx)
}

// ImportProperties upserts properties inside one transaction.
//
// Postcondition: All properties are persisted or none are.
func (r *CatalogRepository) ImportProperties(ctx context.Context, properties []*catalog.Property) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range properties {
		if _, err := tx.Exec(ctx, `
			INSERT INTO properties (id, name, kind, item_points, training_points, currency_factor,
			                        option_description, option_item_points, option_training_points, option_currency_factor)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name, kind = EXCLUDED.kind,
				item_points = EXCLUDED.item_points,
				training_points = EXCLUDED.training_points,
				currency_factor = EXCLUDED.currency_factor,
				option_description = EXCLUDED.option_description,
				option_item_points = EXCLUDED.option_item_points,
				option_training_points = EXCLUDED.option_training_points,
				option_currency_factor = EXCLUDED.option_currency_factor`,
			p.ID, p.Name, p.Kind, p.ItemPoints, p.TrainingPoints, p.CurrencyFactor,
			p.Option.Description, p.Option.ItemPoints, p.Option.TrainingPoints, p.Option.CurrencyFactor,
		); err != nil {
			return fmt.Errorf("upserting property %q: %w", p.ID, err)
		}
	}
	return tx.Commit(ctx)
}

// ImportProgression upserts progression rows inside one transaction.
//
// Postcondition: All rows are persisted or none are.
func (r *CatalogRepository) ImportProgression(ctx context.Context, tables map[catalog.Archetype][]*catalog.ProgressionRow) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for arch, rows := range tables {
		for _, row := range rows {
			if _, err := tx.Exec(ctx, `
				INSERT INTO progression_rows (archetype, level, proficiency_points,
				                              armament_proficiency_cap, feat_points, bonus_feats)
				VALUES ($1,$2,$3,$4,$5,$6)
				ON CONFLICT (archetype, level) DO UPDATE SET
					proficiency_points = EXCLUDED.proficiency_points,
					armament_proficiency_cap = EXCLUDED.armament_proficiency_cap,
					feat_points = EXCLUDED.feat_points,
					bonus_feats = EXCLUDED.bonus_feats`,
				arch, row.Level, row.ProficiencyPoints, row.ArmamentProficiencyCap,
				row.FeatPoints, row.BonusFeats,
			); err != nil {
				return fmt.Errorf("upserting progression row %q/%d: %w", arch, row.Level, err)
			}
		}
	}
	return tx.Commit(ctx)
}
