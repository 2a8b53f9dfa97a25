package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY,
		full_name VARCHAR(255),
		email VARCHAR(255),
		phone VARCHAR(32),
		role VARCHAR(16)
	);`,
	`CREATE TABLE IF NOT EXISTS missions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client_id UUID NOT NULL REFERENCES profiles(id),
		driver_id UUID REFERENCES profiles(id) ON DELETE SET NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'en_attente',
		pickup_address TEXT NOT NULL,
		pickup_contact VARCHAR(255),
		delivery_address TEXT NOT NULL,
		delivery_contact VARCHAR(255),
		vehicle_brand VARCHAR(64),
		vehicle_model VARCHAR(64),
		vehicle_plate VARCHAR(32),
		vehicle_category VARCHAR(32) NOT NULL,
		distance_km NUMERIC(8,2) NOT NULL DEFAULT 0,
		price_ht DECIMAL(12,2) NOT NULL DEFAULT 0,
		price_ttc DECIMAL(12,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_missions_client_id ON missions (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_missions_driver_id ON missions (driver_id);`,
	`CREATE INDEX IF NOT EXISTS idx_missions_status ON missions (status);`,
	`CREATE INDEX IF NOT EXISTS idx_missions_created_at ON missions (created_at);`,
	`CREATE TABLE IF NOT EXISTS price_grid_entries (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		vehicle_category VARCHAR(32) NOT NULL,
		tranche_id VARCHAR(16) NOT NULL,
		price_ht DECIMAL(12,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_grid_cell
		ON price_grid_entries (vehicle_category, tranche_id);`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		mission_id UUID NOT NULL REFERENCES missions(id),
		client_id UUID NOT NULL REFERENCES profiles(id),
		number VARCHAR(32) NOT NULL,
		price_ht DECIMAL(12,2) NOT NULL,
		price_ttc DECIMAL(12,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_invoices_mission_id ON invoices (mission_id);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_invoices_number ON invoices (number);`,
	`CREATE TABLE IF NOT EXISTS mission_status_log (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		mission_id UUID NOT NULL REFERENCES missions(id) ON DELETE CASCADE,
		old_status VARCHAR(32),
		new_status VARCHAR(32) NOT NULL,
		note TEXT,
		changed_by UUID REFERENCES profiles(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_mission_status_log_mission_id ON mission_status_log (mission_id);`,
	// One-time cleanup of accented legacy statuses; the application also
	// normalizes on read, so rows written by older clients stay harmless.
	`UPDATE missions SET status = 'confirme' WHERE status IN ('confirmé', 'confirmée');`,
	`UPDATE missions SET status = 'livre' WHERE status = 'livré';`,
	`UPDATE missions SET status = 'termine' WHERE status = 'terminé';`,
	`UPDATE missions SET status = 'annule' WHERE status IN ('annulé', 'annulée');`,
	`CREATE OR REPLACE FUNCTION set_row_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_missions_updated_at') THEN
			CREATE TRIGGER trg_missions_updated_at
				BEFORE UPDATE ON missions
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_price_grid_entries_updated_at') THEN
			CREATE TRIGGER trg_price_grid_entries_updated_at
				BEFORE UPDATE ON price_grid_entries
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
