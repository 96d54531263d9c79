package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds constraints AutoMigrate does not manage. Contacts
// must not outlive their owner, so the FK cascades on user deletion.
func MigrateConstraints(db *gorm.DB) error {
	err := db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'fk_contacts_user_cascade'
			) THEN
				ALTER TABLE contacts
				ADD CONSTRAINT fk_contacts_user_cascade
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE;
			END IF;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	// Index for the owner-scoped search endpoints.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_contacts_user_name
		ON contacts (user_id, name);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
