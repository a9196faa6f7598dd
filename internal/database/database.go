package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // registers the CGO-free "sqlite" database/sql driver

	"hotelstay/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// noOverlapConstraint is the persistence-boundary guard against double
// booking: Postgres rejects any insert whose [check_in, check_out) range
// intersects an active booking for the same room, regardless of what the
// application-level check saw.
const noOverlapConstraint = `
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
		ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (
				room_id WITH =,
				daterange(check_in::date, check_out::date, '[)') WITH &&
			)
			WHERE (status IN ('pending', 'confirmed'));
	END IF;
END $$;
`

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Room{},
		&domain.Booking{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
			return err
		}
		if err := db.Exec(noOverlapConstraint).Error; err != nil {
			return err
		}
	}

	return nil
}
