package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createCoreTables creates the listings, reviews and saved_listings tables
// plus the compound index serving filtered, sorted listing pages.
func createCoreTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_core_tables",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS listings (
					id             uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					title          varchar(200) NOT NULL,
					description    text,
					price          decimal(12,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
					location       varchar(200) NOT NULL DEFAULT '',
					country        varchar(100) NOT NULL DEFAULT '',
					category       varchar(50) NOT NULL DEFAULT 'Trending',
					longitude      double precision NOT NULL DEFAULT 0,
					latitude       double precision NOT NULL DEFAULT 0,
					rating_avg     decimal(3,2) NOT NULL DEFAULT 0,
					rating_count   integer NOT NULL DEFAULT 0,
					image_url      varchar(500),
					image_filename varchar(200),
					owner_id       varchar(100),
					created_at     timestamptz NOT NULL DEFAULT now(),
					updated_at     timestamptz NOT NULL DEFAULT now()
				)
			`).Error; err != nil {
				return err
			}

			// Serves category/price filtered pages with the id tiebreaker.
			if err := tx.Exec(`
				CREATE INDEX IF NOT EXISTS idx_listings_category_price_id
				ON listings (category, price, id DESC)
			`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				CREATE INDEX IF NOT EXISTS idx_listings_owner
				ON listings (owner_id)
			`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS reviews (
					id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					listing_id uuid NOT NULL REFERENCES listings (id) ON DELETE CASCADE,
					author_id  varchar(100) NOT NULL,
					rating     integer NOT NULL CHECK (rating BETWEEN 1 AND 5),
					comment    text,
					created_at timestamptz NOT NULL DEFAULT now()
				)
			`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				CREATE INDEX IF NOT EXISTS idx_reviews_listing
				ON reviews (listing_id)
			`).Error; err != nil {
				return err
			}

			return tx.Exec(`
				CREATE TABLE IF NOT EXISTS saved_listings (
					user_id    varchar(100) NOT NULL,
					listing_id uuid NOT NULL REFERENCES listings (id) ON DELETE CASCADE,
					created_at timestamptz NOT NULL DEFAULT now(),
					PRIMARY KEY (user_id, listing_id)
				)
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`
				DROP TABLE IF EXISTS saved_listings;
				DROP TABLE IF EXISTS reviews;
				DROP TABLE IF EXISTS listings;
			`).Error
		},
	}
}
