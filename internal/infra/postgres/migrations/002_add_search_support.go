package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// addSearchSupport adds the weighted full-text index and the geometry index.
//
// Search vector weights:
//   - title:    A (highest)
//   - location: B
//   - country:  C
//   - category: C
//
// Ranking passes the weight vector {D,C,B,A} = {0.1, 0.4, 0.6, 1.0} to
// ts_rank, which makes the effective title/location/country/category ratio
// 5:3:2:2. The 'simple' configuration is used so place names are not
// stemmed away.
func addSearchSupport() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_add_search_support",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				ALTER TABLE listings
				ADD COLUMN IF NOT EXISTS search_vector tsvector
			`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				CREATE INDEX IF NOT EXISTS idx_listings_search_vector
				ON listings USING GIN (search_vector)
			`).Error; err != nil {
				return err
			}

			// Geometry index for map queries. Plain Postgres point GiST,
			// no PostGIS dependency.
			if err := tx.Exec(`
				CREATE INDEX IF NOT EXISTS idx_listings_geometry
				ON listings USING GIST (point(longitude, latitude))
			`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				CREATE OR REPLACE FUNCTION listings_search_vector_update()
				RETURNS trigger AS $$
				BEGIN
					NEW.search_vector :=
						setweight(to_tsvector('simple', coalesce(NEW.title, '')), 'A') ||
						setweight(to_tsvector('simple', coalesce(NEW.location, '')), 'B') ||
						setweight(to_tsvector('simple', coalesce(NEW.country, '')), 'C') ||
						setweight(to_tsvector('simple', coalesce(NEW.category, '')), 'C');
					RETURN NEW;
				END;
				$$ LANGUAGE plpgsql
			`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				DROP TRIGGER IF EXISTS trg_listings_search_vector ON listings;
				CREATE TRIGGER trg_listings_search_vector
				BEFORE INSERT OR UPDATE OF title, location, country, category
				ON listings
				FOR EACH ROW
				EXECUTE FUNCTION listings_search_vector_update()
			`).Error; err != nil {
				return err
			}

			// Populate existing rows.
			return tx.Exec(`
				UPDATE listings SET search_vector =
					setweight(to_tsvector('simple', coalesce(title, '')), 'A') ||
					setweight(to_tsvector('simple', coalesce(location, '')), 'B') ||
					setweight(to_tsvector('simple', coalesce(country, '')), 'C') ||
					setweight(to_tsvector('simple', coalesce(category, '')), 'C')
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`
				DROP TRIGGER IF EXISTS trg_listings_search_vector ON listings;
				DROP FUNCTION IF EXISTS listings_search_vector_update();
				DROP INDEX IF EXISTS idx_listings_geometry;
				DROP INDEX IF EXISTS idx_listings_search_vector;
				ALTER TABLE listings DROP COLUMN IF EXISTS search_vector;
			`).Error
		},
	}
}
