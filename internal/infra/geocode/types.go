package geocode

import "listing-discovery-service/internal/domain"

// featureCollection is the GeoJSON response returned by the Stadia Maps
// geocoding endpoints.
type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Geometry   geometry   `json:"geometry"`
	Properties properties `json:"properties"`
}

type geometry struct {
	// Coordinates are [lon, lat].
	Coordinates []float64 `json:"coordinates"`
}

type properties struct {
	Label         string `json:"label"`
	Locality      string `json:"locality"`
	County        string `json:"county"`
	Region        string `json:"region"`
	Neighbourhood string `json:"neighbourhood"`
	Country       string `json:"country"`
	CountryAbbr   string `json:"country_a"`
}

// toResult converts a forward-geocoding feature, falling back to the query
// text when the provider supplies no label.
func (f feature) toResult(fallbackLabel string) domain.GeocodeResult {
	label := f.Properties.Label
	if label == "" {
		label = fallbackLabel
	}

	r := domain.GeocodeResult{Label: label}
	if len(f.Geometry.Coordinates) >= 2 {
		r.Lon = f.Geometry.Coordinates[0]
		r.Lat = f.Geometry.Coordinates[1]
	}

	return r
}

// toReverse derives display text fields from a reverse-geocoding feature.
// The location falls back through progressively coarser place names.
func (f feature) toReverse() *domain.ReverseResult {
	p := f.Properties

	location := firstNonEmpty(p.Locality, p.County, p.Region, p.Neighbourhood, p.Label)
	country := firstNonEmpty(p.Country, p.CountryAbbr)

	return &domain.ReverseResult{
		Location: location,
		Country:  country,
		Label:    p.Label,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
