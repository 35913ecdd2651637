package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"listing-discovery-service/internal/domain"
)

// ListingInput carries the writable fields of a create or update request.
type ListingInput struct {
	Title       string
	Description string
	Price       float64
	Location    string
	Country     string
	Category    string

	// Manual map-picker coordinates. When both are finite and set, they win
	// over geocoding the location text.
	Lon *float64
	Lat *float64

	ImageURL      string
	ImageFilename string
}

// ListingService covers the CRUD, bookmark and review glue around the
// discovery engine.
type ListingService struct {
	repo    domain.ListingRepository
	saved   domain.SavedListingStore
	reviews domain.ReviewRepository
	geo     *GeocodeService
	logger  *zap.Logger
}

// NewListingService creates a new ListingService.
func NewListingService(
	repo domain.ListingRepository,
	saved domain.SavedListingStore,
	reviews domain.ReviewRepository,
	geo *GeocodeService,
	logger *zap.Logger,
) *ListingService {
	return &ListingService{
		repo:    repo,
		saved:   saved,
		reviews: reviews,
		geo:     geo,
		logger:  logger,
	}
}

// Get retrieves a listing and whether the viewer has bookmarked it.
func (s *ListingService) Get(ctx context.Context, id, viewerID string) (*domain.Listing, bool, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	isSaved := false
	if viewerID != "" {
		ids, err := s.saved.SavedIDs(ctx, viewerID)
		if err != nil {
			return nil, false, err
		}
		for _, sid := range ids {
			if sid == id {
				isSaved = true
				break
			}
		}
	}

	return listing, isSaved, nil
}

// Create stores a new listing. Geometry comes from the manual coordinates
// when pinned, otherwise from geocoding "location, country"; a geocoding
// failure aborts the create.
func (s *ListingService) Create(ctx context.Context, ownerID string, in ListingInput) (*domain.Listing, error) {
	listing := domain.NewListing(in.Title, in.Location, in.Country, in.Price)
	listing.Description = in.Description
	listing.OwnerID = ownerID
	listing.ImageURL = in.ImageURL
	listing.ImageFilename = in.ImageFilename

	if c := domain.ResolveCategory(in.Category); c != "" {
		listing.Category = c
	}

	if point, ok := manualPoint(in); ok {
		listing.Geometry = point
	} else {
		point, err := s.geo.Locate(ctx, in.Location, in.Country)
		if err != nil {
			return nil, err
		}
		listing.Geometry = point
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, err
	}

	s.logger.Info("listing created",
		zap.String("id", listing.ID),
		zap.String("category", string(listing.Category)),
	)

	return listing, nil
}

// Update rewrites a listing's fields. Manual coordinates win; otherwise the
// geometry is re-geocoded only when the location text changed.
func (s *ListingService) Update(ctx context.Context, id string, in ListingInput) (*domain.Listing, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	locationChanged := (in.Location != "" && in.Location != existing.Location) ||
		(in.Country != "" && in.Country != existing.Country)

	existing.Title = in.Title
	existing.Description = in.Description
	existing.Price = in.Price
	if in.Location != "" {
		existing.Location = in.Location
	}
	if in.Country != "" {
		existing.Country = in.Country
	}
	if c := domain.ResolveCategory(in.Category); c != "" {
		existing.Category = c
	}
	if in.ImageURL != "" {
		existing.ImageURL = in.ImageURL
		existing.ImageFilename = in.ImageFilename
	}

	if point, ok := manualPoint(in); ok {
		existing.Geometry = point
	} else if locationChanged {
		point, err := s.geo.Locate(ctx, existing.Location, existing.Country)
		if err != nil {
			return nil, err
		}
		existing.Geometry = point
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// Delete removes a listing together with its reviews and bookmarks.
func (s *ListingService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ToggleSave flips the viewer's bookmark and reports the new state.
func (s *ListingService) ToggleSave(ctx context.Context, viewerID, listingID string) (bool, error) {
	if viewerID == "" {
		return false, domain.ErrUnauthenticated
	}

	// Surface unknown listings as 404 rather than creating orphan rows.
	if _, err := s.repo.GetByID(ctx, listingID); err != nil {
		return false, err
	}

	return s.saved.ToggleSave(ctx, viewerID, listingID)
}

// AddReview stores a review and recomputes the listing's derived rating.
func (s *ListingService) AddReview(ctx context.Context, review *domain.Review) error {
	if _, err := s.repo.GetByID(ctx, review.ListingID); err != nil {
		return err
	}

	return s.reviews.Create(ctx, review)
}

// DeleteReview removes a review and recomputes the listing's derived rating.
func (s *ListingService) DeleteReview(ctx context.Context, listingID, reviewID string) error {
	return s.reviews.Delete(ctx, listingID, reviewID)
}

// manualPoint extracts a usable map-picker coordinate pair, skipping the
// (0,0) sentinel.
func manualPoint(in ListingInput) (domain.GeoPoint, bool) {
	if in.Lon == nil || in.Lat == nil {
		return domain.GeoPoint{}, false
	}
	if math.IsNaN(*in.Lon) || math.IsNaN(*in.Lat) || math.IsInf(*in.Lon, 0) || math.IsInf(*in.Lat, 0) {
		return domain.GeoPoint{}, false
	}

	point := domain.GeoPoint{Lon: *in.Lon, Lat: *in.Lat}
	if point.IsZero() {
		return domain.GeoPoint{}, false
	}

	return point, true
}
