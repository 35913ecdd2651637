package geocode

import (
	"context"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"listing-discovery-service/internal/domain"
)

const (
	testForwardURL = "https://api.stadiamaps.example/geocoding/v1/search"
	testReverseURL = "https://api.stadiamaps.example/geocoding/v1/reverse"
)

func newTestClient() *Client {
	cfg := ClientConfig{
		BaseURL: "https://api.stadiamaps.example",
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 2,
			WaitTime:    10 * time.Millisecond,
			MaxWaitTime: 50 * time.Millisecond,
		},
		CB: CBConfig{
			MaxRequests:  5,
			Interval:     60 * time.Second,
			Timeout:      15 * time.Second,
			FailureRatio: 0.6,
		},
	}
	client := New(cfg, zap.NewNop())

	// Activate httpmock for this client's HTTP transport
	httpmock.ActivateNonDefault(client.client.GetClient())

	return client
}

func mockFeatureCollection() featureCollection {
	return featureCollection{
		Features: []feature{
			{
				Geometry: geometry{Coordinates: []float64{2.3522, 48.8566}},
				Properties: properties{
					Label:    "Paris, France",
					Locality: "Paris",
					Region:   "Île-de-France",
					Country:  "France",
				},
			},
			{
				Geometry: geometry{Coordinates: []float64{-95.5555, 33.6609}},
				Properties: properties{
					Label:    "Paris, TX, USA",
					Locality: "Paris",
					Region:   "Texas",
					Country:  "United States",
				},
			},
		},
	}
}

func TestClient_Forward_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testForwardURL,
		httpmock.NewJsonResponderOrPanic(200, mockFeatureCollection()))

	client := newTestClient()
	results, err := client.Forward(context.Background(), "Paris", 2)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2.3522, results[0].Lon)
	assert.Equal(t, 48.8566, results[0].Lat)
	assert.Equal(t, "Paris, France", results[0].Label)
	assert.Equal(t, "Paris, TX, USA", results[1].Label)
}

func TestClient_Forward_NoResults(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testForwardURL,
		httpmock.NewJsonResponderOrPanic(200, featureCollection{}))

	client := newTestClient()
	_, err := client.Forward(context.Background(), "xyzzyplugh", 3)

	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestClient_Forward_ProviderError(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testForwardURL,
		httpmock.NewStringResponder(500, "upstream out of capacity"))

	client := newTestClient()
	_, err := client.Forward(context.Background(), "Paris", 1)

	assert.ErrorIs(t, err, domain.ErrGeocodeFailed)
}

func TestClient_Forward_LabelFallsBackToQuery(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	resp := featureCollection{
		Features: []feature{
			{Geometry: geometry{Coordinates: []float64{10.0, 20.0}}},
		},
	}
	httpmock.RegisterResponder("GET", testForwardURL,
		httpmock.NewJsonResponderOrPanic(200, resp))

	client := newTestClient()
	results, err := client.Forward(context.Background(), "somewhere remote", 1)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "somewhere remote", results[0].Label)
}

func TestClient_Reverse_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testReverseURL,
		httpmock.NewJsonResponderOrPanic(200, mockFeatureCollection()))

	client := newTestClient()
	result, err := client.Reverse(context.Background(), 2.3522, 48.8566)

	require.NoError(t, err)
	assert.Equal(t, "Paris", result.Location)
	assert.Equal(t, "France", result.Country)
	assert.Equal(t, "Paris, France", result.Label)
}

func TestClient_Reverse_LocationFallback(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	// No locality: location should fall back to the next coarser name
	resp := featureCollection{
		Features: []feature{
			{
				Geometry: geometry{Coordinates: []float64{5.0, 45.0}},
				Properties: properties{
					Label:       "Rural area, France",
					County:      "Isère",
					CountryAbbr: "FR",
				},
			},
		},
	}
	httpmock.RegisterResponder("GET", testReverseURL,
		httpmock.NewJsonResponderOrPanic(200, resp))

	client := newTestClient()
	result, err := client.Reverse(context.Background(), 5.0, 45.0)

	require.NoError(t, err)
	assert.Equal(t, "Isère", result.Location)
	assert.Equal(t, "FR", result.Country)
}

func TestClient_Reverse_NoResults(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testReverseURL,
		httpmock.NewJsonResponderOrPanic(200, featureCollection{}))

	client := newTestClient()
	_, err := client.Reverse(context.Background(), 0.0, -89.9)

	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}
