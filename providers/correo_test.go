package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestProvider(handler http.HandlerFunc) (*CorreoProvider, *httptest.Server) {
	srv := httptest.NewServer(handler)
	p := NewCorreoProvider("correo-argentino1.p.rapidapi.com", "test-key")
	p.baseURL = srv.URL
	return p, srv
}

func TestVolumetricWeight_Success(t *testing.T) {
	var gotBody map[string]float64
	p, srv := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calcularPesoVol", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-rapidapi-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"peso": 4.2}`)) //nolint:errcheck
	})
	defer srv.Close()

	weight, err := p.VolumetricWeight(context.Background(), 40, 30, 20)
	assert.NoError(t, err)
	assert.InDelta(t, 4.2, weight, 1e-9)
	assert.InDelta(t, 40.0, gotBody["largo"], 1e-9)
	assert.InDelta(t, 30.0, gotBody["ancho"], 1e-9)
	assert.InDelta(t, 20.0, gotBody["alto"], 1e-9)
}

func TestVolumetricWeight_MissingField(t *testing.T) {
	p, srv := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`)) //nolint:errcheck
	})
	defer srv.Close()

	_, err := p.VolumetricWeight(context.Background(), 40, 30, 20)
	assert.Error(t, err)
}

func TestDeliveryCost_Success(t *testing.T) {
	p, srv := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calcularPrecio", r.URL.Path)
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1007", body["cpOrigen"])
		w.Write([]byte(`{"paqarClasico": {"aDomicilio": 17.35, "aSucursal": 12.00}}`)) //nolint:errcheck
	})
	defer srv.Close()

	cost, err := p.DeliveryCost(context.Background(), QuoteRequest{
		OriginPostalCode:      "1007",
		DestinationPostalCode: "5000",
		OriginProvince:        "AR-C",
		DestinationProvince:   "AR-X",
		WeightKg:              4.0,
	})
	assert.NoError(t, err)
	assert.InDelta(t, 17.35, cost, 1e-9)
}

func TestDeliveryCost_MissingTier(t *testing.T) {
	p, srv := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"paqarClasico": {}}`)) //nolint:errcheck
	})
	defer srv.Close()

	_, err := p.DeliveryCost(context.Background(), QuoteRequest{WeightKg: 1.0})
	assert.Error(t, err)
}

func TestDeliveryCost_UpstreamError(t *testing.T) {
	p, srv := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message": "rate limited"}`)) //nolint:errcheck
	})
	defer srv.Close()

	_, err := p.DeliveryCost(context.Background(), QuoteRequest{WeightKg: 1.0})
	assert.Error(t, err)
}
