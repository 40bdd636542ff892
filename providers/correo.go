package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const correoBaseURL = "https://correo-argentino1.p.rapidapi.com"

// CorreoProvider implements RateProvider against the Correo Argentino
// rate API exposed on RapidAPI.
type CorreoProvider struct {
	host       string
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewCorreoProvider creates a new CorreoProvider.
func NewCorreoProvider(host, apiKey string) *CorreoProvider {
	return &CorreoProvider{
		host:    host,
		apiKey:  apiKey,
		baseURL: correoBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ---- Correo API request/response structs ----

type correoVolumetricRequest struct {
	Largo float64 `json:"largo"`
	Ancho float64 `json:"ancho"`
	Alto  float64 `json:"alto"`
}

type correoVolumetricResponse struct {
	Peso *float64 `json:"peso"`
}

type correoPriceRequest struct {
	CPOrigen         string  `json:"cpOrigen"`
	CPDestino        string  `json:"cpDestino"`
	ProvinciaOrigen  string  `json:"provinciaOrigen"`
	ProvinciaDestino string  `json:"provinciaDestino"`
	Peso             float64 `json:"peso"`
}

type correoPriceResponse struct {
	PaqarClasico *struct {
		ADomicilio *float64 `json:"aDomicilio"`
		ASucursal  *float64 `json:"aSucursal"`
	} `json:"paqarClasico"`
}

// ---- RateProvider implementation ----

// VolumetricWeight calls /calcularPesoVol with parcel dimensions in cm.
func (p *CorreoProvider) VolumetricWeight(ctx context.Context, length, width, height float64) (float64, error) {
	reqBody := correoVolumetricRequest{Largo: length, Ancho: width, Alto: height}

	var resp correoVolumetricResponse
	if err := p.doRequest(ctx, "/calcularPesoVol", reqBody, &resp); err != nil {
		return 0, fmt.Errorf("correo VolumetricWeight: %w", err)
	}
	if resp.Peso == nil {
		return 0, fmt.Errorf("correo VolumetricWeight: response missing peso field")
	}
	return *resp.Peso, nil
}

// DeliveryCost calls /calcularPrecio and returns the to-address cost of the
// classic parcel tier.
func (p *CorreoProvider) DeliveryCost(ctx context.Context, req QuoteRequest) (float64, error) {
	reqBody := correoPriceRequest{
		CPOrigen:         req.OriginPostalCode,
		CPDestino:        req.DestinationPostalCode,
		ProvinciaOrigen:  req.OriginProvince,
		ProvinciaDestino: req.DestinationProvince,
		Peso:             req.WeightKg,
	}

	var resp correoPriceResponse
	if err := p.doRequest(ctx, "/calcularPrecio", reqBody, &resp); err != nil {
		return 0, fmt.Errorf("correo DeliveryCost: %w", err)
	}
	if resp.PaqarClasico == nil || resp.PaqarClasico.ADomicilio == nil {
		return 0, fmt.Errorf("correo DeliveryCost: response missing paqarClasico.aDomicilio field")
	}
	return *resp.PaqarClasico.ADomicilio, nil
}

// ---- HTTP helper ----

func (p *CorreoProvider) doRequest(ctx context.Context, path string, body interface{}, out interface{}) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-rapidapi-host", p.host)
	req.Header.Set("x-rapidapi-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("correo API error (status %d): %s", resp.StatusCode, string(respBytes))
	}

	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
