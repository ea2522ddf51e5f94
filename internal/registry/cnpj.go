// Package registry looks up company data in the public CNPJ registry. It is
// used during retailer self-registration to prefill the profile and the
// principal address.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

const defaultBaseURL = "https://publica.cnpj.ws/cnpj/"

var (
	ErrInvalidCNPJ         = errors.New("invalid CNPJ")
	ErrCNPJNotFound        = errors.New("CNPJ not found in the public registry")
	ErrRegistryUnavailable = errors.New("CNPJ registry unavailable")
)

// CompanyInfo is the structured extract of a registry record.
type CompanyInfo struct {
	LegalName  string `json:"legal_name"`
	TradeName  string `json:"trade_name"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Complement string `json:"complement,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*CompanyInfo]
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	settings := gobreaker.Settings{
		Name:    "cnpj-registry",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Business failures (bad/unknown CNPJ) say nothing about the
		// registry's health and must not trip the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrInvalidCNPJ) || errors.Is(err, ErrCNPJNotFound)
		},
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[*CompanyInfo](settings),
	}
}

// Lookup fetches and extracts the registry record for a CNPJ. Non-digit
// characters are stripped before validation.
func (c *Client) Lookup(ctx context.Context, cnpj string) (*CompanyInfo, error) {
	digits := onlyDigits(cnpj)
	if len(digits) != 14 {
		return nil, ErrInvalidCNPJ
	}

	info, err := c.breaker.Execute(func() (*CompanyInfo, error) {
		return c.fetch(ctx, digits)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrRegistryUnavailable
		}
		return nil, err
	}
	return info, nil
}

func (c *Client) fetch(ctx context.Context, cnpj string) (*CompanyInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+cnpj, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegistryUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrCNPJNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: status %d", ErrRegistryUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected registry status %d", resp.StatusCode)
	}

	var payload struct {
		LegalName     string `json:"razao_social"`
		Establishment struct {
			TradeName  string `json:"nome_fantasia"`
			Street     string `json:"logradouro"`
			Number     string `json:"numero"`
			District   string `json:"bairro"`
			PostalCode string `json:"cep"`
			Complement string `json:"complemento"`
			Phone1     string `json:"telefone1"`
			Phone2     string `json:"telefone2"`
			Email      string `json:"email"`
			City       struct {
				Name string `json:"nome"`
			} `json:"cidade"`
			State struct {
				Code string `json:"sigla"`
			} `json:"estado"`
		} `json:"estabelecimento"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode registry response: %w", err)
	}

	est := payload.Establishment
	tradeName := est.TradeName
	if tradeName == "" {
		tradeName = payload.LegalName
	}
	phone := est.Phone1
	if phone == "" {
		phone = est.Phone2
	}

	return &CompanyInfo{
		LegalName:  payload.LegalName,
		TradeName:  tradeName,
		Street:     est.Street,
		Number:     est.Number,
		District:   est.District,
		City:       est.City.Name,
		State:      est.State.Code,
		PostalCode: est.PostalCode,
		Complement: est.Complement,
		Phone:      phone,
		Email:      est.Email,
	}, nil
}

func onlyDigits(s string) string {
	digits := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	return string(digits)
}
