package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Sale is a recorded purchase as returned by the sales endpoints.
type Sale struct {
	ID         int64
	Folio      string
	Vehicle    *Vehicle
	Agent      *Agent
	Services   []Service
	FinalPrice int64
	Date       string
}

func (s *Sale) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	out := Sale{
		ID:         f.int("id"),
		Folio:      f.str("folio"),
		FinalPrice: f.int("precioFinal", "finalPrice"),
		Date:       f.str("date", "fecha"),
	}
	if raw, ok := f.raw("vehiculo", "vehicle"); ok {
		var v Vehicle
		if err := json.Unmarshal(raw, &v); err == nil {
			out.Vehicle = &v
		}
	}
	if a, ok := f.object("agente", "agent"); ok {
		agent := agentFrom(a)
		out.Agent = &agent
	}
	if raw, ok := f.raw("ventaServicios", "services"); ok {
		var items []fields
		if err := json.Unmarshal(raw, &items); err == nil {
			for _, it := range items {
				if svc, ok := it.object("servicio", "service"); ok {
					out.Services = append(out.Services, serviceFrom(svc))
				}
			}
		}
	}
	*s = out
	return nil
}

// DecodeSales accepts either a JSON array of sales or a single sale object.
// An empty body or null yields no sales.
func DecodeSales(data []byte) ([]Sale, error) {
	data = bytes.TrimSpace(data)
	if isNull(data) {
		return []Sale{}, nil
	}
	if data[0] == '[' {
		var out []Sale
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode sales: %w", err)
		}
		if out == nil {
			out = []Sale{}
		}
		return out, nil
	}
	var one Sale
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("decode sale: %w", err)
	}
	return []Sale{one}, nil
}

// Ref is the {"id": n} shape the backend uses for relations.
type Ref struct {
	ID int64 `json:"id"`
}

type SaleServiceRef struct {
	Service Ref `json:"servicio"`
}

// SaleRequest is the body of a sale submission. A nil Agent is sent as null.
type SaleRequest struct {
	Customer   Ref              `json:"cliente"`
	Vehicle    Ref              `json:"vehiculo"`
	Agent      *Ref             `json:"agente"`
	Services   []SaleServiceRef `json:"ventaServicios"`
	FinalPrice int64            `json:"precioFinal"`
	Date       string           `json:"date"`
}

// NewSaleRequest builds a sale body. agentID 0 means no agent.
func NewSaleRequest(customerID, vehicleID, agentID int64, services []Service, total int64, at time.Time) SaleRequest {
	req := SaleRequest{
		Customer:   Ref{ID: customerID},
		Vehicle:    Ref{ID: vehicleID},
		Services:   make([]SaleServiceRef, 0, len(services)),
		FinalPrice: total,
		Date:       at.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	if agentID != 0 {
		req.Agent = &Ref{ID: agentID}
	}
	for _, s := range services {
		req.Services = append(req.Services, SaleServiceRef{Service: Ref{ID: s.ID}})
	}
	return req
}

type LoginResult struct {
	Token              string `json:"token"`
	MustChangePassword bool   `json:"mustChangePassword"`
}

// Registration is the body of an account sign-up.
type Registration struct {
	Name      string `json:"name"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Password  string `json:"password"`
}
