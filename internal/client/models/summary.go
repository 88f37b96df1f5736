package models

import (
	"fmt"
	"strconv"
)

const (
	unknownModel = "Unknown"
	unknownBrand = "Unknown brand"
	unknownPlate = "N/A"
	notAvailable = "Not available"
	noModality   = "no modality"
)

// ServiceLine is a service as listed in a purchase summary.
type ServiceLine struct {
	ID       int64
	Name     string
	Price    string
	Duration string
}

// PurchaseSummary is a sale reshaped for the history screens.
type PurchaseSummary struct {
	ID         string
	Folio      string
	Model      string
	Brand      string
	Year       string
	Plate      string
	Image      string
	FinalPrice int64
	Subtotal   int64
	AgentPhone string
	AgentEmail string
	Services   []ServiceLine
}

// Summarize reshapes a sale, filling display defaults for anything missing.
// The folio falls back to the sale id zero-padded to six digits.
func Summarize(s Sale) PurchaseSummary {
	out := PurchaseSummary{
		ID:         strconv.FormatInt(s.ID, 10),
		Folio:      s.Folio,
		Model:      unknownModel,
		Brand:      unknownBrand,
		Plate:      unknownPlate,
		FinalPrice: s.FinalPrice,
		AgentPhone: notAvailable,
		AgentEmail: notAvailable,
		Services:   make([]ServiceLine, 0, len(s.Services)),
	}
	if out.Folio == "" {
		out.Folio = fmt.Sprintf("%06d", s.ID)
	}

	if v := s.Vehicle; v != nil {
		out.Model = orDefault(v.Model, unknownModel)
		out.Brand = orDefault(v.Brand.Name, unknownBrand)
		out.Plate = orDefault(v.Plate, unknownPlate)
		out.Image = v.Image
		out.Subtotal = v.Price
		if v.Year > 0 {
			out.Year = strconv.Itoa(v.Year)
		}
	}
	if a := s.Agent; a != nil {
		out.AgentPhone = orDefault(a.Telephone, notAvailable)
		out.AgentEmail = orDefault(a.Email, notAvailable)
	}

	for _, svc := range s.Services {
		out.Services = append(out.Services, ServiceLine{
			ID:       svc.ID,
			Name:     svc.Name,
			Price:    svc.Price,
			Duration: orDefault(svc.Modality, noModality),
		})
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
