package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Brand struct {
	ID   int64
	Name string
}

func (b *Brand) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*b = brandFrom(f)
	return nil
}

func brandFrom(f fields) Brand {
	return Brand{ID: f.int("id"), Name: f.str("nombre", "name")}
}

// Service is an optional add-on that can be attached to a purchase. Price is
// kept as the display text sent by the backend, e.g. "$500".
type Service struct {
	ID          int64
	Name        string
	Description string
	Price       string
	Modality    string
}

func (s *Service) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*s = serviceFrom(f)
	return nil
}

func serviceFrom(f fields) Service {
	s := Service{
		ID:          f.int("id"),
		Name:        f.str("name", "nombre"),
		Description: f.str("description", "descripcion"),
		Price:       f.str("price", "precio"),
	}
	if m, ok := f.object("modalidad", "modality"); ok {
		s.Modality = m.str("nombre", "name")
	} else {
		s.Modality = f.str("modalidad", "modality")
	}
	return s
}

// Vehicle is a catalog listing. Raw keeps the document exactly as received
// so that a status update can send it back with only the status replaced.
type Vehicle struct {
	ID          int64
	Model       string
	Name        string
	Brand       Brand
	Year        int
	Price       int64
	Color       string
	Plate       string
	Image       string
	Description string
	StatusID    int64
	Agent       *Agent

	Raw json.RawMessage
}

func (v *Vehicle) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	out := Vehicle{
		ID:          f.int("id"),
		Model:       f.str("modelo", "model"),
		Name:        f.str("nombre", "name"),
		Year:        int(f.int("year", "anio")),
		Price:       f.int("precio", "price"),
		Color:       f.str("color"),
		Plate:       f.str("matricula", "placa", "plate"),
		Image:       f.str("imagen", "image"),
		Description: f.str("description", "descripcion"),
		Raw:         append(json.RawMessage(nil), data...),
	}
	if b, ok := f.object("marca", "brand"); ok {
		out.Brand = brandFrom(b)
	}
	if st, ok := f.object("estado", "status"); ok {
		out.StatusID = st.int("id")
	}
	if a, ok := f.object("agente", "agent"); ok {
		agent := agentFrom(a)
		out.Agent = &agent
	}
	*v = out
	return nil
}

// WithStatus returns the vehicle document with its status replaced by
// {"id": status}. Every other field is preserved as received.
func (v Vehicle) WithStatus(status int64) (json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	if len(v.Raw) > 0 {
		if err := json.Unmarshal(v.Raw, &doc); err != nil {
			return nil, fmt.Errorf("vehicle %d: %w", v.ID, err)
		}
	} else {
		doc["id"] = json.RawMessage(fmt.Sprint(v.ID))
	}
	st, err := json.Marshal(map[string]int64{"id": status})
	if err != nil {
		return nil, err
	}
	doc["estado"] = st
	return json.Marshal(doc)
}

// Title is the heading shown for a listing.
func (v Vehicle) Title() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{v.Brand.Name, v.Model} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if v.Year > 0 {
		parts = append(parts, fmt.Sprint(v.Year))
	}
	if len(parts) == 0 {
		return v.Name
	}
	return strings.Join(parts, " ")
}

// AgentID returns the assigned agent's id, or 0 when none is assigned.
func (v Vehicle) AgentID() int64 {
	if v.Agent == nil {
		return 0
	}
	return v.Agent.ID
}
