package models

import "strings"

type Agent struct {
	ID        int64
	Name      string
	LastName  string
	Surname   string
	Email     string
	Telephone string
}

func (a *Agent) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*a = agentFrom(f)
	return nil
}

func agentFrom(f fields) Agent {
	return Agent{
		ID:        f.int("id"),
		Name:      f.str("name", "nombre"),
		LastName:  f.str("lastname", "lastName", "apellido"),
		Surname:   f.str("surname", "segundoApellido"),
		Email:     f.str("email", "correo"),
		Telephone: f.str("telephone", "telefono"),
	}
}

// FullName joins the non-empty name parts.
func (a Agent) FullName() string {
	return joinNonEmpty(a.Name, a.LastName, a.Surname)
}

type Customer struct {
	ID        int64
	Name      string
	LastName  string
	Email     string
	Telephone string
	Agent     *Agent
}

func (c *Customer) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	out := Customer{
		ID:        f.int("id"),
		Name:      f.str("name", "nombre"),
		LastName:  f.str("lastname", "lastName", "apellido"),
		Email:     f.str("email", "correo"),
		Telephone: f.str("telephone", "telefono"),
	}
	if a, ok := f.object("agente", "agent"); ok {
		agent := agentFrom(a)
		out.Agent = &agent
	}
	*c = out
	return nil
}

func (c Customer) FullName() string {
	return joinNonEmpty(c.Name, c.LastName)
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
