package fakeapi

type ref struct {
	ID int64 `json:"id"`
}

type brand struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

type agent struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
}

type vehicle struct {
	ID          int64  `json:"id"`
	Model       string `json:"modelo"`
	Name        string `json:"nombre,omitempty"`
	Year        int    `json:"year"`
	Price       int64  `json:"precio"`
	Color       string `json:"color"`
	Plate       string `json:"matricula"`
	Image       string `json:"imagen,omitempty"`
	Description string `json:"description,omitempty"`
	Brand       brand  `json:"marca"`
	Status      ref    `json:"estado"`
	Agent       *agent `json:"agente,omitempty"`
}

type modality struct {
	Name string `json:"nombre"`
}

type service struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Modality    *modality `json:"modalidad,omitempty"`
}

type customer struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Agent     *agent `json:"agente"`
}

type saleService struct {
	Service service `json:"servicio"`
}

type sale struct {
	ID         int64         `json:"id"`
	Folio      string        `json:"folio"`
	Customer   ref           `json:"cliente"`
	Vehicle    vehicle       `json:"vehiculo"`
	Agent      *agent        `json:"agente"`
	Services   []saleService `json:"ventaServicios"`
	FinalPrice int64         `json:"precioFinal"`
	Date       string        `json:"date"`
}

type saleServiceRef struct {
	Service ref `json:"servicio"`
}

type saleRequest struct {
	Customer   ref              `json:"cliente"`
	Vehicle    ref              `json:"vehiculo"`
	Agent      *ref             `json:"agente"`
	Services   []saleServiceRef `json:"ventaServicios"`
	FinalPrice int64            `json:"precioFinal"`
	Date       string           `json:"date"`
}

// Registration is an account sign-up as accepted by the register route.
type Registration struct {
	Name      string `json:"name"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Password  string `json:"password"`
}

type user struct {
	email              string
	passwordHash       string
	customerID         int64
	mustChangePassword bool
}
