package fakeapi

import "github.com/dmitrijs2005/storefront/internal/common"

// Demo accounts created by Seed.
const (
	DemoEmail    = "demo@storefront.test"
	DemoPassword = "password1"

	// TempEmail must change its password right after logging in.
	TempEmail    = "new@storefront.test"
	TempPassword = "temporary1"
)

// Seed fills s with a small catalog and the demo accounts.
func Seed(s *Store) error {
	ana := agent{ID: 1, Name: "Ana", LastName: "Ruiz", Email: "ana.ruiz@storefront.test", Telephone: "777-555-0101"}
	jorge := agent{ID: 2, Name: "Jorge", LastName: "Salas", Email: "jorge.salas@storefront.test"}
	s.addAgent(ana)
	s.addAgent(jorge)

	nissan := brand{ID: 1, Name: "Nissan"}
	toyota := brand{ID: 2, Name: "Toyota"}
	mazda := brand{ID: 3, Name: "Mazda"}
	for _, b := range []brand{nissan, toyota, mazda} {
		s.addBrand(b)
	}

	available := ref{ID: common.VehicleStatusAvailable}
	for _, v := range []vehicle{
		{ID: 1, Model: "Versa", Year: 2022, Price: 250000, Color: "rojo", Plate: "PXA-1021", Brand: nissan, Status: available, Agent: &ana,
			Description: "Sedan, automatic transmission, one owner."},
		{ID: 2, Model: "Sentra", Year: 2021, Price: 310000, Color: "plata", Plate: "PXB-3310", Brand: nissan, Status: available, Agent: &ana},
		{ID: 3, Model: "Corolla", Year: 2023, Price: 385000, Color: "blanco", Plate: "TYC-0423", Brand: toyota, Status: available, Agent: &jorge},
		{ID: 4, Model: "Hilux", Year: 2020, Price: 455000, Color: "gris", Plate: "TYH-7720", Brand: toyota, Status: available},
		{ID: 5, Model: "Mazda 3", Year: 2022, Price: 365000, Color: "azul", Plate: "MZ3-1122", Brand: mazda, Status: available, Agent: &jorge},
	} {
		s.addVehicle(v)
	}

	for _, svc := range []service{
		{ID: 1, Name: "Extended warranty", Description: "Two additional years of coverage.", Price: "$12,500", Modality: &modality{Name: "2 years"}},
		{ID: 2, Name: "Window tint", Description: "Ceramic tint, all windows.", Price: "$3,200", Modality: &modality{Name: "one-time"}},
		{ID: 3, Name: "Insurance", Description: "Comprehensive coverage.", Price: "$8,900", Modality: &modality{Name: "12 months"}},
		{ID: 4, Name: "Paperwork", Description: "Plates and registration handled for you.", Price: "$1,500"},
	} {
		s.addService(svc)
	}

	if _, err := s.AddUser(Registration{
		Name: "Demo", LastName: "Customer", Email: DemoEmail, Telephone: "777-555-0199", Password: DemoPassword,
	}, ana.ID, false); err != nil {
		return err
	}
	if _, err := s.AddUser(Registration{
		Name: "New", LastName: "Customer", Email: TempEmail, Password: TempPassword,
	}, jorge.ID, true); err != nil {
		return err
	}
	return nil
}
