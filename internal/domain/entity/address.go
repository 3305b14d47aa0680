package entity

// Tipos de dirección aceptados.
const (
	AddressService = "Service"
	AddressBilling = "Billing"
)

// Address es una dirección de servicio o facturación asociada a un usuario.
// Se crea junto con el usuario y se devuelve en el detalle.
type Address struct {
	ID          string
	UserID      string
	AddressType string // Service, Billing
	Street      string
	City        string
	State       string
	Zipcode     string
}
