package ports

// GeoLocation resultado de un lookup geográfico por IP.
type GeoLocation struct {
	CountryCode string
	CountryName string
	City        string
	TimeZone    string
}

// GeoResolver puerto de geolocalización por IP. Colaborador opcional: un resolver
// nil o un lookup fallido degradan a "sin enriquecimiento", nunca a error del flujo.
type GeoResolver interface {
	City(ip string) (*GeoLocation, error)
}
