package geoip

import (
	"fmt"
	"net"

	"github.com/jhoicas/accounts-api/internal/application/ports"
	"github.com/oschwald/geoip2-golang"
)

var _ ports.GeoResolver = (*Resolver)(nil)

// Resolver geolocalización por IP sobre una base MaxMind GeoLite2/GeoIP2 City.
// Colaborador best-effort: el caller nunca depende de que el lookup funcione.
type Resolver struct {
	db *geoip2.Reader
}

// Open abre la base .mmdb. El caller debe llamar Close al apagar.
func Open(dbPath string) (*Resolver, error) {
	db, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("abrir base geoip: %w", err)
	}
	return &Resolver{db: db}, nil
}

// City resuelve país, ciudad y zona horaria de la IP.
func (r *Resolver) City(ip string) (*ports.GeoLocation, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, fmt.Errorf("ip inválida: %q", ip)
	}
	record, err := r.db.City(parsed)
	if err != nil {
		return nil, fmt.Errorf("lookup geoip: %w", err)
	}
	return &ports.GeoLocation{
		CountryCode: record.Country.IsoCode,
		CountryName: record.Country.Names["en"],
		City:        record.City.Names["en"],
		TimeZone:    record.Location.TimeZone,
	}, nil
}

// Close libera la base mmdb.
func (r *Resolver) Close() error {
	return r.db.Close()
}
