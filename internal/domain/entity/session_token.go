package entity

import "time"

// SessionToken es la credencial opaca emitida al hacer login. El valor es único en
// todo el ledger (constraint única en DB), se busca por usuario y nunca se decodifica:
// no lleva claims embebidos. Queda ligado al fingerprint de la request que lo originó.
type SessionToken struct {
	ID        string
	UserID    string
	Token     string // alta entropía, expuesto en claro solo al emitirse
	IP        string
	UserAgent string
	CreatedAt time.Time
}

// ExpiredAt indica si el token quedó fuera de la ventana de retención en el
// instante dado.
func (t *SessionToken) ExpiredAt(now time.Time, maxAge time.Duration) bool {
	return now.Sub(t.CreatedAt) > maxAge
}

// RequestContext es el fingerprint de la request que acompaña la emisión de un
// token (dispositivo/origen).
type RequestContext struct {
	IP        string
	UserAgent string
}
