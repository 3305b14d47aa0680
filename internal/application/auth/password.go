package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier hashea y verifica passwords con bcrypt (coste fijo por config).
type PasswordVerifier struct {
	cost int
}

// NewPasswordVerifier construye el verificador. Si el coste está fuera de rango,
// bcrypt aplica su DefaultCost.
func NewPasswordVerifier(cost int) *PasswordVerifier {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordVerifier{cost: cost}
}

// Hash deriva el hash bcrypt (salteado, adaptativo) del password en texto.
func (p *PasswordVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compara el hash almacenado contra el password candidato.
// bcrypt.CompareHashAndPassword compara los digests sin early-exit.
func (p *PasswordVerifier) Verify(storedHash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate)) == nil
}

// SecureCompare compara dos secretos ya derivados (ej. el token de sesión presentado
// contra el almacenado) en tiempo constante respecto al contenido: el tiempo no
// depende de la posición del primer byte distinto.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
