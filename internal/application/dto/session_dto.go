package dto

// CreateSessionRequest entrada de login.
type CreateSessionRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionUser resumen mínimo del usuario autenticado (id, email, name, role).
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// CreateSessionResponse salida de login: un sobre JWT firmado que contiene el
// resumen del usuario y su token de sesión opaco (forma histórica de la API).
type CreateSessionResponse struct {
	Token string `json:"token"`
}

// GeoLocationResponse salida best-effort del lookup geográfico por IP.
// Location queda vacío si el resolver no está configurado o la IP no resuelve.
type GeoLocationResponse struct {
	Location map[string]any `json:"location"`
}
