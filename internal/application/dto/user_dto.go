package dto

import "time"

// AddressInput dirección anidada en el registro/actualización de un usuario.
type AddressInput struct {
	AddressType string `json:"address_type" validate:"required,oneof=Service Billing"`
	Street      string `json:"street" validate:"required"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state"`
	Zipcode     string `json:"zipcode" validate:"required"`
}

// RegisterUserRequest entrada para registrar un usuario (password en texto, se
// hashea en el use case). El usuario nace sin activar y sin aprobar.
type RegisterUserRequest struct {
	Name                 string         `json:"name" validate:"required,max=50"`
	Email                string         `json:"email" validate:"required,email"`
	Password             string         `json:"password" validate:"required,min=8"`
	PasswordConfirmation string         `json:"password_confirmation" validate:"required,eqfield=Password"`
	Role                 string         `json:"role" validate:"omitempty,oneof=Customer UtilityAdmin SuperAdmin"`
	PrimaryMobile        string         `json:"primary_mobile" validate:"omitempty,min=10"`
	CountryCode          string         `json:"country_code"`
	Addresses            []AddressInput `json:"addresses"`
}

// UpdateUserRequest campos actualizables (whitelist; email y password quedan fuera).
// Punteros para distinguir "no enviado" de "vaciar".
type UpdateUserRequest struct {
	Name          *string `json:"name"`
	Role          *string `json:"role"`
	PrimaryMobile *string `json:"primary_mobile"`
	CountryCode   *string `json:"country_code"`
	TimeZone      *string `json:"time_zone"`
}

// AddressResponse dirección en la salida del detalle de usuario.
type AddressResponse struct {
	ID          string `json:"id"`
	AddressType string `json:"address_type"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zipcode     string `json:"zipcode"`
}

// UserResponse salida de un usuario (sin hash ni tokens).
type UserResponse struct {
	ID            string            `json:"id"`
	UtilityID     string            `json:"utility_id,omitempty"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Role          string            `json:"role"`
	Activated     bool              `json:"activated"`
	Approved      bool              `json:"approved"`
	Deleted       bool              `json:"deleted"`
	PrimaryMobile string            `json:"primary_mobile,omitempty"`
	CountryCode   string            `json:"country_code,omitempty"`
	TimeZone      string            `json:"time_zone,omitempty"`
	Addresses     []AddressResponse `json:"addresses,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Meta  PageMeta       `json:"meta"`
}
