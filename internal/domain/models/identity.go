package models

import "github.com/skystack/backoffice/pkg/constants"

// Identity is the claim set decoded from a verified credential. It lives in
// the request context for the lifetime of one request and is never persisted.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// AdminPrincipal is the elevated-role context attached to a request after the
// admin gate admits it.
type AdminPrincipal struct {
	ID    string              `json:"id"`
	Email string              `json:"email"`
	Name  string              `json:"name"`
	Role  constants.AdminRole `json:"role"`
}
