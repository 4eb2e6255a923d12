package entity

import "time"

// Product producto evaluable. Nunca se borra; solo se inactiva.
// Un feedback solo puede apuntar a un producto activo en el momento de su creación.
type Product struct {
	ID        string
	Name      string
	Category  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
