package entity

import "time"

// Client perfil de cliente 1:1 con un User de rol CLIENT.
// Se crea al crear el usuario o de forma perezosa en su primer feedback.
type Client struct {
	ID        string
	UserID    string
	Name      string
	Document  *string // número de documento, opcional
	CreatedAt time.Time
}
