package repository

import "context"

// Repos repositorios relacionales atados a una misma transacción.
type Repos struct {
	Users     UserRepository
	Clients   ClientRepository
	Products  ProductRepository
	Feedbacks FeedbackRepository
	Responses ResponseRepository
}

// TxRunner ejecuta fn dentro de una transacción del almacén relacional.
// Si fn devuelve error se hace rollback; la conexión vuelve al pool en todas las salidas.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
