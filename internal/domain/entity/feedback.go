package entity

import "time"

// Rango válido de la nota.
const (
	MinRating = 1
	MaxRating = 5
)

// Feedback fila relacional inmutable; no existe ruta de actualización.
type Feedback struct {
	ID           string
	ClientID     string
	ProductID    string
	Rating       int
	ShortComment string
	CreatedAt    time.Time
}

// FeedbackDetail fila de la vista detallada (feedback + producto + cliente).
type FeedbackDetail struct {
	Feedback
	ProductName string
	Category    string
	ClientName  string
}

// Response respuesta de un analista; append-only, varias por feedback.
type Response struct {
	ID           int64
	FeedbackID   string
	AnalystID    string
	AnalystName  string
	ResponseText string
	CreatedAt    time.Time
}
