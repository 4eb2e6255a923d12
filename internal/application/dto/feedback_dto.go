package dto

import "time"

// AttachmentDTO adjunto por URL.
type AttachmentDTO struct {
	Type string `json:"type" validate:"required,max=40"`
	URL  string `json:"url" validate:"required,url"`
}

// CreateFeedbackRequest entrada de create-feedback. Rating y ShortComment se validan
// también en el caso de uso, antes de cualquier escritura.
type CreateFeedbackRequest struct {
	ProductID    string          `json:"productId" validate:"required"`
	Rating       int             `json:"rating" validate:"required,min=1,max=5"`
	ShortComment string          `json:"shortComment" validate:"required,max=500"`
	LongComment  string          `json:"longComment" validate:"omitempty,max=10000"`
	Tags         []string        `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
	Sentiment    string          `json:"sentiment" validate:"omitempty,oneof=positive neutral negative"`
	Attachments  []AttachmentDTO `json:"attachments" validate:"omitempty,max=10,dive"`
}

// CreateFeedbackResponse salida de create-feedback. SecondaryFailures lista los tramos
// secundarios que fallaron después de confirmar la fila relacional.
type CreateFeedbackResponse struct {
	FeedbackID        string   `json:"feedbackId"`
	Replayed          bool     `json:"replayed,omitempty"`
	SecondaryFailures []string `json:"secondaryFailures,omitempty"`
}

// FeedbackQuery filtros de la vista detallada (query string).
type FeedbackQuery struct {
	ProductID string `query:"productId"`
	ClientID  string `query:"clientId"`
	DateFrom  string `query:"dateFrom" validate:"omitempty,datetime=2006-01-02"`
	DateTo    string `query:"dateTo" validate:"omitempty,datetime=2006-01-02"`
	RatingMin int    `query:"ratingMin" validate:"omitempty,min=1,max=5"`
	RatingMax int    `query:"ratingMax" validate:"omitempty,min=1,max=5"`
}

// FeedbackDetailResponse fila de la vista detallada con su clasificación.
type FeedbackDetailResponse struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"clientId"`
	ClientName     string    `json:"clientName"`
	ProductID      string    `json:"productId"`
	ProductName    string    `json:"productName"`
	Category       string    `json:"category"`
	Rating         int       `json:"rating"`
	Classification string    `json:"classification"`
	ShortComment   string    `json:"shortComment"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FeedbackTextResponse documento de texto largo.
type FeedbackTextResponse struct {
	FeedbackID  string          `json:"feedbackId"`
	LongComment string          `json:"longComment,omitempty"`
	Tags        []string        `json:"tags"`
	Sentiment   string          `json:"sentiment,omitempty"`
	Attachments []AttachmentDTO `json:"attachments,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CreateResponseRequest respuesta de un analista.
type CreateResponseRequest struct {
	ResponseText string `json:"responseText" validate:"required,min=1,max=5000"`
}

// ResponseDTO respuesta persistida.
type ResponseDTO struct {
	ID           int64     `json:"id"`
	FeedbackID   string    `json:"feedbackId"`
	AnalystID    string    `json:"analystId"`
	AnalystName  string    `json:"analystName,omitempty"`
	ResponseText string    `json:"responseText"`
	CreatedAt    time.Time `json:"createdAt"`
}
