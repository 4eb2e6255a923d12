package entity

import "time"

// Attachment adjunto referenciado por URL.
type Attachment struct {
	Type string `bson:"type" json:"type"`
	URL  string `bson:"url" json:"url"`
}

// FeedbackText documento del almacén documental con el comentario largo.
// Se relaciona con Feedback solo por valor (FeedbackID); puede existir sin fila relacional y viceversa.
type FeedbackText struct {
	FeedbackID  string       `bson:"feedback_id" json:"feedbackId"`
	LongComment string       `bson:"long_comment,omitempty" json:"longComment,omitempty"`
	Tags        []string     `bson:"tags" json:"tags"`
	Sentiment   string       `bson:"sentiment,omitempty" json:"sentiment,omitempty"`
	Attachments []Attachment `bson:"attachments,omitempty" json:"attachments,omitempty"`
	CreatedAt   time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time    `bson:"updated_at" json:"updatedAt"`
}
