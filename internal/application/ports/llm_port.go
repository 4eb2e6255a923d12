package ports

import "context"

// Etiquetas de sentimiento aceptadas en FeedbackText.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// SentimentAnalyzer puerto de salida hacia un LLM que clasifica el tono de un comentario.
// Cualquier adaptador (Anthropic, mock) implementa esta interfaz; la aplicación no conoce
// la implementación concreta.
type SentimentAnalyzer interface {
	// AnalyzeSentiment devuelve positive, neutral o negative.
	// El contexto debe llevar un timeout: la llamada es externa.
	AnalyzeSentiment(ctx context.Context, text string) (string, error)
}
