// Package feedback contiene reglas puras sobre las notas de satisfacción.
package feedback

import (
	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
)

// Classification etiqueta de satisfacción derivada de la nota.
type Classification string

// Tramos de satisfacción. Monótonos en la nota.
const (
	ClassificationLow    Classification = "low"
	ClassificationMedium Classification = "medium"
	ClassificationHigh   Classification = "high"
)

// Classify mapea una nota 1..5 a su tramo: 1-2 low, 3 medium, 4-5 high.
// Devuelve ValidationError fuera de rango; dentro del rango es total y determinista.
func Classify(rating int) (Classification, error) {
	if err := ValidateRating(rating); err != nil {
		return "", err
	}
	switch {
	case rating <= 2:
		return ClassificationLow, nil
	case rating == 3:
		return ClassificationMedium, nil
	default:
		return ClassificationHigh, nil
	}
}

// ValidateRating comprueba el rango inclusivo [1,5].
func ValidateRating(rating int) error {
	if rating < entity.MinRating || rating > entity.MaxRating {
		return domain.NewValidationError("rating", "debe estar entre 1 y 5")
	}
	return nil
}
