package feedback_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/internal/domain/feedback"
)

func TestClassify_TotalYDeterminista(t *testing.T) {
	expected := map[int]feedback.Classification{
		1: feedback.ClassificationLow,
		2: feedback.ClassificationLow,
		3: feedback.ClassificationMedium,
		4: feedback.ClassificationHigh,
		5: feedback.ClassificationHigh,
	}
	for r := 1; r <= 5; r++ {
		first, err := feedback.Classify(r)
		require.NoError(t, err)
		second, err := feedback.Classify(r)
		require.NoError(t, err)
		assert.Equal(t, expected[r], first)
		assert.Equal(t, first, second, "classify(%d) debe depender solo de la nota", r)
	}
}

func TestClassify_Monotono(t *testing.T) {
	rank := map[feedback.Classification]int{
		feedback.ClassificationLow:    0,
		feedback.ClassificationMedium: 1,
		feedback.ClassificationHigh:   2,
	}
	prev := -1
	for r := 1; r <= 5; r++ {
		c, err := feedback.Classify(r)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rank[c], prev)
		prev = rank[c]
	}
}

func TestClassify_FueraDeRango(t *testing.T) {
	for _, r := range []int{-1, 0, 6, 100} {
		_, err := feedback.Classify(r)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}
