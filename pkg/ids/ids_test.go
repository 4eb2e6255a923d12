package ids_test

import (
	"bytes"
	"regexp"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davihchagas/feedback-system-project/pkg/ids"
)

var feedbackIDPattern = regexp.MustCompile(`^FBK-\d{8}-\d{6}-[0-9a-f]{4}$`)

func TestGenerate_Formato(t *testing.T) {
	at := time.Date(2025, 11, 12, 15, 30, 45, 0, time.UTC)
	g := ids.NewWith(func() time.Time { return at }, bytes.NewReader([]byte{0x8f, 0x3a}))

	id, err := g.Generate(ids.KindProduct)
	require.NoError(t, err)
	assert.Equal(t, "PRD-20251112-153045-8f3a", id)
}

func TestGenerate_PatronFeedback(t *testing.T) {
	id, err := ids.New().Generate(ids.KindFeedback)
	require.NoError(t, err)
	assert.Regexp(t, feedbackIDPattern, id)
}

func TestGenerate_TipoDesconocido(t *testing.T) {
	_, err := ids.New().Generate(ids.Kind("XYZ"))
	assert.Error(t, err)
}

func TestGenerate_EntropiaAgotada(t *testing.T) {
	g := ids.NewWith(time.Now, bytes.NewReader([]byte{0x01}))
	_, err := g.Generate(ids.KindUser)
	assert.Error(t, err, "un sufijo incompleto no debe producir un ID")
}

func TestGenerate_OrdenLexicograficoPorTiempo(t *testing.T) {
	base := time.Date(2025, 1, 31, 23, 59, 58, 0, time.UTC)
	var generated []string
	for i := 0; i < 4; i++ {
		at := base.Add(time.Duration(i) * time.Second)
		// sufijo decreciente: el orden debe venir solo del tiempo
		g := ids.NewWith(func() time.Time { return at }, bytes.NewReader([]byte{byte(0xff - i), 0x00}))
		id, err := g.Generate(ids.KindClient)
		require.NoError(t, err)
		generated = append(generated, id)
	}
	assert.True(t, sort.StringsAreSorted(generated), "IDs: %v", generated)
}
