package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davihchagas/feedback-system-project/pkg/ids"
)

func TestReadCatalog_OmiteCabeceraYFilasIncompletas(t *testing.T) {
	in := "nombre;categoria\nCafé;bebidas\n;vacía\nSolo nombre\nTé verde ; bebidas\n"

	rows, err := readCatalog(strings.NewReader(in), false)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, catalogRow{name: "Café", category: "bebidas"}, rows[0])
	assert.Equal(t, catalogRow{name: "Té verde", category: "bebidas"}, rows[1])
}

func TestReadCatalog_Latin1(t *testing.T) {
	// "Azúcar" en ISO-8859-1
	in := []byte("nombre;categoria\nAz\xfacar;despensa\n")

	rows, err := readCatalog(bytes.NewReader(in), true)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Azúcar", rows[0].name)
}

func TestWriteSQL_EscapaYRegeneraDuplicados(t *testing.T) {
	// La fuente repite el sufijo 8f3a; el segundo ID se regenera con 0001.
	now := func() time.Time { return time.Date(2025, 11, 12, 15, 30, 45, 0, time.UTC) }
	gen := ids.NewWith(now, bytes.NewReader([]byte{0x8f, 0x3a, 0x8f, 0x3a, 0x00, 0x01}))
	rows := []catalogRow{{name: "D'Onofrio", category: "dulces"}, {name: "Maní", category: "snacks"}}

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, rows, nil, gen))

	out := buf.String()
	assert.Contains(t, out, "'PRD-20251112-153045-8f3a', 'D''Onofrio', 'dulces'")
	assert.Contains(t, out, "'PRD-20251112-153045-0001', 'Maní', 'snacks'")
	assert.True(t, strings.HasSuffix(out, "COMMIT;\n"))
}

func TestWriteSQL_AdministradorConHash(t *testing.T) {
	admin := &adminRow{name: "Ana", email: "ana@x.com", password: "password123"}

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, nil, admin, ids.New()))

	out := buf.String()
	assert.Regexp(t, `INSERT INTO users .*'USR-\d{8}-\d{6}-[0-9a-f]{4}', 'Ana', 'ana@x.com', '\$2a\$`, out)
	assert.NotContains(t, out, "password123")
}
