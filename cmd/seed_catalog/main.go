// seed_catalog genera un script SQL para poblar el catálogo de productos a partir de un CSV
// con columnas nombre;categoría (la primera fila es cabecera).
//
// Uso: go run ./cmd/seed_catalog [-latin1] [-out archivo.sql] [-admin-email x -admin-password y] catalogo.csv
// Sin -out escribe en stdout. -latin1 decodifica archivos exportados en ISO-8859-1.
// Con -admin-email se agrega además un usuario ADMIN con la contraseña hasheada (bcrypt).
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/davihchagas/feedback-system-project/pkg/ids"
)

type catalogRow struct {
	name     string
	category string
}

type adminRow struct {
	name     string
	email    string
	password string
}

type idGenerator interface {
	Generate(kind ids.Kind) (string, error)
}

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	outPath := flag.String("out", "", "archivo SQL de salida (por defecto stdout)")
	adminName := flag.String("admin-name", "Administrador", "nombre del administrador inicial")
	adminEmail := flag.String("admin-email", "", "email del administrador inicial (vacío: sin administrador)")
	adminPassword := flag.String("admin-password", "", "contraseña del administrador inicial")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_catalog [-latin1] [-out archivo.sql] catalogo.csv")
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := readCatalog(f, *latin1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}

	var admin *adminRow
	if *adminEmail != "" {
		if len(*adminPassword) < 8 {
			fmt.Fprintln(os.Stderr, "-admin-password debe tener al menos 8 caracteres")
			os.Exit(2)
		}
		admin = &adminRow{name: *adminName, email: strings.ToLower(strings.TrimSpace(*adminEmail)), password: *adminPassword}
	}

	if err := writeSQL(out, rows, admin, ids.New()); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generados %d productos\n", len(rows))
}

// readCatalog lee filas nombre;categoría. Filas vacías o incompletas se omiten.
func readCatalog(r io.Reader, latin1 bool) ([]catalogRow, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []catalogRow
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			continue
		}
		if len(rec) < 2 {
			continue
		}
		name, category := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])
		if name == "" || category == "" {
			continue
		}
		rows = append(rows, catalogRow{name: name, category: category})
	}
	return rows, nil
}

// writeSQL emite un INSERT por producto; los IDs repetidos dentro del lote se regeneran.
func writeSQL(w io.Writer, rows []catalogRow, admin *adminRow, gen idGenerator) error {
	if _, err := io.WriteString(w, "-- Catálogo de productos\nBEGIN;\n"); err != nil {
		return err
	}
	if admin != nil {
		if err := writeAdmin(w, *admin, gen); err != nil {
			return err
		}
	}
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		var id string
		for {
			next, err := gen.Generate(ids.KindProduct)
			if err != nil {
				return err
			}
			if _, dup := seen[next]; !dup {
				id = next
				break
			}
		}
		seen[id] = struct{}{}
		if _, err := fmt.Fprintf(w, "INSERT INTO products (id, name, category) VALUES ('%s', '%s', '%s') ON CONFLICT (id) DO NOTHING;\n",
			id, escapeSQL(row.name), escapeSQL(row.category)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "COMMIT;\n")
	return err
}

func writeAdmin(w io.Writer, admin adminRow, gen idGenerator) error {
	id, err := gen.Generate(ids.KindUser)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(admin.password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "INSERT INTO users (id, name, email, password_hash, role) VALUES ('%s', '%s', '%s', '%s', 'ADMIN') ON CONFLICT (email) DO NOTHING;\n",
		id, escapeSQL(admin.name), escapeSQL(admin.email), string(hash))
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
