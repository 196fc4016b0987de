// seed_catalog genera un script SQL para poblar alimentos y raciones a partir de las
// exportaciones CSV del sistema anterior (Windows-1251, separador ';').
//
// Uso: go run ./cmd/seed_catalog [feeds.csv] [rations.csv]
// Por defecto busca feeds.csv y rations.csv en el directorio actual; rations.csv es opcional.
//
//	feeds.csv:   Наименование;Тип;ЕдиницаИзмерения;ОстатокНаСкладе
//	rations.csv: Вид;Корм;Количество;Частота
//
// Escribe: internal/infrastructure/postgres/seeds/catalog.sql
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

type feedRow struct {
	name     string
	feedType string
	unit     string
	quantity decimal.Decimal
}

type rationRow struct {
	species   string
	feedName  string
	amount    decimal.Decimal
	frequency string
}

func main() {
	feedsPath, rationsPath := "feeds.csv", "rations.csv"
	if len(os.Args) > 1 {
		feedsPath = os.Args[1]
	}
	if len(os.Args) > 2 {
		rationsPath = os.Args[2]
	}

	feeds, err := readFile(feedsPath, parseFeeds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer alimentos: %v\n", err)
		os.Exit(1)
	}
	rations, err := readFile(rationsPath, parseRations)
	if errors.Is(err, os.ErrNotExist) {
		rations = nil
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Leer raciones: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "seeds", "catalog.sql")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, feeds, rations); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d alimentos, %d raciones\n", outPath, len(feeds), len(rations))
}

func readFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f)
}

// newReader decodifica Windows-1251 y salta la fila de encabezados.
func newReader(r io.Reader, fields int) (*csv.Reader, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.Windows1251.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = fields
	cr.TrimLeadingSpace = true
	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	return cr, nil
}

func parseFeeds(r io.Reader) ([]feedRow, error) {
	cr, err := newReader(r, 4)
	if err != nil {
		return nil, err
	}
	var out []feedRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		name := strings.TrimSpace(rec[0])
		if name == "" {
			continue
		}
		feedType, ok := entity.ParseFeedType(rec[1])
		if !ok {
			return nil, fmt.Errorf("línea %d: tipo de alimento desconocido %q", line, rec[1])
		}
		unit := strings.TrimSpace(rec[2])
		if unit == "" {
			unit = entity.DefaultFeedUnit
		}
		qty, err := parseAmount(rec[3])
		if err != nil || qty.IsNegative() {
			return nil, fmt.Errorf("línea %d: existencia inválida %q", line, rec[3])
		}
		out = append(out, feedRow{name: name, feedType: feedType, unit: unit, quantity: qty})
	}
}

func parseRations(r io.Reader) ([]rationRow, error) {
	cr, err := newReader(r, 4)
	if err != nil {
		return nil, err
	}
	var out []rationRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		species := strings.TrimSpace(rec[0])
		feedName := strings.TrimSpace(rec[1])
		if species == "" || feedName == "" {
			continue
		}
		amount, err := parseAmount(rec[2])
		if err != nil || !amount.IsPositive() {
			return nil, fmt.Errorf("línea %d: cantidad inválida %q", line, rec[2])
		}
		freq := strings.TrimSpace(rec[3])
		if freq == "" {
			freq = entity.DefaultRationFrequency
		}
		out = append(out, rationRow{species: species, feedName: feedName, amount: amount, frequency: freq})
	}
}

// parseAmount acepta coma decimal (formato regional de las exportaciones).
func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
}

func writeSQL(w io.Writer, feeds []feedRow, rations []rationRow) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de alimentos y raciones\n")
	b.WriteString("-- Generado por cmd/seed_catalog desde las exportaciones CSV del sistema anterior\n\n")

	if len(feeds) > 0 {
		b.WriteString("-- 1. Alimentos\n")
		b.WriteString("INSERT INTO feeds (id, name, type, unit, quantity) VALUES\n")
		for i, f := range feeds {
			sep := ","
			if i == len(feeds)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', %s)%s\n",
				uuid.New().String(), escapeSQL(f.name), f.feedType, escapeSQL(f.unit), f.quantity.String(), sep)
		}
		b.WriteString("ON CONFLICT (name) DO UPDATE SET type = EXCLUDED.type, unit = EXCLUDED.unit;\n\n")
	}

	if len(rations) > 0 {
		b.WriteString("-- 2. Raciones (alimento resuelto por nombre)\n")
		for _, r := range rations {
			b.WriteString("INSERT INTO rations (id, feed_id, species, amount, frequency)\n")
			fmt.Fprintf(&b, "SELECT '%s', id, '%s', %s, '%s' FROM feeds WHERE name = '%s'\n",
				uuid.New().String(), escapeSQL(r.species), r.amount.String(), escapeSQL(r.frequency), escapeSQL(r.feedName))
			b.WriteString("ON CONFLICT (species) DO UPDATE SET feed_id = EXCLUDED.feed_id, amount = EXCLUDED.amount, frequency = EXCLUDED.frequency;\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
