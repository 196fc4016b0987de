package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

// cp1251 codifica el texto como lo exporta el sistema anterior.
func cp1251(t *testing.T, s string) *bytes.Reader {
	t.Helper()
	enc, err := charmap.Windows1251.NewEncoder().String(s)
	require.NoError(t, err)
	return bytes.NewReader([]byte(enc))
}

func TestParseFeeds_DecodificaCP1251(t *testing.T) {
	in := "Наименование;Тип;ЕдиницаИзмерения;ОстатокНаСкладе\n" +
		"Сено;Сухой;кг;120,5\n" +
		"Мясо говяжье;Влажный;;40\n" +
		";;;\n"

	feeds, err := parseFeeds(cp1251(t, in))
	require.NoError(t, err)
	require.Len(t, feeds, 2, "las filas vacías se ignoran")

	assert.Equal(t, "Сено", feeds[0].name)
	assert.Equal(t, "DRY", feeds[0].feedType)
	assert.Equal(t, "120.5", feeds[0].quantity.String(), "coma decimal")
	assert.Equal(t, "WET", feeds[1].feedType)
	assert.Equal(t, "kg", feeds[1].unit, "unidad por defecto")
}

func TestParseFeeds_TipoDesconocido(t *testing.T) {
	in := "Наименование;Тип;ЕдиницаИзмерения;ОстатокНаСкладе\nСено;Жидкий;кг;1\n"
	_, err := parseFeeds(cp1251(t, in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 2")
}

func TestParseRations_CantidadNoPositiva(t *testing.T) {
	in := "Вид;Корм;Количество;Частота\nЛев;Мясо;0;\n"
	_, err := parseRations(cp1251(t, in))
	assert.Error(t, err)
}

func TestWriteSQL(t *testing.T) {
	feeds, err := parseFeeds(cp1251(t, "h;h;h;h\nO'Hay;dry;kg;10\n"))
	require.NoError(t, err)
	rations, err := parseRations(cp1251(t, "h;h;h;h\nzebra;O'Hay;2,5;\n"))
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, writeSQL(&out, feeds, rations))
	sql := out.String()

	assert.Contains(t, sql, "'O''Hay', 'DRY', 'kg', 10)")
	assert.Contains(t, sql, "ON CONFLICT (name) DO UPDATE")
	assert.Contains(t, sql, "'zebra', 2.5, '2 times a day' FROM feeds WHERE name = 'O''Hay'")
	assert.Contains(t, sql, "ON CONFLICT (species) DO UPDATE")
}
