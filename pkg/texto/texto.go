// Package texto oferece normalização de texto para busca
// (nomes de produtos e clientes chegam com e sem acento).
package texto

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var removerMarcas = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalizar remove acentos e converte para minúsculas.
// "Calça Jeans" -> "calca jeans".
func Normalizar(s string) string {
	out, _, err := transform.String(removerMarcas, s)
	if err != nil {
		// Entrada não normalizável: compara como veio
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// Contem verifica se texto contém o termo, ignorando acentos e maiúsculas.
func Contem(texto, termo string) bool {
	if termo == "" {
		return true
	}
	return strings.Contains(Normalizar(texto), Normalizar(termo))
}
