package texto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizar(t *testing.T) {
	assert.Equal(t, "calca jeans", Normalizar("Calça Jeans"))
	assert.Equal(t, "vestido acai", Normalizar("VESTIDO AÇAÍ"))
	assert.Equal(t, "tatuape", Normalizar("Tatuapé"))
	assert.Equal(t, "", Normalizar(""))
}

func TestContem(t *testing.T) {
	assert.True(t, Contem("Calça Jeans Escura", "calca"))
	assert.True(t, Contem("Calça Jeans Escura", "JEANS"))
	assert.True(t, Contem("Vestido Açaí", "acai"))
	assert.True(t, Contem("qualquer coisa", ""), "termo vazio casa com tudo")
	assert.False(t, Contem("Calça Jeans", "vestido"))
}
