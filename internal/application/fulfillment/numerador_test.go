package fulfillment

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumerador_Formato(t *testing.T) {
	n := NewNumerador()
	numero := n.Proximo("TAT")
	partes := strings.SplitN(numero, "-", 2)
	require.Len(t, partes, 2)
	assert.Equal(t, "TAT", partes[0])
	ms, err := strconv.ParseInt(partes[1], 10, 64)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().UnixMilli(), ms, 1000)
}

// Duas chamadas no mesmo milissegundo nunca repetem o número.
func TestNumerador_MesmoMilissegundoAvanca(t *testing.T) {
	congelado := time.Now()
	n := &Numerador{agora: func() time.Time { return congelado }}

	a := n.Proximo("SEP")
	b := n.Proximo("SEP")
	c := n.Proximo("SEP")
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, b, c)
	assert.Equal(t, fmt.Sprintf("SEP-%d", congelado.UnixMilli()), a)
	assert.Equal(t, fmt.Sprintf("SEP-%d", congelado.UnixMilli()+1), b)
}

// Relógio andando para trás não repete número.
func TestNumerador_RelogioParaTras(t *testing.T) {
	agora := time.Now()
	chamadas := 0
	n := &Numerador{agora: func() time.Time {
		chamadas++
		if chamadas == 2 {
			return agora.Add(-time.Minute)
		}
		return agora
	}}
	a := n.Proximo("TAT")
	b := n.Proximo("TAT")
	assert.NotEqual(t, a, b)
}

func TestNumerador_Concorrencia(t *testing.T) {
	n := NewNumerador()
	const total = 200
	var wg sync.WaitGroup
	numeros := make([]string, total)
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			numeros[i] = n.Proximo("MOG")
		}(i)
	}
	wg.Wait()

	vistos := make(map[string]bool, total)
	for _, num := range numeros {
		assert.False(t, vistos[num], "número repetido: %s", num)
		vistos[num] = true
	}
}
