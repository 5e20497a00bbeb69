package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse(t *testing.T) {
	token, expires, err := Generate("secreto", OperatorSubject, "inventario-hojas", 30)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expires, 5*time.Second)

	subject, err := Parse("secreto", "inventario-hojas", token)
	require.NoError(t, err)
	assert.Equal(t, OperatorSubject, subject)
}

func TestParse_Rechazos(t *testing.T) {
	token, _, err := Generate("secreto", OperatorSubject, "inventario-hojas", 30)
	require.NoError(t, err)

	_, err = Parse("otro", "inventario-hojas", token)
	assert.Error(t, err, "firma incorrecta")

	_, err = Parse("secreto", "otro-emisor", token)
	assert.Error(t, err, "emisor distinto")

	expired, _, err := Generate("secreto", OperatorSubject, "inventario-hojas", -1)
	require.NoError(t, err)
	_, err = Parse("secreto", "inventario-hojas", expired)
	assert.Error(t, err, "token expirado")

	_, _, err = Generate("", OperatorSubject, "x", 1)
	assert.Error(t, err)
}
