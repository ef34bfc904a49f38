package id_test

import (
	"testing"

	"github.com/Zhima-Mochi/minishop-market/internal/infrastructure/id"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator(t *testing.T) {
	gen := id.NewUUIDGenerator()
	a, b := gen.NewID(), gen.NewID()
	require.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	require.NoError(t, err)
}
