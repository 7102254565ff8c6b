package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brt-intranet/backend/pkg/utils"
)

func TestWriteHashProducesUsableSecret(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeHash(strings.NewReader("clave-aruba\n"), &out))

	hashed := strings.TrimSpace(out.String())
	assert.True(t, utils.IsBcryptHash(hashed), hashed)
	assert.True(t, utils.MatchSecret("clave-aruba", hashed))
	assert.False(t, utils.MatchSecret("otra", hashed))
}

func TestWriteHashRejectsEmptyInput(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, writeHash(strings.NewReader("\n"), &out))
	assert.Empty(t, out.String())
}
