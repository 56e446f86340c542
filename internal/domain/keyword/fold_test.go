package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldASCII(t *testing.T) {
	k, ok := foldASCII("login")
	assert.True(t, ok)
	assert.Equal(t, "login", k)

	k, ok = foldASCII("LoGiN42")
	assert.True(t, ok)
	assert.Equal(t, "login42", k)

	_, ok = foldASCII("café")
	assert.False(t, ok)
}

func TestFoldKey_Unicode(t *testing.T) {
	assert.Equal(t, foldKey("MASSE"), foldKey("Maße"))
	assert.Equal(t, foldKey("k"), foldKey("K")) // Kelvin sign
	assert.Equal(t, foldKey("ÉCOLE"), foldKey("école"))
	assert.NotEqual(t, foldKey("ecole"), foldKey("école"))
}

func TestExactKey(t *testing.T) {
	assert.Equal(t, "Rust", exactKey("Rust"))
	assert.NotEqual(t, exactKey("RUST"), exactKey("Rust"))
}
