package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("lena@example.com"))
	assert.True(t, IsValidEmail("a.b+tag@sub.example.co"))

	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("two@@example.com"))
	assert.False(t, IsValidEmail("spaces in@example.com"))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("+1 212 555 0101"))
	assert.True(t, IsValidPhone("(212) 555-0101"))
	assert.True(t, IsValidPhone("2125550101"))

	assert.False(t, IsValidPhone("12345"))
	assert.False(t, IsValidPhone("call me maybe"))
}

func TestIsValidValueOfConstant(t *testing.T) {
	eventTypes := []string{"wedding", "corporate", "birthday", "other"}

	assert.True(t, IsValidValueOfConstant("wedding", eventTypes))
	assert.True(t, IsValidValueOfConstant("other", eventTypes))

	assert.False(t, IsValidValueOfConstant("rave", eventTypes))
	assert.False(t, IsValidValueOfConstant("", eventTypes))
	assert.False(t, IsValidValueOfConstant("Wedding", eventTypes))
}

func TestQRCodeDataURL(t *testing.T) {
	dataURL, err := QRCodeDataURL("NYN-0307-1234", 200)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))
	assert.Greater(t, len(dataURL), 100)
}
