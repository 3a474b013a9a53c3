package format_test

import (
	"testing"

	"northlink/pkg/format"

	"github.com/stretchr/testify/assert"
)

func TestToCents(t *testing.T) {
	v := format.ToCents("24.99")
	if assert.NotNil(t, v) {
		assert.Equal(t, int64(2499), *v)
	}

	v = format.ToCents("$1,299.00")
	if assert.NotNil(t, v) {
		assert.Equal(t, int64(129900), *v)
	}

	v = format.ToCents("0.1")
	if assert.NotNil(t, v) {
		assert.Equal(t, int64(10), *v)
	}

	assert.Nil(t, format.ToCents(""))
	assert.Nil(t, format.ToCents("free"))
	assert.Nil(t, format.ToCents("..."))
}

func TestNormalizeURL(t *testing.T) {
	v := format.NormalizeURL("amazon.com/x")
	if assert.NotNil(t, v) {
		assert.Equal(t, "https://amazon.com/x", *v)
	}

	v = format.NormalizeURL("http://example.com/a?b=c")
	if assert.NotNil(t, v) {
		assert.Equal(t, "http://example.com/a?b=c", *v)
	}

	assert.Nil(t, format.NormalizeURL(""))
	assert.Nil(t, format.NormalizeURL("   "))
}

func TestUSD(t *testing.T) {
	assert.Equal(t, "$24.99", format.USD(2499))
	assert.Equal(t, "$0.05", format.USD(5))
	assert.Equal(t, "-$1.00", format.USD(-100))
}
