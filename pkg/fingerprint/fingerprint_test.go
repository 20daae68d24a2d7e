package fingerprint

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/fillforge/pkg/field"
)

func sampleFields() []field.Descriptor {
	return []field.Descriptor{
		{Kind: field.KindText, Type: "email", Name: "email"},
		{Kind: field.KindText, Name: "first_name"},
		{Kind: field.KindText, Name: "last_name"},
		{Kind: field.KindTextArea, Name: "message"},
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	a := Compute("https://example.com/signup", sampleFields())
	b := Compute("https://example.com/signup", sampleFields())
	assert.Equal(t, a, b)
}

func TestComputeOrderIndependence(t *testing.T) {
	fields := sampleFields()
	want := Compute("example.com", fields)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := make([]field.Descriptor, len(fields))
		copy(shuffled, fields)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := Compute("example.com", shuffled)
		assert.Equal(t, want.Hash, got.Hash)
	}
}

func TestComputeDistinguishesOrigins(t *testing.T) {
	a := Compute("example.com", sampleFields())
	b := Compute("example.org", sampleFields())
	assert.NotEqual(t, a.Hash, b.Hash)
}

func TestComputeDistinguishesShapes(t *testing.T) {
	a := Compute("example.com", sampleFields())
	b := Compute("example.com", sampleFields()[:3])
	assert.NotEqual(t, a.Hash, b.Hash)
}

func TestComputeHostExtraction(t *testing.T) {
	a := Compute("https://shop.example.com:8443/checkout?step=2", sampleFields())
	assert.Equal(t, "shop.example.com", a.Origin)

	b := Compute("shop.example.com", sampleFields())
	assert.Equal(t, "shop.example.com", b.Origin)
}

func TestComputeHashFormat(t *testing.T) {
	fp := Compute("example.com", sampleFields())
	require.NotEmpty(t, fp.Hash)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-z]+$`), fp.Hash)
	assert.Equal(t, 4, fp.FieldCount)
}

func TestComputeEmptyForm(t *testing.T) {
	fp := Compute("example.com", nil)
	assert.NotEmpty(t, fp.Hash)
	assert.Equal(t, 0, fp.FieldCount)
}
