package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductImageListRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		images []string
	}{
		{"empty", []string{}},
		{"single", []string{"p1_0.jpeg"}},
		{"ordered", []string{"p1_2.png", "p1_0.jpeg", "p1_1.gif"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			require.NoError(t, p.SetImageList(tt.images))
			assert.Equal(t, tt.images, p.ImageList(), "order and content must survive the round trip")
		})
	}
}

func TestProductImageListNilBecomesEmpty(t *testing.T) {
	var p Product
	require.NoError(t, p.SetImageList(nil))
	assert.Equal(t, "[]", p.Image)
	assert.Empty(t, p.ImageList())
}

func TestDecodeImageColumn(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty column", "", nil},
		{"plain array", `["a.jpeg","b.png"]`, []string{"a.jpeg", "b.png"}},
		{"double encoded", `"[\"a.jpeg\",\"b.png\"]"`, []string{"a.jpeg", "b.png"}},
		{"garbage", "not json", nil},
		{"string but not nested array", `"just a string"`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeImageColumn(tt.raw))
		})
	}
}

func TestProductFirstImage(t *testing.T) {
	var p Product
	assert.Equal(t, "", p.FirstImage())

	require.NoError(t, p.SetImageList([]string{"thumb.jpeg", "second.png"}))
	assert.Equal(t, "thumb.jpeg", p.FirstImage())
}
