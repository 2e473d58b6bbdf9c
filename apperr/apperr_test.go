package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"plain error defaults to internal", errors.New("boom"), Internal},
		{"direct kind", New(NotFound, "missing"), NotFound},
		{"wrapped cause keeps kind", Wrap(Timeout, "download", errors.New("deadline")), Timeout},
		{"kind survives fmt wrapping", fmt.Errorf("handler: %w", New(InvalidInput, "bad id")), InvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestDetail(t *testing.T) {
	assert.Equal(t, "missing", Detail(New(NotFound, "missing")))
	assert.Equal(t, "download: deadline", Detail(Wrap(Timeout, "download", errors.New("deadline"))))
	assert.Equal(t, "boom", Detail(errors.New("boom")))
}

func TestIs(t *testing.T) {
	err := Newf(NotFound, "collection '%s' does not exist", "study")
	assert.True(t, Is(err, NotFound))
	assert.False(t, Is(err, InvalidInput))
	assert.Equal(t, "collection 'study' does not exist", Detail(err))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("io failure")
	err := Wrap(Internal, "upload", cause)
	assert.True(t, errors.Is(err, cause))
}
