package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "coded error",
			err:  New(http.StatusForbidden, "nope"),
			want: http.StatusForbidden,
		},
		{
			name: "wrapped coded error",
			err:  fmt.Errorf("doc lookup: %w", New(http.StatusBadRequest, "bad")),
			want: http.StatusBadRequest,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, CodeOf(test.err))
		})
	}
}

func TestErrorMessageIsVerbatim(t *testing.T) {
	err := Errorf(http.StatusForbidden, "user %s is not allowed", "bob")
	assert.Equal(t, "user bob is not allowed", err.Error())
}

func TestReasonPhrase(t *testing.T) {
	assert.Equal(t, "404: Not Found", ReasonPhrase(http.StatusNotFound))
	assert.Equal(t, "500: Internal Server Error", ReasonPhrase(http.StatusInternalServerError))
}

func TestErrNotFoundIsCoded(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, CodeOf(fmt.Errorf("missing doc: %w", ErrNotFound)))
}
