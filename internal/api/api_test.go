package api

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/homesite/internal/httperr"
)

func TestDefaultContainsExpectedMethods(t *testing.T) {
	registry := Default()

	for _, name := range []string{"ping", "now", "echo", "visits"} {
		assert.Contains(t, registry, name)
	}
}

func TestPing(t *testing.T) {
	result, err := ping(context.Background(), url.Values{})
	require.NoError(t, err)
	assert.Equal(t, "pong", result)
}

func TestEchoReturnsParams(t *testing.T) {
	result, err := echo(context.Background(), url.Values{"x": {"1"}, "y": {"a", "b"}})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"x": "1", "y": "a"}, result)
}

func TestEchoWithoutParamsIsCodedError(t *testing.T) {
	_, err := echo(context.Background(), url.Values{})
	require.Error(t, err)
	assert.Equal(t, 400, httperr.CodeOf(err))
}

func TestVisitsWithoutSessionIsCodedError(t *testing.T) {
	_, err := visits(context.Background(), url.Values{})
	require.Error(t, err)
	assert.Equal(t, 500, httperr.CodeOf(err))
}
