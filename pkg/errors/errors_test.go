package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataForKnownCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, MetadataFor(CodeValidation).HTTPStatus)
	assert.Equal(t, http.StatusServiceUnavailable, MetadataFor(CodeNetwork).HTTPStatus)
	assert.Equal(t, http.StatusBadGateway, MetadataFor(CodeUpstream).HTTPStatus)
}

func TestMetadataForUnknownFallsBackToInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, MetadataFor(Code("NOPE")).HTTPStatus)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := Wrap(CodeNetwork, cause, "carrier unreachable")

	require.Equal(t, CodeNetwork, err.Code())
	assert.Equal(t, cause, err.Unwrap())
	assert.Equal(t, "NETWORK_ERROR: carrier unreachable", err.Error())
}

func TestAsUnwrapsNestedTypedError(t *testing.T) {
	inner := New(CodeNotFound, "missing")
	wrapped := fmt.Errorf("outer: %w", inner)

	typed := As(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, CodeNotFound, typed.Code())

	assert.Nil(t, As(fmt.Errorf("plain")))
	assert.Nil(t, As(nil))
}

func TestDumpBuildsChain(t *testing.T) {
	err := Wrap(CodeUpstream, fmt.Errorf("status 500"), "quote failed")
	dump := Dump(err)

	assert.Equal(t, CodeUpstream, dump.Code)
	assert.Len(t, dump.Chain, 2)
	assert.Equal(t, "UPSTREAM_ERROR: quote failed", dump.TopMessage)
}
