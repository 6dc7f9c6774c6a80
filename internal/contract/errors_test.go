package contract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected StatusClass
	}{
		{KindRepositoryAccess, StatusBadInput},
		{KindEmptyRepository, StatusBadInput},
		{KindNetworkTransient, StatusRetriable},
		{KindAggregation, StatusInternal},
		{KindFileNotFound, StatusNotFound},
		{KindCache, StatusInternal},
		{KindNarrator, StatusInternal},
		{Kind("unknown"), StatusInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.Status())
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := WrapError(KindNetworkTransient, "clone interrupted", cause)

	assert.Equal(t, "clone interrupted: connection reset by peer", err.Error())
	assert.ErrorIs(t, err, cause, "Unwrap should expose the cause")

	// Wrapping again with fmt keeps the tag reachable for KindOf.
	wrapped := fmt.Errorf("analysis failed: %w", err)
	assert.Equal(t, KindNetworkTransient, KindOf(wrapped))
	assert.True(t, IsRetriable(wrapped))
}

func TestKindOfUntagged(t *testing.T) {
	assert.Equal(t, KindAggregation, KindOf(errors.New("plain failure")))
	assert.False(t, IsRetriable(errors.New("plain failure")))
}

func TestNewError(t *testing.T) {
	err := NewError(KindEmptyRepository, "repository has no commits")
	assert.Equal(t, "repository has no commits", err.Error())
	assert.Equal(t, KindEmptyRepository, KindOf(err))
}
