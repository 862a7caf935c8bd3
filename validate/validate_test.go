package validate

import (
	"strings"
	"testing"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name        string
		identifier  any
		wantErr     bool
		errContains string
	}{
		{name: "name", identifier: "pikachu"},
		{name: "padded name", identifier: "  overgrow "},
		{name: "id", identifier: 25},
		{name: "max id", identifier: int64(MaxNumericID)},
		{name: "whole float", identifier: float64(7)},
		{name: "nil", identifier: nil, wantErr: true, errContains: "cannot be null"},
		{name: "empty", identifier: "", wantErr: true, errContains: "cannot be empty"},
		{name: "whitespace", identifier: "   ", wantErr: true, errContains: "cannot be empty"},
		{name: "too long", identifier: strings.Repeat("a", 101), wantErr: true, errContains: "at most 100 characters"},
		{name: "multibyte at limit", identifier: strings.Repeat("é", 100)},
		{name: "multibyte over limit", identifier: strings.Repeat("é", 101), wantErr: true, errContains: "at most 100 characters"},
		{name: "zero", identifier: 0, wantErr: true, errContains: "positive integer"},
		{name: "negative", identifier: -3, wantErr: true, errContains: "positive integer"},
		{name: "too large", identifier: 100001, wantErr: true, errContains: "at most 100000"},
		{name: "fraction", identifier: 1.5, wantErr: true, errContains: "positive integer"},
		{name: "wrong type", identifier: []string{"a"}, wantErr: true, errContains: "string or integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Identifier(tt.identifier, "pokemon")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "pokemon identifier")
			assert.Contains(t, err.Error(), tt.errContains)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
			assert.False(t, errors.IsRetryable(err))
		})
	}
}

func TestPagination(t *testing.T) {
	tests := []struct {
		offset, limit int
		wantErr       bool
	}{
		{0, 20, false},
		{100, 1, false},
		{0, 1000, false},
		{-1, 20, true},
		{0, 0, true},
		{0, 1001, true},
		{5, -2, true},
	}

	for _, tt := range tests {
		err := Pagination(tt.offset, tt.limit)
		if tt.wantErr {
			assert.Error(t, err, "offset=%d limit=%d", tt.offset, tt.limit)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		} else {
			assert.NoError(t, err, "offset=%d limit=%d", tt.offset, tt.limit)
		}
	}
}

func TestItems(t *testing.T) {
	assert.NoError(t, Items([]int{1, 2, 3}, "ids", 0, 0))
	assert.Error(t, Items([]int(nil), "ids", 0, 0))
	assert.Error(t, Items([]int{}, "ids", 0, 0))
	assert.Error(t, Items(make([]int, 501), "ids", 0, 0))
	assert.NoError(t, Items(make([]int, 3), "ids", 2, 3))

	err := Items([]string{"a"}, "names", 2, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "names must contain between 2 and 10 items, got 1")
}

func TestBatchOptions(t *testing.T) {
	assert.NoError(t, BatchOptions(0))
	assert.NoError(t, BatchOptions(1))
	assert.NoError(t, BatchOptions(50))
	assert.Error(t, BatchOptions(51))
	assert.Error(t, BatchOptions(-1))
}
