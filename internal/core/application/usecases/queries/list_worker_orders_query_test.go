package queries_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListWorkerOrdersQuery_Valid(t *testing.T) {
	query := queries.NewListWorkerOrdersQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestListWorkerOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ListWorkerOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrListWorkerOrdersQueryIsNotConstructed)
}
