package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := Load()
	require.NoError(t, err)

	status := doc.Paths.Find("/api/v1/delivery/orders/{id}/status")
	require.NotNil(t, status)
	require.NotNil(t, status.Patch)
	assert.Equal(t, "UpdateOrderStatus", status.Patch.OperationID)

	require.NotNil(t, doc.Paths.Find("/api/v1/delivery/orders"))
	assert.Len(t, doc.Components.Schemas["Status"].Value.Enum, 7)
}
