package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/xurp-ia/xurp-api/docs"
)

func TestReadDoc_DocumentoRegistrado(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Contains(t, doc.Paths, "/api/projects/{id}/report.pdf")
	assert.Contains(t, doc.Paths["/api/ai-tasks/assign-daily/{projectId}"], "post")
}
