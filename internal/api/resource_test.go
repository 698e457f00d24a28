package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrsystem/hr-console/internal/domain/resource"
)

// staticTokens is a fixed-token TokenSource.
type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newCompetencyCollection(t *testing.T, handler http.HandlerFunc) *Collection[resource.Competency] {
	t.Helper()
	client := newTestClient(t, handler)
	return NewCollection(client, resource.Competencies(), staticTokens("tok"))
}

func TestCollection_List(t *testing.T) {
	t.Parallel()

	coll := newCompetencyCollection(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/competencies", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"status": true,
			"data": []map[string]any{
				{"competence_id": 1, "type": "Teamwork", "status": "active"},
				{"competence_id": 2, "type": "Leadership", "status": "disabled"},
			},
		})
	})

	records, err := coll.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0].ID)
	assert.Equal(t, "Teamwork", records[0].Type)
	assert.Equal(t, resource.StatusDisabled, records[1].Status)
}

func TestCollection_List_EmptyData(t *testing.T) {
	t.Parallel()

	coll := newCompetencyCollection(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"status": true, "data": nil})
	})

	records, err := coll.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCollection_Create(t *testing.T) {
	t.Parallel()

	coll := newCompetencyCollection(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/competencies", r.URL.Path)

		var draft resource.Competency
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, "Adaptability", draft.Type)

		draft.ID = 3
		writeJSON(t, w, http.StatusCreated, map[string]any{
			"status":  true,
			"message": "Competencia creada",
			"data":    draft,
		})
	})

	res, err := coll.Create(context.Background(), resource.Competency{Type: "Adaptability", Status: resource.StatusActive})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Record.ID)
	assert.Equal(t, "Competencia creada", res.Message)
}

func TestCollection_Update(t *testing.T) {
	t.Parallel()

	coll := newCompetencyCollection(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/competencies/3", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"status":  true,
			"message": "Competencia actualizada",
		})
	})

	res, err := coll.Update(context.Background(), 3, resource.Competency{ID: 3, Type: "Adaptability"})
	require.NoError(t, err)
	// A message-only response leaves the record at its zero value.
	assert.Equal(t, "Competencia actualizada", res.Message)
	assert.Zero(t, res.Record.ID)
}

func TestCollection_Remove(t *testing.T) {
	t.Parallel()

	coll := newCompetencyCollection(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/competencies/9", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"status":  "success",
			"message": "Competencia eliminada",
		})
	})

	msg, err := coll.Remove(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "Competencia eliminada", msg)
}

// The training collection lives under the singular "training" path.
func TestCollection_TrainingPath(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/training", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{"status": true, "data": []any{}})
	})
	coll := NewCollection(client, resource.Trainings(), staticTokens("tok"))

	_, err := coll.List(context.Background())
	require.NoError(t, err)
}

func TestCollection_ValidationErrorPassthrough(t *testing.T) {
	t.Parallel()

	coll := newCompetencyCollection(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, map[string]any{
			"status": false,
			"errors": map[string][]string{"type": {"El campo type es obligatorio"}},
		})
	})

	_, err := coll.Create(context.Background(), resource.Competency{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "type")
}
