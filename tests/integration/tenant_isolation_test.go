package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/craftbase/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTenantIsolation verifies that two accounts on the same server never
// see each other's data, and that foreign ids behave exactly like missing
// ones.
func TestTenantIsolation(t *testing.T) {
	server := testutil.NewServer(t)
	bakeryToken := server.Signup(t, "Bakery Nord")
	soapToken := server.Signup(t, "Soap Barn")

	var bakeryFlour ingredientPayload
	rec := server.Request(t, http.MethodPost, "/api/v1/ingredients", bakeryToken, map[string]any{
		"name":          "Flour",
		"kind":          "raw",
		"unit":          "kg",
		"cost_per_unit": "0.80",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	testutil.DecodeData(t, rec, &bakeryFlour)

	t.Run("listings only show the caller's data", func(t *testing.T) {
		var mine []ingredientPayload
		rec := server.Request(t, http.MethodGet, "/api/v1/ingredients", bakeryToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		testutil.DecodeData(t, rec, &mine)
		assert.Len(t, mine, 1)

		var theirs []ingredientPayload
		rec = server.Request(t, http.MethodGet, "/api/v1/ingredients", soapToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		testutil.DecodeData(t, rec, &theirs)
		assert.Empty(t, theirs)
	})

	t.Run("a foreign id reads as missing", func(t *testing.T) {
		rec := server.Request(t, http.MethodGet, fmt.Sprintf("/api/v1/ingredients/%s", bakeryFlour.ID), soapToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", testutil.DecodeError(t, rec).Code)
	})

	t.Run("a foreign id cannot be deleted", func(t *testing.T) {
		rec := server.Request(t, http.MethodDelete, fmt.Sprintf("/api/v1/ingredients/%s", bakeryFlour.ID), soapToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		// The owner still sees it.
		rec = server.Request(t, http.MethodGet, fmt.Sprintf("/api/v1/ingredients/%s", bakeryFlour.ID), bakeryToken, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("a foreign id cannot be referenced", func(t *testing.T) {
		rec := server.Request(t, http.MethodPost, "/api/v1/recipes", soapToken, map[string]any{
			"name":       "Borrowed Recipe",
			"yield":      "1",
			"yield_unit": "pcs",
			"items": []map[string]any{
				{"ingredient_id": bakeryFlour.ID, "quantity": "1"},
			},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "REFERENCE_NOT_FOUND", testutil.DecodeError(t, rec).Code)
	})

	t.Run("each tenant sees its own account", func(t *testing.T) {
		var account struct {
			Name string `json:"name"`
		}
		rec := server.Request(t, http.MethodGet, "/api/v1/tenant", bakeryToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		testutil.DecodeData(t, rec, &account)
		assert.Equal(t, "Bakery Nord", account.Name)

		rec = server.Request(t, http.MethodGet, "/api/v1/tenant", soapToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		testutil.DecodeData(t, rec, &account)
		assert.Equal(t, "Soap Barn", account.Name)
	})
}
