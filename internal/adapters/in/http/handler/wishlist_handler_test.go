// internal/adapters/in/http/handler/wishlist_handler_test.go
package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	outmem "agromart/internal/adapters/out/memory"
	"agromart/internal/application/query/dto"
	usecase "agromart/internal/application/usecase"
)

func newWishlistServer(t *testing.T) *httptest.Server {
	t.Helper()

	uc := usecase.NewWishlistUsecase(outmem.NewWishlistRepositoryMem())
	h := NewWishlistHandler(uc)

	mux := http.NewServeMux()
	mux.Handle("/shop/me/wishlist", h)
	mux.Handle("/shop/me/wishlist/", h)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func decodeWishlistDTO(t *testing.T, data []byte) dto.WishlistDTO {
	t.Helper()
	var v dto.WishlistDTO
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

func TestWishlistFlow(t *testing.T) {
	srv := newWishlistServer(t)
	base := srv.URL + "/shop/me/wishlist"

	// empty to start
	resp, body := doJSON(t, http.MethodGet, base+"?userId=u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v := decodeWishlistDTO(t, body)
	assert.Equal(t, "u1", v.UserID)
	assert.Empty(t, v.Items)

	// save twice: set semantics
	for i := 0; i < 2; i++ {
		resp, body = doJSON(t, http.MethodPost, base+"/items?userId=u1", map[string]any{
			"product": map[string]any{"id": "p1", "name": "Tomato Seeds", "price": 45.99},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	v = decodeWishlistDTO(t, body)
	require.Len(t, v.Items, 1)
	assert.Equal(t, "p1", v.Items[0].ProductID)
	assert.Equal(t, "45.99", v.Items[0].Product.Price.String())

	// remove
	resp, body = doJSON(t, http.MethodDelete, base+"/items?userId=u1", map[string]any{
		"productId": "p1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v = decodeWishlistDTO(t, body)
	assert.Empty(t, v.Items)

	// clear is fine on an already-empty list
	resp, body = doJSON(t, http.MethodDelete, base+"?userId=u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v = decodeWishlistDTO(t, body)
	assert.Empty(t, v.Items)
}

func TestWishlistMissingUserIDIs400(t *testing.T) {
	srv := newWishlistServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/shop/me/wishlist", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
