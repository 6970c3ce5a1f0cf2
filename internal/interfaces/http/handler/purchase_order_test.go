package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrs/backend/internal/domain/shared"
)

func TestPurchaseOrderDownload(t *testing.T) {
	f := setupAPI(t)
	id := f.fileRequest(t)
	f.approve(t, id)
	data := f.reserve(t, id)
	poNumber := data["finance"].(map[string]any)["po_number"].(string)

	w := f.do(t, http.MethodGet, "/api/v1/requests/"+id+"/purchase-order", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), poNumber+".pdf")
	assert.Contains(t, w.Body.String(), poNumber)
}

func TestPurchaseOrderDownload_NoDocument(t *testing.T) {
	f := setupAPI(t)
	id := f.fileRequest(t)

	w := f.do(t, http.MethodGet, "/api/v1/requests/"+id+"/purchase-order", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, shared.CodeNoDocumentGenerated, errorOf(t, w)["code"])
}

func TestPurchaseOrderDownload_RegeneratesWhenStoreMissesDocument(t *testing.T) {
	f := setupAPI(t)
	id := f.fileRequest(t)
	f.approve(t, id)

	// Rendering fails during assignment: reservation commits without a
	// stored document
	f.renderer.failNext = true
	data := f.reserve(t, id)
	fin := data["finance"].(map[string]any)
	assert.Nil(t, fin["document_id"])
	assert.NotEmpty(t, fin["po_number"])

	// The fetch path re-renders on demand
	f.renderer.failNext = false
	w := f.do(t, http.MethodGet, "/api/v1/requests/"+id+"/purchase-order", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fin["po_number"].(string))
}

func TestPurchaseOrderList(t *testing.T) {
	f := setupAPI(t)

	// One reserved, one still pending
	reserved := f.fileRequest(t)
	f.approve(t, reserved)
	f.reserve(t, reserved)
	f.fileRequest(t)

	w := f.do(t, http.MethodGet, "/api/v1/purchase-orders", nil, f.finance)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w)["data"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, reserved, items[0].(map[string]any)["id"])

	t.Run("payment status filter", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/purchase-orders?payment_status=PAID", nil, f.finance)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode(t, w)["data"])

		w = f.do(t, http.MethodGet, "/api/v1/purchase-orders?payment_status=UNPAID", nil, f.finance)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["data"].([]any), 1)
	})

	t.Run("invalid payment status", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/purchase-orders?payment_status=MAYBE", nil, f.finance)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("date range filter", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/purchase-orders?from=2026-03-01&to=2026-03-31", nil, f.finance)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["data"].([]any), 1)

		w = f.do(t, http.MethodGet, "/api/v1/purchase-orders?from=2026-06-01", nil, f.finance)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode(t, w)["data"])
	})
}

func TestPurchaseOrderExport(t *testing.T) {
	f := setupAPI(t)
	id := f.fileRequest(t)
	f.approve(t, id)
	f.reserve(t, id)

	w := f.do(t, http.MethodGet, "/api/v1/purchase-orders/export", nil, f.finance)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bons-de-commande-")
	assert.Contains(t, w.Body.String(), "export 1")
}

func TestPurchaseOrderExport_BadDateFormat(t *testing.T) {
	f := setupAPI(t)

	w := f.do(t, http.MethodGet, "/api/v1/purchase-orders/export?from=31/03/2026", nil, f.finance)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
