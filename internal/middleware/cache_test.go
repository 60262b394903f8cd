package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/flakonuz/catalog-backend/internal/config"
)

func TestResponseCache_DisabledIsPassThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/products/list", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := ResponseCache(config.CacheConfig{Enabled: false}, nil)(func(c echo.Context) error {
		return c.String(http.StatusOK, "fresh")
	})

	assert.NoError(t, h(c))
	assert.Equal(t, "fresh", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestPayloadCodec(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	raw, err := encodePayload(http.StatusOK, hdr, []byte(`{"ok":true}`))
	assert.NoError(t, err)

	status, gotHdr, body, err := decodePayload(raw)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, `{"ok":true}`, string(body))
}

func TestDecodePayload_Malformed(t *testing.T) {
	_, _, _, err := decodePayload([]byte{1, 2, 3})
	assert.Error(t, err)

	raw, _ := encodePayload(http.StatusOK, http.Header{}, nil)
	_, _, _, err = decodePayload(raw[:len(raw)-1])
	assert.Error(t, err)
}
