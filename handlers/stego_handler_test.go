package handlers_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"lsb-steganography/config"
	"lsb-steganography/handlers"
	"lsb-steganography/models"
	"lsb-steganography/service"
)

func newRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := zaptest.NewLogger(t)
	cfg := config.DefaultConfig()
	cfg.MaxUploadBytes = 64 << 10

	h := handlers.NewStegoHandler(service.New(logger), logger, cfg.MaxUploadBytes)
	router, err := handlers.NewRouter(cfg, h, logger)
	require.NoError(t, err)
	return router
}

// grayPNG encodes a width x height gray image filled with value.
func grayPNG(t *testing.T, width, height int, value byte) []byte {
	m := image.NewGray(image.Rect(0, 0, width, height))
	for i := range m.Pix {
		m.Pix[i] = value
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, m))
	return buf.Bytes()
}

type formFile struct {
	field, name string
	data        []byte
}

func post(t *testing.T, router *gin.Engine, path string, files ...formFile) *httptest.ResponseRecorder {
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "healthy")
}

func TestEmbedThenExtract(t *testing.T) {
	req := require.New(t)
	router := newRouter(t)
	secret := []byte("meet at the usual place")

	rec := post(t, router, "/api/v1/stego/embed",
		formFile{"cover_file", "cover.png", grayPNG(t, 32, 32, 0x80)},
		formFile{"secret_file", "secret.txt", secret},
	)
	req.Equal(http.StatusOK, rec.Code, rec.Body.String())
	req.Equal("image/png", rec.Header().Get("Content-Type"))
	req.Equal("attachment; filename=cover_stego.png", rec.Header().Get("Content-Disposition"))
	req.Equal("124", rec.Header().Get("X-Stego-Capacity"))
	req.NotEmpty(rec.Header().Get("X-Stego-PSNR"))
	req.NotEmpty(rec.Header().Get("X-Stego-Usage"))

	rec = post(t, router, "/api/v1/stego/extract",
		formFile{"stego_file", "cover_stego.png", rec.Body.Bytes()},
	)
	req.Equal(http.StatusOK, rec.Code, rec.Body.String())
	req.Equal("application/octet-stream", rec.Header().Get("Content-Type"))
	req.Equal("attachment; filename=cover_stego_secret.bin", rec.Header().Get("Content-Disposition"))
	req.Equal(secret, rec.Body.Bytes())
}

func TestEmbedErrors(t *testing.T) {
	router := newRouter(t)

	for _, tc := range []struct {
		name   string
		files  []formFile
		status int
	}{
		{
			name:   "missing cover",
			files:  []formFile{{"secret_file", "s.txt", []byte("x")}},
			status: http.StatusBadRequest,
		},
		{
			name:   "missing secret",
			files:  []formFile{{"cover_file", "c.png", grayPNG(t, 8, 8, 0)}},
			status: http.StatusBadRequest,
		},
		{
			name: "unsupported extension",
			files: []formFile{
				{"cover_file", "c.gif", []byte("GIF89a")},
				{"secret_file", "s.txt", []byte("x")},
			},
			status: http.StatusUnsupportedMediaType,
		},
		{
			name: "unsupported content",
			files: []formFile{
				{"cover_file", "c.png", []byte("not an image")},
				{"secret_file", "s.txt", []byte("x")},
			},
			status: http.StatusUnsupportedMediaType,
		},
		{
			name: "secret too large",
			files: []formFile{
				{"cover_file", "c.png", grayPNG(t, 8, 8, 0)},
				{"secret_file", "s.txt", []byte("12345")},
			},
			status: http.StatusBadRequest,
		},
		{
			name: "upload over limit",
			files: []formFile{
				{"cover_file", "c.png", make([]byte, 128<<10)},
				{"secret_file", "s.txt", []byte("x")},
			},
			status: http.StatusBadRequest,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(t, router, "/api/v1/stego/embed", tc.files...)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())

			var resp models.EmbedResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.False(t, resp.Success)
			require.NotEmpty(t, resp.Message)
		})
	}
}

func TestExtractErrors(t *testing.T) {
	router := newRouter(t)

	// Every LSB set: the header claims 0xFFFFFFFF bits.
	rec := post(t, router, "/api/v1/stego/extract",
		formFile{"stego_file", "s.png", grayPNG(t, 16, 16, 0x01)},
	)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	// 16 samples cannot hold a header.
	rec = post(t, router, "/api/v1/stego/extract",
		formFile{"stego_file", "s.png", grayPNG(t, 4, 4, 0)},
	)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	rec = post(t, router, "/api/v1/stego/extract",
		formFile{"stego_file", "s.jpg", []byte{0xff, 0xd8, 0xff}},
	)
	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code, rec.Body.String())

	rec = post(t, router, "/api/v1/stego/extract")
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestCapacityEndpoint(t *testing.T) {
	req := require.New(t)
	router := newRouter(t)

	rec := post(t, router, "/api/v1/stego/capacity",
		formFile{"cover_file", "c.png", grayPNG(t, 10, 10, 0)},
	)
	req.Equal(http.StatusOK, rec.Code, rec.Body.String())

	var resp models.CapacityResponse
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	req.True(resp.Success)
	req.Equal(100, resp.Samples)
	req.Equal(8, resp.CapacityBytes)
	req.Equal(64, resp.CapacityBits)
	req.NotNil(resp.Carrier)
	req.Equal(10, resp.Carrier.Width)
}

func TestNewRouterRejectsBadOrigins(t *testing.T) {
	logger := zaptest.NewLogger(t)
	cfg := config.DefaultConfig()
	cfg.AllowOrigins = []string{"localhost:3000"}

	_, err := handlers.NewRouter(cfg, handlers.NewStegoHandler(service.New(logger), logger, cfg.MaxUploadBytes), logger)
	require.Error(t, err)
}
