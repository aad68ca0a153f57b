// Package handlers is made to handle requests
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lsb-steganography/carrier"
	"lsb-steganography/models"
	"lsb-steganography/quality"
	"lsb-steganography/service"
	"lsb-steganography/stego"
)

type StegoHandler struct {
	service        *service.Service
	logger         *zap.Logger
	maxUploadBytes int64
}

func NewStegoHandler(svc *service.Service, logger *zap.Logger, maxUploadBytes int64) *StegoHandler {
	return &StegoHandler{
		service:        svc,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *StegoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Steganography API is running",
		"version": "1.0.0",
	})
}

func (h *StegoHandler) EmbedMessage(c *gin.Context) {
	if err := h.parseForm(c); err != nil {
		c.JSON(http.StatusBadRequest, models.EmbedResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	coverData, coverName, err := readFormFile(c, "cover_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.EmbedResponse{
			Success: false,
			Message: fmt.Sprintf("Cover file is required: %v", err),
		})
		return
	}

	if !carrier.IsSupportedExtension(coverName) {
		c.JSON(http.StatusUnsupportedMediaType, models.EmbedResponse{
			Success: false,
			Message: "Invalid cover file format. Only PNG, BMP, TIFF and WAV files are supported",
		})
		return
	}

	secretData, _, err := readFormFile(c, "secret_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.EmbedResponse{
			Success: false,
			Message: fmt.Sprintf("Secret file is required: %v", err),
		})
		return
	}

	result, err := h.service.Embed(coverData, secretData)
	if err != nil {
		c.JSON(h.statusFor(err, http.StatusBadRequest), models.EmbedResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to embed secret data: %v", err),
		})
		return
	}

	baseFilename := strings.TrimSuffix(coverName, filepath.Ext(coverName))
	outputFilename := fmt.Sprintf("%s_stego%s", baseFilename, carrier.Extension(result.Metadata.Format))
	contentType := carrier.ContentType(result.Metadata.Format)

	// Set headers for file download
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputFilename))

	c.Header("X-Stego-Method", "LSB")
	c.Header("X-Stego-PSNR", quality.FormatPSNR(result.PSNR))
	c.Header("X-Stego-Capacity", fmt.Sprintf("%d", result.CapacityBytes))
	c.Header("X-Stego-Usage", fmt.Sprintf("%.2f", result.UsagePercent))
	c.Header("X-Stego-Changed", fmt.Sprintf("%d", result.ChangedSamples))

	c.Data(http.StatusOK, contentType, result.Data)
}

func (h *StegoHandler) ExtractMessage(c *gin.Context) {
	if err := h.parseForm(c); err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	stegoData, stegoName, err := readFormFile(c, "stego_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Stego file is required: %v", err),
		})
		return
	}

	result, err := h.service.Extract(stegoData)
	if err != nil {
		c.JSON(h.statusFor(err, http.StatusUnprocessableEntity), models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to extract secret data: %v", err),
		})
		return
	}

	baseFilename := strings.TrimSuffix(stegoName, filepath.Ext(stegoName))
	secretFilename := fmt.Sprintf("%s_secret.bin", baseFilename)

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", secretFilename))

	c.Data(http.StatusOK, "application/octet-stream", result.Payload)
}

func (h *StegoHandler) Capacity(c *gin.Context) {
	if err := h.parseForm(c); err != nil {
		c.JSON(http.StatusBadRequest, models.CapacityResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	coverData, _, err := readFormFile(c, "cover_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.CapacityResponse{
			Success: false,
			Message: fmt.Sprintf("Cover file is required: %v", err),
		})
		return
	}

	result, err := h.service.Capacity(coverData)
	if err != nil {
		c.JSON(h.statusFor(err, http.StatusUnprocessableEntity), models.CapacityResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read carrier: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, models.CapacityResponse{
		Success:       true,
		Samples:       result.Samples,
		CapacityBits:  result.CapacityBits,
		CapacityBytes: result.CapacityBytes,
		Carrier:       &result.Metadata,
	})
}

func (h *StegoHandler) parseForm(c *gin.Context) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	return c.Request.ParseMultipartForm(h.maxUploadBytes)
}

// statusFor maps err to a response status. capacityStatus is used for
// frames that do not fit their carrier.
func (h *StegoHandler) statusFor(err error, capacityStatus int) int {
	var (
		capacityErr *stego.CapacityError
		formatErr   *stego.FormatError
	)
	switch {
	case errors.Is(err, carrier.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &capacityErr), errors.Is(err, stego.ErrPayloadTooLarge):
		return capacityStatus
	case errors.As(err, &formatErr):
		return http.StatusUnprocessableEntity
	}
	h.logger.Error("request failed", zap.Error(err))
	return http.StatusInternalServerError
}

func readFormFile(c *gin.Context, field string) ([]byte, string, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}
