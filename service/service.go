// Package service runs the codec against encoded carrier files.
package service

import (
	"bytes"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"lsb-steganography/carrier"
	"lsb-steganography/quality"
	"lsb-steganography/stego"
)

type EmbedResult struct {
	Data           []byte
	Metadata       carrier.Metadata
	CapacityBytes  int
	FrameBits      int
	UsagePercent   float64
	ChangedSamples int
	PSNR           float64
}

type ExtractResult struct {
	Payload  []byte
	Metadata carrier.Metadata
}

type CapacityResult struct {
	Metadata      carrier.Metadata
	Samples       int
	CapacityBits  int
	CapacityBytes int
}

type Service struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// Embed hides payload in the carrier encoded in cover and returns the
// re-encoded carrier.
func (s *Service) Embed(cover, payload []byte) (*EmbedResult, error) {
	c, err := carrier.Decode(cover)
	if err != nil {
		return nil, err
	}

	meta := c.Metadata()
	samples := c.Samples()
	original := append([]byte(nil), samples...)

	if err := stego.Embed(samples, payload); err != nil {
		var capacityErr *stego.CapacityError
		if errors.As(err, &capacityErr) {
			s.logger.Warn("carrier is too small",
				zap.String("format", string(meta.Format)),
				zap.Int("required", capacityErr.Required),
				zap.Int("available", capacityErr.Available),
			)
		}
		return nil, fmt.Errorf("failed to embed payload: %w", err)
	}

	out := new(bytes.Buffer)
	if err := c.Encode(out); err != nil {
		return nil, err
	}

	report := quality.Compare(original, samples)
	result := &EmbedResult{
		Data:           out.Bytes(),
		Metadata:       meta,
		CapacityBytes:  stego.MaxPayload(len(samples)),
		FrameBits:      stego.FrameBits(len(payload)),
		UsagePercent:   stego.Usage(len(payload), len(samples)),
		ChangedSamples: report.Changed,
		PSNR:           report.PSNR,
	}

	s.logger.Info("payload embedded",
		zap.String("format", string(meta.Format)),
		zap.Int("width", meta.Width),
		zap.Int("height", meta.Height),
		zap.Int("payload_bytes", len(payload)),
		zap.Int("frame_bits", result.FrameBits),
		zap.Int("samples", len(samples)),
		zap.Float64("usage_percent", result.UsagePercent),
		zap.Int("changed_samples", result.ChangedSamples),
		zap.Stringer("psnr", report),
	)
	return result, nil
}

// Extract recovers the payload hidden in the carrier encoded in data.
func (s *Service) Extract(data []byte) (*ExtractResult, error) {
	c, err := carrier.Decode(data)
	if err != nil {
		return nil, err
	}

	meta := c.Metadata()
	payload, err := stego.Extract(c.Samples())
	if err != nil {
		s.logger.Warn("no frame found in carrier",
			zap.String("format", string(meta.Format)),
			zap.Int("samples", len(c.Samples())),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to extract payload: %w", err)
	}

	s.logger.Info("payload extracted",
		zap.String("format", string(meta.Format)),
		zap.Int("payload_bytes", len(payload)),
	)
	return &ExtractResult{Payload: payload, Metadata: meta}, nil
}

// Capacity reports how large a payload the carrier encoded in data holds.
func (s *Service) Capacity(data []byte) (*CapacityResult, error) {
	c, err := carrier.Decode(data)
	if err != nil {
		return nil, err
	}

	samples := len(c.Samples())
	capacityBytes := stego.MaxPayload(samples)

	s.logger.Debug("carrier capacity",
		zap.Int("samples", samples),
		zap.Int("capacity_bytes", capacityBytes),
	)
	return &CapacityResult{
		Metadata:      c.Metadata(),
		Samples:       samples,
		CapacityBits:  capacityBytes * 8,
		CapacityBytes: capacityBytes,
	}, nil
}
