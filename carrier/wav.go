package carrier

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// Audio is a PCM WAV carrier. Each audio sample contributes its low byte
// to the sample stream, so a parity change moves the sample by one step.
type Audio struct {
	buf      *audio.IntBuffer
	bitDepth int
	metadata *wav.Metadata
	samples  []byte
}

// DecodeWAV decodes an integer PCM WAV container.
func DecodeWAV(data []byte) (*Audio, error) {
	decoder := wav.NewDecoder(bytes.NewReader(data))
	if !decoder.IsValidFile() {
		if err := decoder.Err(); err != nil {
			return nil, fmt.Errorf("failed to decode WAV: %w", err)
		}
		return nil, fmt.Errorf("failed to decode WAV: invalid or empty file")
	}
	if decoder.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: WAV audio format %d is not integer PCM", ErrUnsupportedFormat, decoder.WavAudioFormat)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	metadata, err := readWAVMetadata(data)
	if err != nil {
		return nil, err
	}
	return NewAudio(buf, int(decoder.BitDepth), metadata), nil
}

// readWAVMetadata scans every chunk for INFO metadata. wav.Encoder writes
// the LIST chunk after the PCM data, where the PCM decoder never looks.
func readWAVMetadata(data []byte) (*wav.Metadata, error) {
	decoder := wav.NewDecoder(bytes.NewReader(data))
	decoder.ReadMetadata()
	if err := decoder.Err(); err != nil {
		return nil, fmt.Errorf("failed to read WAV metadata: %w", err)
	}
	return decoder.Metadata, nil
}

// Info returns the INFO metadata carried over from the decoded file, or nil.
func (a *Audio) Info() *wav.Metadata {
	return a.metadata
}

// NewAudio wraps a PCM buffer of the given bit depth. metadata may be nil.
func NewAudio(buf *audio.IntBuffer, bitDepth int, metadata *wav.Metadata) *Audio {
	samples := make([]byte, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = byte(v)
	}

	return &Audio{
		buf:      buf,
		bitDepth: bitDepth,
		metadata: metadata,
		samples:  samples,
	}
}

func (a *Audio) Samples() []byte {
	return a.samples
}

func (a *Audio) Metadata() Metadata {
	return Metadata{
		Format:     FormatWAV,
		Width:      a.buf.NumFrames(),
		Height:     1,
		Layout:     "pcm",
		BitDepth:   a.bitDepth,
		Channels:   a.buf.Format.NumChannels,
		SampleRate: a.buf.Format.SampleRate,
	}
}

// Buffer returns the PCM buffer with the current samples applied.
func (a *Audio) Buffer() *audio.IntBuffer {
	for i, b := range a.samples {
		a.buf.Data[i] = a.buf.Data[i]&^0xFF | int(b)
	}
	return a.buf
}

// Encode writes the PCM data as a WAV container with the original format
// and INFO metadata. wav.Encoder needs to seek back to patch chunk sizes, so
// writers that cannot seek go through a temporary file.
func (a *Audio) Encode(w io.Writer) error {
	if ws, ok := w.(io.WriteSeeker); ok {
		return a.encodeTo(ws)
	}

	tempFile, err := os.CreateTemp("", "carrier_*.wav")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()

	if err := a.encodeTo(tempFile); err != nil {
		return err
	}

	if _, err := tempFile.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind WAV data: %w", err)
	}
	if _, err := io.Copy(w, tempFile); err != nil {
		return fmt.Errorf("failed to copy WAV data: %w", err)
	}
	return nil
}

func (a *Audio) encodeTo(ws io.WriteSeeker) error {
	buf := a.Buffer()
	encoder := wav.NewEncoder(ws, buf.Format.SampleRate, a.bitDepth, buf.Format.NumChannels, wavFormatPCM)
	encoder.Metadata = a.metadata

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to encode WAV: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to close WAV encoder: %w", err)
	}
	return nil
}
