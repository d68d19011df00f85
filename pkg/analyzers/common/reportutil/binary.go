package reportutil

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/pierrec/lz4/v4"

	"github.com/Sumatoshi-tech/codegauge/pkg/safeconv"
)

const (
	// BinaryMagic marks Codegauge binary envelopes.
	BinaryMagic = "CGB1"
	// binaryHeaderSize is magic bytes + raw length bytes + compressed length bytes.
	binaryHeaderSize = 12
)

var (
	// ErrInvalidBinaryEnvelope indicates malformed or truncated binary payload.
	ErrInvalidBinaryEnvelope = errors.New("invalid binary envelope")
	// ErrBinaryPayloadTooLarge indicates payload exceeds binary envelope limit.
	ErrBinaryPayloadTooLarge = errors.New("binary payload too large")
)

// EncodeBinaryEnvelope serializes any JSON-serializable value into an
// LZ4-compressed binary envelope. The header stores the uncompressed size so
// decoding can allocate the exact buffer.
func EncodeBinaryEnvelope(value any, writer io.Writer) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal binary payload: %w", err)
	}

	if len(payload) > math.MaxUint32 {
		return fmt.Errorf("%w: %d bytes", ErrBinaryPayloadTooLarge, len(payload))
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(payload)))

	written, err := lz4.CompressBlock(payload, compressed, nil)
	if err != nil {
		return fmt.Errorf("compress binary payload: %w", err)
	}

	// Incompressible payloads are stored verbatim, signalled by a zero
	// compressed length.
	stored := compressed[:written]
	if written == 0 || written >= len(payload) {
		stored = payload
		written = 0
	}

	header := make([]byte, binaryHeaderSize)
	copy(header[:4], BinaryMagic)
	binary.LittleEndian.PutUint32(header[4:8], safeconv.MustIntToUint32(len(payload)))
	binary.LittleEndian.PutUint32(header[8:12], safeconv.MustIntToUint32(written))

	_, err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("write binary header: %w", err)
	}

	_, err = writer.Write(stored)
	if err != nil {
		return fmt.Errorf("write binary payload: %w", err)
	}

	return nil
}

// DecodeBinaryEnvelope extracts the JSON payload from a binary envelope.
func DecodeBinaryEnvelope(reader io.Reader) ([]byte, error) {
	header := make([]byte, binaryHeaderSize)

	_, err := io.ReadFull(reader, header)
	if err != nil {
		return nil, errors.Join(ErrInvalidBinaryEnvelope, err)
	}

	if !bytes.Equal(header[:4], []byte(BinaryMagic)) {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalidBinaryEnvelope)
	}

	rawLen := binary.LittleEndian.Uint32(header[4:8])
	compressedLen := binary.LittleEndian.Uint32(header[8:12])

	if compressedLen == 0 {
		payload := make([]byte, rawLen)

		_, err = io.ReadFull(reader, payload)
		if err != nil {
			return nil, errors.Join(ErrInvalidBinaryEnvelope, err)
		}

		return payload, nil
	}

	compressed := make([]byte, compressedLen)

	_, err = io.ReadFull(reader, compressed)
	if err != nil {
		return nil, errors.Join(ErrInvalidBinaryEnvelope, err)
	}

	payload := make([]byte, rawLen)

	n, err := lz4.UncompressBlock(compressed, payload)
	if err != nil {
		return nil, errors.Join(ErrInvalidBinaryEnvelope, err)
	}

	if uint32(n) != rawLen { //nolint:gosec // n is bounded by len(payload)
		return nil, fmt.Errorf("%w: size mismatch", ErrInvalidBinaryEnvelope)
	}

	return payload, nil
}

// DecodeBinaryEnvelopes decodes all concatenated binary envelopes from bytes.
func DecodeBinaryEnvelopes(data []byte) ([][]byte, error) {
	reader := bytes.NewReader(data)
	payloads := make([][]byte, 0)

	for reader.Len() > 0 {
		payload, err := DecodeBinaryEnvelope(reader)
		if err != nil {
			return nil, err
		}

		payloads = append(payloads, payload)
	}

	return payloads, nil
}
