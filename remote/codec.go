/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package remote

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"google.golang.org/protobuf/proto"

	gerrors "github.com/tochemey/actorcore/errors"
)

// Codec turns messages into NATS payloads and back.
// Implementations must be safe for concurrent use.
type Codec[M any] interface {
	// Encode serializes msg
	Encode(msg M) ([]byte, error)
	// Decode deserializes data. Malformed data yields an error wrapping
	// ErrInvalidPayload.
	Decode(data []byte) (M, error)
}

// ProtoCodec encodes protocol buffers messages, optionally zstd-compressed
type ProtoCodec[M proto.Message] struct {
	factory func() M
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

var _ Codec[proto.Message] = (*ProtoCodec[proto.Message])(nil)

// NewProtoCodec creates a ProtoCodec. factory returns an empty message to
// decode into. WithCompression enables Zstandard compression.
func NewProtoCodec[M proto.Message](factory func() M, opts ...Option) (*ProtoCodec[M], error) {
	o := newOptions(opts...)
	codec := &ProtoCodec[M]{factory: factory}
	if !o.compression {
		return codec, nil
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(0),
		zstd.WithDecoderMaxMemory(64<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	codec.encoder = encoder
	codec.decoder = decoder
	return codec, nil
}

// Encode implements Codec
func (c *ProtoCodec[M]) Encode(msg M) ([]byte, error) {
	bytea, err := proto.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", msg, err)
	}

	if c.encoder == nil {
		return bytea, nil
	}
	return c.encoder.EncodeAll(bytea, make([]byte, 0, len(bytea))), nil
}

// Decode implements Codec
func (c *ProtoCodec[M]) Decode(data []byte) (M, error) {
	var zero M
	if c.decoder != nil {
		plain, err := c.decoder.DecodeAll(data, nil)
		if err != nil {
			return zero, fmt.Errorf("%w: %w", gerrors.ErrInvalidPayload, err)
		}
		data = plain
	}

	msg := c.factory()
	if err := proto.Unmarshal(data, msg); err != nil {
		return zero, fmt.Errorf("%w: %w", gerrors.ErrInvalidPayload, err)
	}
	return msg, nil
}

// Close releases the decoder resources
func (c *ProtoCodec[M]) Close() {
	if c.decoder != nil {
		c.decoder.Close()
	}
}
