/*
 * MIT License
 *
 * Copyright (c) 2024-2026 Holon Authors
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

package persistence

import (
	"errors"

	"github.com/klauspost/compress/zstd"

	herrors "github.com/holonhq/holon/errors"
)

// Snapshot payloads above this size are zstd-compressed. Small states gain
// nothing from compression.
const compressThreshold = 1024

const (
	formatRaw  byte = 0x0
	formatZstd byte = 0x1
)

var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// Pack prepares a serialized state payload for storage: a one-byte format
// tag followed by the raw or zstd-compressed body.
func Pack(data []byte) ([]byte, error) {
	if len(data) < compressThreshold {
		out := make([]byte, 0, len(data)+1)
		out = append(out, formatRaw)
		return append(out, data...), nil
	}
	out := make([]byte, 1, len(data)/2+1)
	out[0] = formatZstd
	return zstdEncoder.EncodeAll(data, out), nil
}

// Unpack restores a payload written by Pack. A payload that cannot be
// decoded surfaces ErrCorruptSnapshot; the runtime poisons the identity
// instead of silently resetting state.
func Unpack(packed []byte) ([]byte, error) {
	if len(packed) == 0 {
		return nil, herrors.NewErrCorruptSnapshot(errors.New("empty payload"))
	}
	switch packed[0] {
	case formatRaw:
		return packed[1:], nil
	case formatZstd:
		data, err := zstdDecoder.DecodeAll(packed[1:], nil)
		if err != nil {
			return nil, herrors.NewErrCorruptSnapshot(err)
		}
		return data, nil
	default:
		return nil, herrors.NewErrCorruptSnapshot(errors.New("unknown format tag"))
	}
}
