// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eternix

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarshalUnmarshall(t *testing.T) {
	originalHex := `"0x0000000000000000000000000000000000000000000000000000000000000007"`

	var unmarshaledValue Bytes32
	err := json.Unmarshal([]byte(originalHex), &unmarshaledValue)
	assert.NoError(t, err)
	assert.Equal(t, BytesToBytes32([]byte{7}), unmarshaledValue)

	marshalVal, err := json.Marshal(&unmarshaledValue)
	assert.NoError(t, err)
	assert.Equal(t, originalHex, string(marshalVal))
}

func TestParseBytes32(t *testing.T) {
	_, err := ParseBytes32("0x1234")
	assert.EqualError(t, err, "invalid length")

	_, err = ParseBytes32("zz" + "0000000000000000000000000000000000000000000000000000000000000000")
	assert.EqualError(t, err, "invalid prefix")

	b, err := ParseBytes32("0707070707070707070707070707070707070707070707070707070707070707")
	assert.NoError(t, err)
	for _, v := range b {
		assert.Equal(t, byte(7), v)
	}
}

func TestBytesToBytes32(t *testing.T) {
	long := make([]byte, 40)
	long[39] = 1
	long[0] = 0xff
	b := BytesToBytes32(long)
	assert.Equal(t, byte(1), b[31])
	assert.Equal(t, byte(0), b[0])
}

func TestCompare(t *testing.T) {
	a := BytesToBytes32([]byte{1})
	b := BytesToBytes32([]byte{2})
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}
