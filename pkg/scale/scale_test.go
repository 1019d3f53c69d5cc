// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scale

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panickingDecodeable struct{}

func (*panickingDecodeable) Decode(Decoder) error {
	panic("boom")
}

func Test_Marshal(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		value    interface{}
		expected []byte
	}{
		"uint8":       {value: uint8(7), expected: []byte{7}},
		"uint32":      {value: uint32(0x01020304), expected: []byte{4, 3, 2, 1}},
		"bool":        {value: true, expected: []byte{1}},
		"bytes":       {value: []byte("pop"), expected: []byte{12, 'p', 'o', 'p'}},
		"string":      {value: "pop", expected: []byte{12, 'p', 'o', 'p'}},
		"fixed_array": {value: [2]byte{1, 2}, expected: []byte{1, 2}},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			encoded, err := Marshal(testCase.value)

			require.NoError(t, err)
			assert.Equal(t, testCase.expected, encoded)
		})
	}
}

func Test_Unmarshal(t *testing.T) {
	t.Parallel()

	t.Run("short_input", func(t *testing.T) {
		t.Parallel()
		var value uint32
		err := Unmarshal([]byte{1, 2}, &value)
		assert.ErrorIs(t, err, ErrDecoding)
	})

	t.Run("trailing_bytes_ignored", func(t *testing.T) {
		t.Parallel()
		var value uint8
		err := Unmarshal([]byte{1, 2}, &value)
		require.NoError(t, err)
		assert.Equal(t, uint8(1), value)
	})

	t.Run("panic_recovered", func(t *testing.T) {
		t.Parallel()
		err := Unmarshal([]byte{1}, &panickingDecodeable{})
		assert.ErrorIs(t, err, ErrDecoding)
		assert.ErrorContains(t, err, "boom")
	})
}

func Test_DecodeBytes(t *testing.T) {
	t.Parallel()

	long := bytes.Repeat([]byte{0xab}, 3*readChunkSize+5)
	buffer := bytes.NewBuffer(nil)
	require.NoError(t, EncodeBytes(*NewEncoder(buffer), long))

	testCases := map[string]struct {
		input       []byte
		expected    []byte
		errExpected bool
	}{
		"empty": {
			input:    []byte{0},
			expected: []byte{},
		},
		"short": {
			input:    []byte{12, 'p', 'o', 'p'},
			expected: []byte("pop"),
		},
		"several_chunks": {
			input:    buffer.Bytes(),
			expected: long,
		},
		"length_prefix_larger_than_input": {
			// compact 2^30 - 1 followed by a single byte
			input:       []byte{0xfe, 0xff, 0xff, 0xff, 1},
			errExpected: true,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			decoded, err := DecodeBytes(*NewDecoder(bytes.NewReader(testCase.input)))

			if testCase.errExpected {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, decoded)
		})
	}
}

func Test_DecodeCompact(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	require.NoError(t, EncodeCompact(*NewEncoder(buffer), 1<<40))

	value, err := DecodeCompact(*NewDecoder(bytes.NewReader(buffer.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<40), value)

	// big integer mode with 9 bytes, larger than 64 bits
	overflowing := []byte{0x17, 0, 0, 0, 0, 0, 0, 0, 0, 1}
	_, err = DecodeCompact(*NewDecoder(bytes.NewReader(overflowing)))
	assert.ErrorIs(t, err, ErrCompactOverflow)
}

func Test_EncodeVariant_DecodeFields(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	err := EncodeVariant(*NewEncoder(buffer), 7, uint32(1), []byte("pop"), true)
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 1, 0, 0, 0, 12, 'p', 'o', 'p', 1}, buffer.Bytes())

	decoder := NewDecoder(bytes.NewReader(buffer.Bytes()))
	index, err := decoder.ReadOneByte()
	require.NoError(t, err)
	assert.Equal(t, byte(7), index)

	var (
		number uint32
		data   []byte
		flag   bool
	)
	err = DecodeFields(*decoder, &number, &data, &flag)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), number)
	assert.Equal(t, []byte("pop"), data)
	assert.True(t, flag)

	err = DecodeFields(*decoder, &number)
	assert.Error(t, err)
}
