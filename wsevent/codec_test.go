package wsevent

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertEventsEqual(t *testing.T, expected, actual []Event) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.Truef(t, expected[i].Equal(actual[i]), "event %d: expected %q, got %q", i, expected[i], actual[i])
	}
}

func TestEncode(t *testing.T) {
	out := Encode([]Event{
		NewTextEvent(TypeText, "Hello"),
		NewTextEvent(TypeText, ""),
		NewEvent(TypeText),
	})
	assert.Equal(t, "TEXT 5\r\nHello\r\nTEXT 0\r\n\r\nTEXT\r\n", string(out))
}

func TestEncodeOpen(t *testing.T) {
	assert.Equal(t, "OPEN\r\n", string(Encode([]Event{NewEvent(TypeOpen)})))
}

func TestEncodeNothing(t *testing.T) {
	assert.Empty(t, Encode(nil))
	assert.Empty(t, Encode([]Event{}))
}

func TestEncodeHexLength(t *testing.T) {
	out := Encode([]Event{NewPayloadEvent(TypeBinary, make([]byte, 254))})
	assert.True(t, strings.HasPrefix(string(out), "BINARY fe\r\n"), "%q", out[:12])
	assert.Len(t, out, len("BINARY fe\r\n")+254+2)
}

// The length prefix counts bytes: "😀" is one character but four bytes.
func TestEncodeMultiByteLength(t *testing.T) {
	out := Encode([]Event{NewTextEvent(TypeText, "a😀")})
	assert.Equal(t, "TEXT 5\r\na😀\r\n", string(out))
}

func TestDecodeEmpty(t *testing.T) {
	events, err := Decode([]byte{})
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)

	events, err = Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDecodeOpen(t *testing.T) {
	events, err := Decode([]byte("OPEN\r\n"))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, TypeOpen, events[0].Type())
	assert.False(t, events[0].HasPayload())
	payload, ok := events[0].Payload()
	assert.False(t, ok)
	assert.Nil(t, payload)
}

func TestDecodeEmptyPayloadIsPresent(t *testing.T) {
	events, err := Decode([]byte("TEXT 0\r\n\r\n"))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, TypeText, events[0].Type())
	payload, ok := events[0].Payload()
	assert.True(t, ok)
	assert.Empty(t, payload)

	events, err = Decode([]byte("TEXT\r\n"))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].HasPayload())
}

func TestDecodeSequence(t *testing.T) {
	events, err := Decode([]byte("OPEN\r\nTEXT 5\r\nHello\r\nTEXT 0\r\n\r\nCLOSE 2\r\n\x03\xe8\r\n"))
	require.NoError(t, err)
	assertEventsEqual(t, []Event{
		NewEvent(TypeOpen),
		NewTextEvent(TypeText, "Hello"),
		NewTextEvent(TypeText, ""),
		NewCloseEvent(1000),
	}, events)
	code, ok := events[3].CloseCode()
	assert.True(t, ok)
	assert.Equal(t, 1000, code)
}

func TestDecodeUppercaseHex(t *testing.T) {
	payload := bytes.Repeat([]byte{'x'}, 0x1A)
	events, err := Decode(append(append([]byte("TEXT 1A\r\n"), payload...), '\r', '\n'))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 0x1A, events[0].Len())
}

// Payload bytes that look like CRLF or a type line are consumed by length,
// never scanned.
func TestDecodePayloadContainingCRLF(t *testing.T) {
	events, err := Decode([]byte("TEXT 9\r\na\r\nTEXT\r\n\r\nPING\r\n"))
	require.NoError(t, err)
	require.Len(t, events, 2)
	s, ok := events[0].Text()
	assert.True(t, ok)
	assert.Equal(t, "a\r\nTEXT\r\n", s)
	assert.Equal(t, TypePing, events[1].Type())
}

func TestDecodeMultiByte(t *testing.T) {
	// The first payload holds 4-byte characters; the second event must still
	// be found at the right byte offset.
	body := []byte("TEXT 9\r\n😀😀!\r\nTEXT 3\r\n€\r\n")
	events, err := Decode(body)
	require.NoError(t, err)
	require.Len(t, events, 2)
	s, ok := events[0].Text()
	require.True(t, ok)
	assert.Equal(t, "😀😀!", s)
	s, ok = events[1].Text()
	require.True(t, ok)
	assert.Equal(t, "€", s)
}

func TestDecodeBinaryPayload(t *testing.T) {
	raw := []byte{0x00, 0xff, 0x0d, 0x0a, 0xc3}
	events, err := Decode(Encode([]Event{NewPayloadEvent(TypeBinary, raw)}))
	require.NoError(t, err)
	require.Len(t, events, 1)
	payload, ok := events[0].Payload()
	require.True(t, ok)
	assert.Equal(t, raw, payload)
	_, ok = events[0].Text()
	assert.False(t, ok)
}

func TestDecodeErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		input  string
		err    error
		offset int
	}{
		{"no terminator", "TEXT 5", ErrTruncatedHeader, 0},
		{"second header truncated", "OPEN\r\nTEXT", ErrTruncatedHeader, 6},
		{"trailing garbage", "TEXT 2\r\nhi\r\nxx", ErrTruncatedHeader, 12},
		{"lone CR", "OPEN\r", ErrTruncatedHeader, 0},
		{"not hex", "TEXT zz\r\n", ErrInvalidLength, 5},
		{"empty length", "TEXT \r\n\r\n", ErrInvalidLength, 5},
		{"negative length", "TEXT -1\r\n\r\n", ErrInvalidLength, 5},
		{"0x prefix", "TEXT 0x1\r\na\r\n", ErrInvalidLength, 5},
		{"second space", "TEXT 1 2\r\na\r\n", ErrInvalidLength, 5},
		{"overflow", "TEXT 1ffffffffffffffff\r\n", ErrInvalidLength, 5},
		{"short payload", "TEXT 5\r\nHel", ErrTruncatedPayload, 8},
		{"huge length", "TEXT ffffffffffffffff\r\nabc\r\n", ErrTruncatedPayload, 23},
		{"payload without terminator", "TEXT 5\r\nHello", ErrMissingPayloadTerminator, 13},
		{"payload overruns terminator", "TEXT 3\r\nHello\r\n", ErrMissingPayloadTerminator, 11},
		{"empty type line", "\r\n", ErrEmptyType, 0},
		{"empty type with length", "OPEN\r\n 0\r\n\r\n", ErrEmptyType, 6},
		{"LF in type", "OPEN\r\nA\nB\r\n", ErrInvalidType, 6},
		{"CR in type with length", "A\rB 0\r\n\r\n", ErrInvalidType, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			events, err := Decode([]byte(tc.input))
			require.Error(t, err)
			assert.Nil(t, events)
			assert.True(t, errors.Is(err, tc.err), "expected %v, got %v", tc.err, err)
			var fe *FramingError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tc.offset, fe.Offset)
		})
	}
}

func TestEncodeZeroEventPanics(t *testing.T) {
	assert.Panics(t, func() { Encode([]Event{NewEvent(TypeOpen), {}}) })
}

func TestEncodeCannotInjectEvents(t *testing.T) {
	for _, typ := range []string{"A\r\nB", "A\r\nTEXT 0\r\n"} {
		assert.Panics(t, func() { Encode([]Event{NewEvent(typ)}) }, "type %q", typ)
	}
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	body := []byte("TEXT 3\r\nabc\r\n")
	events, err := Decode(body)
	require.NoError(t, err)
	body[8] = 'X'
	s, _ := events[0].Text()
	assert.Equal(t, "abc", s)
}

func TestRoundTrip(t *testing.T) {
	big := bytes.Repeat([]byte("0123456789abcdef"), 300)
	for _, events := range [][]Event{
		{},
		{NewEvent(TypeOpen)},
		{NewTextEvent(TypeText, "")},
		{NewEvent(TypeText), NewTextEvent(TypeText, ""), NewTextEvent(TypeText, "x")},
		{NewTextEvent(TypeText, "🎉 multi-byte ✓ ünïcödé")},
		{NewPayloadEvent(TypeBinary, []byte{0, 1, 2, 0xfe, 0xff})},
		{NewPayloadEvent(TypeBinary, big), NewCloseEvent(1001), NewEvent(TypeDisconnect)},
		{NewEvent(TypePing), NewPayloadEvent(TypePong, nil)},
	} {
		decoded, err := Decode(Encode(events))
		require.NoError(t, err)
		assertEventsEqual(t, events, decoded)
	}
}

// FuzzDecode checks that Decode never panics and that anything it accepts
// re-encodes to the same events.
func FuzzDecode(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("OPEN\r\n"))
	f.Add([]byte("TEXT 0\r\n\r\n"))
	f.Add([]byte("TEXT 5\r\nHello\r\nTEXT\r\n"))
	f.Add([]byte("BINARY 2\r\n\xff\x00\r\n"))
	f.Fuzz(func(t *testing.T, data []byte) {
		events, err := Decode(data)
		if err != nil {
			if events != nil {
				t.Fatalf("partial result on error: %v", events)
			}
			return
		}
		again, err := Decode(Encode(events))
		if err != nil {
			t.Fatalf("re-decoding encoded events: %v", err)
		}
		if len(again) != len(events) {
			t.Fatalf("expected %d events, got %d", len(events), len(again))
		}
		for i := range events {
			if !events[i].Equal(again[i]) {
				t.Fatalf("event %d changed: %q -> %q", i, events[i], again[i])
			}
		}
	})
}
