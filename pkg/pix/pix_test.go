package pix

import (
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRC16CheckValue(t *testing.T) {
	// Standard CRC-16/CCITT-FALSE check value.
	assert.Equal(t, "29B1", CRC16("123456789"))
	assert.Equal(t, "FFFF", CRC16(""))
	assert.Equal(t, "AED5", CRC16("br.gov.bcb.pix"))
}

func TestBuildPayloadGolden(t *testing.T) {
	got := BuildPayload("test-key", "NAME", "CITY", decimal.NewFromFloat(10.00), "")
	want := "00020126300014br.gov.bcb.pix0108test-key520400005303986540510.005802BR5904NAME6004CITY62070503***63043F14"
	assert.Equal(t, want, got)
}

func TestBuildPayloadChecksumMatchesBody(t *testing.T) {
	p := BuildPayload("pix@davanzo.com.br", "ASSADOS FAMILIA DAVANZO", "SAO PAULO", decimal.NewFromFloat(28.50), "")
	require.Greater(t, len(p), 8)
	body, crc := p[:len(p)-4], p[len(p)-4:]
	assert.True(t, strings.HasSuffix(body, "6304"))
	assert.Equal(t, CRC16(body), crc)
}

func TestEncodeFieldRoundTrip(t *testing.T) {
	cases := []struct {
		id    string
		value string
	}{
		{"00", "01"},
		{"59", "ASSADOS FAMILIA DAVANZO"},
		{"05", "***"},
		{"01", strings.Repeat("k", 99)},
	}

	for _, c := range cases {
		f := EncodeField(c.id, c.value)
		require.GreaterOrEqual(t, len(f), 4)
		assert.Equal(t, c.id, f[:2])
		length, err := strconv.Atoi(f[2:4])
		require.NoError(t, err)
		assert.Equal(t, len(c.value), length)
		assert.Equal(t, c.value, f[4:])
	}
}

func TestBuildPayloadAmountFormatting(t *testing.T) {
	zero := BuildPayload("chave", "LOJA", "RIO", decimal.Zero, "")
	assert.Contains(t, zero, "54040.00")

	half := BuildPayload("chave", "LOJA", "RIO", decimal.NewFromFloat(9.5), "")
	assert.Contains(t, half, "54049.50")

	negative := BuildPayload("chave", "LOJA", "RIO", decimal.NewFromInt(-3), "")
	assert.Contains(t, negative, "54040.00")
}

func TestBuildPayloadCustomReference(t *testing.T) {
	p := BuildPayload("chave", "LOJA", "RIO", decimal.NewFromInt(5), "PEDIDO42")
	assert.Contains(t, p, EncodeField("62", EncodeField("05", "PEDIDO42")))
}
