// Package pix builds static PIX payment payloads (BR Code, the EMV
// Merchant-Presented-Mode subset published by the Banco Central do Brasil).
// The payload is a flat string of TLV fields terminated by a CRC16 checksum
// and is what payment apps scan as a QR code.
package pix

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	tagPayloadFormat  = "00"
	tagMerchantInfo   = "26"
	tagCategoryCode   = "52"
	tagCurrency       = "53"
	tagAmount         = "54"
	tagCountry        = "58"
	tagMerchantName   = "59"
	tagMerchantCity   = "60"
	tagAdditionalData = "62"
	tagCRC            = "63"

	gui = "br.gov.bcb.pix"

	// ISO 4217 numeric code for BRL. PIX payloads are BRL only.
	currencyBRL = "986"

	// DefaultReference fills the txid subfield when the merchant does not
	// track individual charges.
	DefaultReference = "***"
)

// EncodeField renders one TLV field: tag, two-digit decimal length, value.
// Values longer than 99 characters overflow the two-digit length and produce
// a payload wallets will reject; inputs under merchant control are expected
// to stay within the limit, so no validation happens here.
func EncodeField(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// BuildPayload assembles the complete copy-and-paste PIX string for the given
// receiving key, merchant identification and amount. Negative amounts are
// emitted as 0.00.
func BuildPayload(key, merchantName, merchantCity string, amount decimal.Decimal, referenceID string) string {
	if referenceID == "" {
		referenceID = DefaultReference
	}
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	account := EncodeField("00", gui) + EncodeField("01", key)
	additional := EncodeField("05", referenceID)

	var b strings.Builder
	b.WriteString(EncodeField(tagPayloadFormat, "01"))
	b.WriteString(EncodeField(tagMerchantInfo, account))
	b.WriteString(EncodeField(tagCategoryCode, "0000"))
	b.WriteString(EncodeField(tagCurrency, currencyBRL))
	b.WriteString(EncodeField(tagAmount, amount.StringFixed(2)))
	b.WriteString(EncodeField(tagCountry, "BR"))
	b.WriteString(EncodeField(tagMerchantName, merchantName))
	b.WriteString(EncodeField(tagMerchantCity, merchantCity))
	b.WriteString(EncodeField(tagAdditionalData, additional))
	b.WriteString(tagCRC + "04")

	payload := b.String()
	return payload + CRC16(payload)
}

// CRC16 computes CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF, no
// reflection, no final xor) over the bytes of s and returns it as four
// uppercase hex digits. Check value: CRC16("123456789") == "29B1".
func CRC16(s string) string {
	crc := uint16(0xFFFF)
	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return fmt.Sprintf("%04X", crc)
}
