package omnicure

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrChecksumMismatch checksum校验失败
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrInvalidChecksum 校验位不是两位十六进制
	ErrInvalidChecksum = errors.New("invalid checksum digits")
)

// CRC8 参数：反射形式，多项式 x^8+x^5+x^4+1（右移实现）
const (
	crc8Init    = 0x00
	crc8XorMask = 0x18
	crc8TopBit  = 0x80

	// ChecksumDigits 载荷末尾校验位的十六进制字符数
	ChecksumDigits = 2
)

// CalculateCRC8 计算 OmniCure 指令的 CRC8 校验值
// 逐字节、低位优先处理，每个字节移位8次；寄存器始终保持在8位内
func CalculateCRC8(data []byte) byte {
	var crc byte = crc8Init
	for _, b := range data {
		cur := b
		for i := 0; i < 8; i++ {
			if (cur^crc)&0x01 != 0 {
				crc = ((crc ^ crc8XorMask) >> 1) | crc8TopBit
			} else {
				crc >>= 1
			}
			cur >>= 1
		}
	}
	return crc
}

// Checksum8 对字符串的 UTF-8 字节计算 CRC8
func Checksum8(text string) byte {
	return CalculateCRC8([]byte(text))
}

// FormatChecksum 校验值格式化为两位大写十六进制（补零）
func FormatChecksum(sum byte) string {
	return fmt.Sprintf("%02X", sum)
}

// EncodePayload 在指令文本后追加校验位
func EncodePayload(text string) string {
	return text + FormatChecksum(Checksum8(text))
}

// SplitPayload 拆分载荷为指令文本与校验值
func SplitPayload(payload string) (string, byte, error) {
	if len(payload) < ChecksumDigits {
		return "", 0, ErrPayloadTooShort
	}
	pos := len(payload) - ChecksumDigits
	digits := payload[pos:]
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		// 下位机只认大写
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'F') {
			return "", 0, fmt.Errorf("%w: %q", ErrInvalidChecksum, digits)
		}
	}
	v, err := strconv.ParseUint(digits, 16, 8)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidChecksum, digits)
	}
	return payload[:pos], byte(v), nil
}

// VerifyPayload 验证载荷校验位
func VerifyPayload(payload string) error {
	text, received, err := SplitPayload(payload)
	if err != nil {
		return err
	}
	if expected := Checksum8(text); received != expected {
		return fmt.Errorf("%w: got %s, want %s", ErrChecksumMismatch, FormatChecksum(received), FormatChecksum(expected))
	}
	return nil
}
