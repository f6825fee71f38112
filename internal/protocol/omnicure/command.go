package omnicure

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Mode 光强编码方式
type Mode uint8

const (
	// ModeRaw 未校准：SIL + 整数
	ModeRaw Mode = iota
	// ModeCalibrated 已校准：SIR + 两位小数
	ModeCalibrated
)

// 指令前缀
const (
	PrefixRaw        = "SIL"
	PrefixCalibrated = "SIR"
)

// 光强取值范围（仅严格模式下检查）
const (
	MinIntensity = 0
	MaxIntensity = 100
)

var (
	ErrPayloadTooShort     = errors.New("payload too short")
	ErrUnknownPrefix       = errors.New("unknown command prefix")
	ErrInvalidIntensity    = errors.New("invalid intensity value")
	ErrIntensityOutOfRange = errors.New("intensity out of range")
)

// ModeFor 根据是否校准选择编码方式
func ModeFor(calibrated bool) Mode {
	if calibrated {
		return ModeCalibrated
	}
	return ModeRaw
}

func (m Mode) String() string {
	switch m {
	case ModeRaw:
		return "raw"
	case ModeCalibrated:
		return "calibrated"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Prefix 返回该模式的指令前缀
func (m Mode) Prefix() string {
	if m == ModeCalibrated {
		return PrefixCalibrated
	}
	return PrefixRaw
}

// precision 小数位数
func (m Mode) precision() int {
	if m == ModeCalibrated {
		return 2
	}
	return 0
}

// IntensityCommand 光强设置指令
type IntensityCommand struct {
	Mode      Mode
	Intensity float64
}

// String 返回不含校验位的指令文本
func (c IntensityCommand) String() string {
	return FormatCommand(c.Mode, c.Intensity)
}

// Payload 返回带校验位的载荷
func (c IntensityCommand) Payload() string {
	return EncodePayload(c.String())
}

// FormatCommand 生成指令前缀文本
// 超出 [0,100] 的值同样照常格式化，由调用方决定是否校验
func FormatCommand(mode Mode, intensity float64) string {
	return mode.Prefix() + strconv.FormatFloat(intensity, 'f', mode.precision(), 64)
}

// ValidateIntensity 检查光强是否在 [0,100]
func ValidateIntensity(v float64) error {
	if math.IsNaN(v) || v < MinIntensity || v > MaxIntensity {
		return fmt.Errorf("%w: %v not in [%d, %d]", ErrIntensityOutOfRange, v, MinIntensity, MaxIntensity)
	}
	return nil
}

// ParsePayload 解析并校验载荷（如 "SIL504E"）
func ParsePayload(payload string) (*IntensityCommand, error) {
	// 前缀(3) + 至少1位数字 + 校验位(2)
	if len(payload) < len(PrefixRaw)+1+ChecksumDigits {
		return nil, ErrPayloadTooShort
	}
	if err := VerifyPayload(payload); err != nil {
		return nil, err
	}
	text := payload[:len(payload)-ChecksumDigits]

	var mode Mode
	switch {
	case strings.HasPrefix(text, PrefixCalibrated):
		mode = ModeCalibrated
	case strings.HasPrefix(text, PrefixRaw):
		mode = ModeRaw
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrefix, text[:len(PrefixRaw)])
	}

	body := text[len(PrefixRaw):]
	v, err := strconv.ParseFloat(body, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIntensity, body)
	}
	// 文本必须与该模式的格式一致，否则下位机不会接受
	if FormatCommand(mode, v) != text {
		return nil, fmt.Errorf("%w: %q is not %s format", ErrInvalidIntensity, body, mode)
	}
	return &IntensityCommand{Mode: mode, Intensity: v}, nil
}
