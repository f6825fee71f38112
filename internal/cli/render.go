package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taoyao-code/omnicure/internal/protocol/omnicure"
)

// 输出格式
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat 规范化输出格式
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// blank 对应每段输出前后的空行
const blank = "\n\n"

// WriteDirectiveText 输出供操作员复制的文本
func WriteDirectiveText(w io.Writer, d *omnicure.Directive) error {
	var b strings.Builder
	b.WriteString(blank)
	fmt.Fprintf(&b, "Copy/paste following command to set omnicure intensity to %s\n", formatValue(d.Intensity))
	fmt.Fprintf(&b, "\n\t%s\n\t%s\n", d.Assignment, d.SetIntCall)
	fmt.Fprintf(&b, "\nTo turn on omnicure use the following command\n\t`%s`\n", d.OnCall)
	fmt.Fprintf(&b, "\nTo turn off omnicure use the following command\n\t`%s`\n", d.OffCall)
	b.WriteString(blank)
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteMissing 缺少参数时的提示
func WriteMissing(w io.Writer, field string) error {
	msg := fmt.Sprintf("%s%s value is missing.\n\n\tExample command: `%s %s`\n\n%s", blank, field, ProgramName, ExampleArgs, blank)
	_, err := io.WriteString(w, msg)
	return err
}

// VerifyResult 载荷校验结果
type VerifyResult struct {
	Payload   string  `json:"payload" yaml:"payload"`
	Valid     bool    `json:"valid" yaml:"valid"`
	Mode      string  `json:"mode,omitempty" yaml:"mode,omitempty"`
	Intensity float64 `json:"intensity" yaml:"intensity"`
	Error     string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewVerifyResult 解析载荷并生成结果
func NewVerifyResult(payload string) *VerifyResult {
	res := &VerifyResult{Payload: payload}
	cmd, err := omnicure.ParsePayload(payload)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Valid = true
	res.Mode = cmd.Mode.String()
	res.Intensity = cmd.Intensity
	return res
}

func writeVerifyText(w io.Writer, r *VerifyResult) error {
	var err error
	if r.Valid {
		_, err = fmt.Fprintf(w, "Payload %s is valid: %s intensity %s\n", r.Payload, r.Mode, formatValue(r.Intensity))
	} else {
		_, err = fmt.Fprintf(w, "Payload %s is invalid: %s\n", r.Payload, r.Error)
	}
	return err
}

// Render 按格式输出 v（*omnicure.Directive 或 *VerifyResult）
func Render(w io.Writer, format string, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	switch t := v.(type) {
	case *omnicure.Directive:
		return WriteDirectiveText(w, t)
	case *VerifyResult:
		return writeVerifyText(w, t)
	}
	return fmt.Errorf("render: unsupported value %T", v)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
