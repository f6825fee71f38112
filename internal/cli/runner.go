package cli

import (
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/omnicure/internal/config"
	"github.com/taoyao-code/omnicure/internal/protocol/omnicure"
)

// 退出码
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Runner 根据参数生成并输出指令
type Runner struct {
	cfg    *cfgpkg.Config
	log    *zap.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewRunner 创建 Runner，log 为 nil 时不输出日志
func NewRunner(cfg *cfgpkg.Config, log *zap.Logger, stdout, stderr io.Writer) *Runner {
	if cfg == nil {
		cfg = &cfgpkg.Config{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, log: log, stdout: stdout, stderr: stderr}
}

// Run 执行一次调用并返回退出码
// 缺少参数只提示，不视为失败
func (r *Runner) Run(opts *Options) int {
	format := opts.Format
	if format == "" {
		format = r.cfg.Output.Format
	}
	format, err := ParseFormat(format)
	if err != nil {
		return r.fail(ExitUsage, err)
	}

	if opts.Verify != "" {
		return r.verify(opts.Verify, format)
	}

	if !opts.HasComPort {
		r.log.Warn("missing argument", zap.String("arg", "com_port"))
		return r.write(WriteMissing(r.stdout, "COM port"))
	}
	if !opts.HasIntensity {
		r.log.Warn("missing argument", zap.String("arg", "intensity"))
		return r.write(WriteMissing(r.stdout, "Intensity"))
	}

	// 未校准模式只接受整数
	if !opts.Calibrated && opts.Intensity != math.Trunc(opts.Intensity) {
		return r.fail(ExitUsage, fmt.Errorf("%w: raw intensity must be an integer, got %v (use --calibrated for decimals)",
			omnicure.ErrInvalidIntensity, opts.Intensity))
	}
	if opts.Strict || r.cfg.Omnicure.Strict {
		if err := omnicure.ValidateIntensity(opts.Intensity); err != nil {
			return r.fail(ExitFailure, err)
		}
	}

	d := omnicure.BuildIntensityDirective(opts.ComPort, opts.Intensity, opts.Calibrated)
	r.log.Debug("directive built",
		zap.Int("port", d.Port),
		zap.Float64("intensity", d.Intensity),
		zap.String("mode", d.Mode),
		zap.String("payload", d.Payload))

	return r.write(Render(r.stdout, format, d))
}

func (r *Runner) verify(payload, format string) int {
	res := NewVerifyResult(payload)
	if res.Valid {
		r.log.Debug("payload verified", zap.String("payload", payload), zap.String("mode", res.Mode))
	} else {
		r.log.Warn("payload rejected", zap.String("payload", payload), zap.String("error", res.Error))
	}
	if code := r.write(Render(r.stdout, format, res)); code != ExitOK {
		return code
	}
	if !res.Valid {
		return ExitFailure
	}
	return ExitOK
}

func (r *Runner) write(err error) int {
	if err != nil {
		return r.fail(ExitFailure, fmt.Errorf("write output: %w", err))
	}
	return ExitOK
}

func (r *Runner) fail(code int, err error) int {
	r.log.Error("omnicure failed", zap.Error(err))
	fmt.Fprintf(r.stderr, "error: %v\n", err)
	return code
}
