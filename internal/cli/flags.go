package cli

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// ProgramName 示例命令中使用的程序名
const ProgramName = "omnicure"

// ExampleArgs 缺少参数时给出的示例
const ExampleArgs = "--com_port=1 --intensity=50"

// Options 命令行参数
type Options struct {
	ComPort    int
	Intensity  float64
	Calibrated bool
	Verify     string
	Format     string
	Strict     bool
	ConfigPath string

	// 是否在命令行中给出
	HasComPort   bool
	HasIntensity bool
}

// NewFlagSet 注册全部参数
func NewFlagSet(opts *Options, out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(ProgramName, pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.SortFlags = false

	fs.IntVarP(&opts.ComPort, "com_port", "P", 0, "Omnicure COM port")
	fs.Float64VarP(&opts.Intensity, "intensity", "I", 0, "Omnicure intensity value b/w 0 and 100")
	fs.BoolVarP(&opts.Calibrated, "calibrated", "C", false, "omnicure is calibrated (SIR, two decimals)")
	fs.StringVar(&opts.Verify, "verify", "", "verify a payload such as SIL504E and decode it")
	fs.StringVarP(&opts.Format, "format", "f", "", "output format {text|json|yaml} (default from config)")
	fs.BoolVar(&opts.Strict, "strict", false, "reject intensity outside [0, 100]")
	fs.StringVar(&opts.ConfigPath, "config", "", "config file (default $OMNI_CONFIG or ./omnicure.yaml)")

	fs.Usage = func() {
		fmt.Fprintf(out, "Generate Aerotech gcode for setting omnicure intensity\n\n")
		fmt.Fprintf(out, "Usage: %s %s [flags]\n\n", ProgramName, ExampleArgs)
		fs.PrintDefaults()
	}
	return fs
}

// Parse 解析命令行，-h/--help 返回 pflag.ErrHelp
func Parse(args []string, out io.Writer) (*Options, error) {
	opts := &Options{}
	fs := NewFlagSet(opts, out)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	opts.HasComPort = fs.Changed("com_port")
	opts.HasIntensity = fs.Changed("intensity")
	return opts, nil
}
