package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/taoyao-code/omnicure/internal/app"
	"github.com/taoyao-code/omnicure/internal/cli"
	cfgpkg "github.com/taoyao-code/omnicure/internal/config"
	"github.com/taoyao-code/omnicure/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 1) 解析命令行
	opts, err := cli.Parse(args, os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return cli.ExitOK
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.ExitUsage
	}

	// 2) 加载配置
	cfg, err := cfgpkg.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.ExitFailure
	}

	// 3) 初始化日志
	logger, err := logging.InitLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.ExitFailure
	}
	defer func() { _ = logger.Sync() }()
	log := logger.With(zap.String("run_id", app.GenerateRunID()))

	// 4) 生成并输出指令
	return cli.NewRunner(cfg, log, os.Stdout, os.Stderr).Run(opts)
}
