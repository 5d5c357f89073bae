package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"resume-extractor/internal/config"
	"resume-extractor/internal/constants"
	appLogger "resume-extractor/internal/logger"
	"resume-extractor/internal/processor"
)

func main() {
	var (
		configPath string
		logLevel   string
		workers    int
		noOutput   bool
		initConfig string
		showText   bool
		version    bool
	)
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径，为空时按默认位置查找")
	pflag.StringVar(&logLevel, "log-level", "", "日志级别: debug, info, warn, error")
	pflag.IntVarP(&workers, "workers", "w", 0, "并行处理的文件数，为0时使用配置值")
	pflag.BoolVar(&noOutput, "no-output", false, "不把提取文本写到PDF旁边")
	pflag.StringVar(&initConfig, "init-config", "", "在指定路径生成示例配置文件后退出")
	pflag.BoolVar(&showText, "show-text", false, "在报告中打印提取的全文")
	pflag.BoolVarP(&version, "version", "v", false, "显示版本号")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "用法: %s [选项] <简历.pdf>...\n\n", constants.AppName)
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if version {
		fmt.Printf("%s %s\n", constants.AppName, constants.AppVersion)
		return
	}

	if initConfig != "" {
		if err := config.CreateSampleConfig(initConfig); err != nil {
			fmt.Fprintf(os.Stderr, "生成示例配置失败: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("示例配置已写入 %s\n", initConfig)
		return
	}

	paths := pflag.Args()
	if len(paths) == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.Logger.Level = logLevel
	}
	if workers > 0 {
		cfg.Processor.Workers = workers
	}
	if noOutput {
		cfg.Output.WriteText = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "配置无效: %v\n", err)
		os.Exit(1)
	}

	appLogger.Init(appLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	log := appLogger.Component("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tax := processor.LoadTaxonomy(ctx, cfg.Taxonomy.Path, appLogger.Component("taxonomy"))

	proc, err := processor.NewDefaultProcessor(ctx, cfg, tax, appLogger.Component("processor"))
	if err != nil {
		log.Error().Err(err).Msg("初始化处理器失败")
		os.Exit(1)
	}

	results := proc.ProcessBatch(ctx, paths, cfg.Processor.Workers)

	failed := 0
	for i, r := range results {
		if i > 0 {
			fmt.Println()
		}
		if r.Resume != nil {
			printReport(os.Stdout, r.Resume, showText)
		}
		if r.Err != nil {
			failed++
			printFailure(os.Stdout, r.Path, r.Err)
			if errors.Is(r.Err, processor.ErrParseTextFailed) {
				log.Error().Err(r.Err).Str("file", r.Path).Msg("无法从PDF中提取文本")
			} else {
				log.Error().Err(r.Err).Str("file", r.Path).Msg("处理简历失败")
			}
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
