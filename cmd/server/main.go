package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/savagerise/storefront/internal/app"
	"github.com/savagerise/storefront/internal/config"
	"github.com/savagerise/storefront/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset     = "\033[0m"
	ansiBold      = "\033[1m"
	ansiDim       = "\033[2m"
	ansiGreen     = "\033[32m"
	ansiBrightMag = "\033[95m"
)

func main() {
	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" && cfg.Storage.Driver == "memory" {
		stdLog.Printf("警告: storage.driver=memory，重启后购物车与优惠码将丢失")
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiBrightMag + "╔══════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiBrightMag + "║        Storefront session service        ║" + ansiReset)
	fmt.Println(ansiBrightMag + "╚══════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "cart · promo · checkout (COD)" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------" + ansiReset)
}
