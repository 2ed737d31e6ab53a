package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"
)

// main 程序入口
// 不带子命令时启动服务(等同于wizardshop serve)
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}
