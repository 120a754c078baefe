package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	// 示例：./your_program.sh --directory /tmp/data/
	directory := flag.String("directory", "", "directory served under /files/")
	addr := flag.String("addr", defaultAddr, "address to listen on")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	log, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg := Config{Addr: *addr, Directory: *directory}
	store, err := newFileStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("服务器启动失败")
	}
	if cfg.Directory == "" {
		log.Info().Msg("no --directory given, /files/ routes are disabled")
	}

	srv := NewServer(cfg, store, log)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("服务器启动失败")
	}
}
