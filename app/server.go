package main

import (
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog"
)

// Server 一个连接一个 goroutine 的 HTTP/1.1 服务器
type Server struct {
	cfg      *Config
	mux      *Mux
	log      zerolog.Logger
	mu       sync.Mutex
	listener net.Listener
}

// NewServer 创建服务器并注册所有路由
func NewServer(cfg Config, store FileStore, log zerolog.Logger) *Server {
	cfg = cfg.withDefaults()
	mux := NewMux()
	registerRoutes(mux, &handlers{store: store, log: log})
	return &Server{cfg: &cfg, mux: mux, log: log}
}

// Listen 绑定监听地址
func (s *Server) Listen() error {
	l, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("绑定端口失败: %w", err)
	}
	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()
	s.log.Info().Str("addr", l.Addr().String()).Msg("listening")
	return nil
}

// Addr 返回实际监听的地址，未监听时返回 nil
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve 接受连接，每个连接交给独立的 goroutine
// 监听器被关闭后返回 nil
func (s *Server) Serve() error {
	s.mu.Lock()
	l := s.listener
	s.mu.Unlock()
	if l == nil {
		return errors.New("server is not listening")
	}

	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.log.Info().Msg("listener closed, no longer accepting connections")
				return nil
			}
			s.log.Error().Err(newTransportError(AcceptFailure, err)).Msg("accept connection")
			continue
		}
		go s.handle(conn)
	}
}

// ListenAndServe 绑定地址后开始接受连接
func (s *Server) ListenAndServe() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Close 关闭监听器，已建立的连接不受影响
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) handle(conn net.Conn) {
	defer func() {
		// 单个连接里的 panic 不能影响整个服务器
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("remote", conn.RemoteAddr().String()).Msg("connection handler panicked")
			conn.Close()
		}
	}()
	s.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("accepted connection")
	newConnection(conn, s.mux, s.cfg, s.log).serve()
}
