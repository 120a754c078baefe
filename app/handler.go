package main

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

const (
	echoPrefix  = "/echo/"
	filesPrefix = "/files/"
)

// handlers 持有路由处理函数需要的文件存储和日志
type handlers struct {
	store FileStore
	log   zerolog.Logger
}

// registerRoutes 注册所有路由到 Mux，顺序即优先级
func registerRoutes(m *Mux, h *handlers) {
	m.Handle(MethodGet, "/", h.root)
	m.Handle(MethodGet, "/user-agent", h.userAgent)
	m.HandlePrefix(MethodGet, filesPrefix, h.readFile)
	m.HandlePrefix(MethodGet, echoPrefix, h.echo)
	m.HandlePrefix(MethodPost, filesPrefix, h.writeFile)
}

// 根路径：返回 200 OK，无 body
func (h *handlers) root(req *Request) *Response {
	return NewStatusResponse(200)
}

// /user-agent：原样返回 User-Agent 请求头
func (h *handlers) userAgent(req *Request) *Response {
	ua, ok := req.Header("User-Agent")
	if !ok {
		return NewStatusResponse(400)
	}
	resp := NewStatusResponse(200)
	resp.SetContent([]byte(ua), "text/plain")
	return resp
}

// /echo/<text>：客户端支持 gzip 时压缩响应体
func (h *handlers) echo(req *Request) *Response {
	value := strings.TrimPrefix(req.Path, echoPrefix)
	resp := NewStatusResponse(200)
	resp.SetContent([]byte(value), "text/plain")
	if req.AcceptsEncoding("gzip") {
		resp.SetEncoding(EncodingGzip)
	}
	return resp
}

// GET /files/<name>：读文件
func (h *handlers) readFile(req *Request) *Response {
	name := strings.TrimPrefix(req.Path, filesPrefix)
	data, err := h.store.Read(name)
	switch {
	case err == nil:
		resp := NewStatusResponse(200)
		resp.SetContent(data, "application/octet-stream")
		return resp
	case errors.Is(err, ErrFileNotFound):
		return NewStatusResponse(404)
	case errors.Is(err, ErrInvalidFileName):
		h.log.Warn().Str("file", name).Msg("rejected file name")
		return NewStatusResponse(400)
	default:
		h.log.Error().Err(err).Str("file", name).Msg("read file failed")
		return NewStatusResponse(500)
	}
}

// POST /files/<name>：把 body 原样写入文件
func (h *handlers) writeFile(req *Request) *Response {
	name := strings.TrimPrefix(req.Path, filesPrefix)
	err := h.store.Write(name, req.Body)
	switch {
	case err == nil:
		return NewStatusResponse(201)
	case errors.Is(err, ErrNoDirectory):
		// 没有配置目录时什么也不写，仍然返回 201
		h.log.Warn().Str("file", name).Msg("no directory configured, upload discarded")
		return NewStatusResponse(201)
	case errors.Is(err, ErrInvalidFileName):
		h.log.Warn().Str("file", name).Msg("rejected file name")
		return NewStatusResponse(400)
	default:
		h.log.Error().Err(err).Str("file", name).Msg("write file failed")
		return NewStatusResponse(500)
	}
}
