package main

import (
	"errors"
	"io"
	"net"

	"github.com/rs/zerolog"
)

// connection 负责一个已 accept 的连接，顺序处理其上的多个请求
type connection struct {
	conn      net.Conn
	mux       *Mux
	chunkSize int
	log       zerolog.Logger
}

func newConnection(conn net.Conn, mux *Mux, cfg *Config, log zerolog.Logger) *connection {
	return &connection{
		conn:      conn,
		mux:       mux,
		chunkSize: cfg.ChunkSize,
		log:       log.With().Str("remote", conn.RemoteAddr().String()).Logger(),
	}
}

// serve 读请求 → 分发 → 写响应，直到客户端要求关闭或者连接出错
func (c *connection) serve() {
	defer c.conn.Close()
	for {
		raw, err := c.readRequest()
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.log.Debug().Msg("peer closed connection")
			} else {
				c.log.Error().Err(err).Msg("read request")
			}
			return
		}

		req, err := ParseRequest(raw)
		if err != nil {
			c.log.Warn().Err(err).Msg("bad request")
			resp := NewStatusResponse(400)
			resp.AddHeader("Connection", "close")
			c.write(resp)
			return
		}
		if req.RawMethod != req.Method.String() {
			c.log.Debug().Str("method", req.RawMethod).Msg("unrecognized method treated as GET")
		}

		resp := c.mux.Serve(req)
		closeConn := req.WantsClose()
		if closeConn {
			resp.AddHeader("Connection", "close")
		}
		c.log.Debug().Str("request", req.Target()).Int("status", resp.StatusCode).Msg("handled")

		if !c.write(resp) || closeConn {
			return
		}
	}
}

// readRequest 按固定大小分块读取，读到不满一块时认为本次请求结束
// 一个字节都没读到就返回 io.EOF
func (c *connection) readRequest() (string, error) {
	buf := make([]byte, c.chunkSize)
	var data []byte
	for {
		n, err := c.conn.Read(buf)
		data = append(data, buf[:n]...)
		if err != nil {
			if len(data) > 0 {
				return string(data), nil
			}
			if errors.Is(err, io.EOF) {
				return "", io.EOF
			}
			return "", newTransportError(ReadFailure, err)
		}
		if n < c.chunkSize {
			if len(data) == 0 {
				return "", io.EOF
			}
			return string(data), nil
		}
	}
}

// write 序列化并发送响应，失败时返回 false
func (c *connection) write(resp *Response) bool {
	out, err := resp.Bytes()
	if err != nil {
		c.log.Error().Err(err).Msg("encode response")
		fallback := NewStatusResponse(500)
		if v, ok := resp.Headers["Connection"]; ok {
			fallback.AddHeader("Connection", v)
		}
		if out, err = fallback.Bytes(); err != nil {
			return false
		}
	}
	if _, err := c.conn.Write(out); err != nil {
		c.log.Error().Err(newTransportError(WriteFailure, err)).Msg("write response")
		return false
	}
	return true
}
