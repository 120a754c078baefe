package main

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// parsedResponse 测试里用来检查服务器返回的报文
type parsedResponse struct {
	StatusLine string
	Headers    map[string]string
	Body       []byte
}

// splitResponse 把 Response.Bytes 的输出拆开
func splitResponse(t *testing.T, raw []byte) parsedResponse {
	t.Helper()
	head, body, ok := bytes.Cut(raw, []byte(CRLF+CRLF))
	if !ok {
		t.Fatalf("response has no header terminator: %q", raw)
	}
	lines := strings.Split(string(head), CRLF)
	res := parsedResponse{StatusLine: lines[0], Headers: make(map[string]string), Body: body}
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		k, v, ok := strings.Cut(line, ": ")
		if !ok {
			t.Fatalf("malformed header line %q", line)
		}
		res.Headers[k] = v
	}
	return res
}

// readResponse 从连接上读取一个完整的响应，body 长度由 Content-Length 决定
func readResponse(t *testing.T, r *bufio.Reader) parsedResponse {
	t.Helper()
	status, err := r.ReadString('\n')
	if err != nil {
		t.Fatalf("read status line: %v", err)
	}
	res := parsedResponse{StatusLine: strings.TrimSuffix(status, CRLF), Headers: make(map[string]string)}
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("read header: %v", err)
		}
		line = strings.TrimSuffix(line, CRLF)
		if line == "" {
			break
		}
		k, v, ok := strings.Cut(line, ": ")
		if !ok {
			t.Fatalf("malformed header line %q", line)
		}
		res.Headers[k] = v
	}
	if cl, ok := res.Headers["Content-Length"]; ok {
		n, err := strconv.Atoi(cl)
		if err != nil {
			t.Fatalf("bad Content-Length %q", cl)
		}
		res.Body = make([]byte, n)
		if _, err := io.ReadFull(r, res.Body); err != nil {
			t.Fatalf("read body: %v", err)
		}
	}
	return res
}

func gunzip(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	out, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("read gzip body: %v", err)
	}
	return string(out)
}

// startTestServer 在 127.0.0.1 的随机端口上启动服务器
func startTestServer(t *testing.T, dir string) string {
	t.Helper()
	cfg := Config{Addr: "127.0.0.1:0", Directory: dir}
	store, err := newFileStore(cfg)
	if err != nil {
		t.Fatalf("newFileStore: %v", err)
	}
	srv := NewServer(cfg, store, zerolog.Nop())
	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()
	t.Cleanup(func() {
		srv.Close()
		if err := <-done; err != nil {
			t.Errorf("Serve returned %v", err)
		}
	})
	return srv.Addr().String()
}

func dial(t *testing.T, addr string) (net.Conn, *bufio.Reader) {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial %s: %v", addr, err)
	}
	conn.SetDeadline(time.Now().Add(5 * time.Second))
	t.Cleanup(func() { conn.Close() })
	return conn, bufio.NewReader(conn)
}

func send(t *testing.T, conn net.Conn, raw string) {
	t.Helper()
	if _, err := conn.Write([]byte(raw)); err != nil {
		t.Fatalf("write request: %v", err)
	}
}
