package main

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"strconv"
)

// Encoding 响应体的压缩方式
type Encoding int

const (
	EncodingNone Encoding = iota
	EncodingGzip
)

func (e Encoding) String() string {
	if e == EncodingGzip {
		return "gzip"
	}
	return ""
}

var statusText = map[int]string{
	200: "OK",
	201: "Created",
	400: "Bad Request",
	404: "Not Found",
	500: "Internal Server Error",
}

// Response 在处理函数里逐步构造，最后由 Bytes 序列化一次
type Response struct {
	StatusCode int
	Reason     string
	Headers    map[string]string
	Body       []byte
	Encoding   Encoding
}

// NewResponse 创建一个没有头部、没有 body 的响应
func NewResponse(code int, reason string) *Response {
	return &Response{
		StatusCode: code,
		Reason:     reason,
		Headers:    make(map[string]string),
	}
}

// NewStatusResponse 用内置的状态描述创建响应
func NewStatusResponse(code int) *Response {
	return NewResponse(code, statusText[code])
}

// AddHeader 设置响应头，已存在则覆盖
func (r *Response) AddHeader(name, value string) {
	r.Headers[name] = value
}

// SetContent 设置 body 以及 Content-Type，Content-Length 在 Bytes 中会按最终 body 重新计算
func (r *Response) SetContent(body []byte, contentType string) {
	r.Body = body
	r.Headers["Content-Type"] = contentType
	r.Headers["Content-Length"] = strconv.Itoa(len(body))
}

// SetEncoding 只记录压缩方式，真正的压缩延迟到 Bytes
func (r *Response) SetEncoding(enc Encoding) {
	r.Encoding = enc
	if enc != EncodingNone {
		r.Headers["Content-Encoding"] = enc.String()
	}
}

// Bytes 压缩 body（如果需要），修正 Content-Length，然后拼出完整的响应报文
func (r *Response) Bytes() ([]byte, error) {
	body := r.Body
	if r.Encoding == EncodingGzip {
		compressed, err := gzipBytes(body)
		if err != nil {
			return nil, fmt.Errorf("gzip response body: %w", err)
		}
		body = compressed
	}
	if _, ok := r.Headers["Content-Length"]; ok || r.Encoding != EncodingNone {
		r.Headers["Content-Length"] = strconv.Itoa(len(body))
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "HTTP/1.1 %d %s%s", r.StatusCode, r.Reason, CRLF)
	for name, value := range r.Headers {
		buf.WriteString(name + ": " + value + CRLF)
	}
	buf.WriteString(CRLF)
	buf.Write(body)
	return buf.Bytes(), nil
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, err
	}
	// Close 才会写出 gzip 尾部
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
