package main

import "strings"

// CRLF \r\n 是两个字符组成的序列：
// \r：carriage return，中文通常叫 回车
// \n：line feed，中文通常叫 换行
const CRLF = "\r\n"

// Method 只区分 GET 和 POST 两种请求方法
type Method int

const (
	MethodGet Method = iota
	MethodPost
)

func (m Method) String() string {
	if m == MethodPost {
		return "POST"
	}
	return "GET"
}

// parseMethod 除 "POST" 以外的任何方法都按 GET 处理
func parseMethod(token string) Method {
	if token == "POST" {
		return MethodPost
	}
	return MethodGet
}

// Request 表示一个简单的 HTTP 请求（不依赖 net/http）
type Request struct {
	Method    Method
	RawMethod string // 请求行中原始的方法字符串
	Path      string
	Headers   map[string]string // 区分大小写，重复的头部后者覆盖前者
	Body      []byte            // 只有读到空行之后才不为 nil
}

// Target 重新拼出请求行的前两个字段
func (r *Request) Target() string {
	return r.Method.String() + " " + r.Path
}

// Header 返回请求头的值，以及该请求头是否存在
func (r *Request) Header(name string) (string, bool) {
	v, ok := r.Headers[name]
	return v, ok
}

// WantsClose 只有 Connection 头部严格等于 "close" 时才关闭连接
func (r *Request) WantsClose() bool {
	return r.Headers["Connection"] == "close"
}

// AcceptsEncoding 判断 Accept-Encoding 的逗号分隔列表中是否包含 enc
func (r *Request) AcceptsEncoding(enc string) bool {
	for _, token := range strings.Split(r.Headers["Accept-Encoding"], ",") {
		if strings.TrimSpace(token) == enc {
			return true
		}
	}
	return false
}

// ParseRequest 把一次读到的完整请求文本解析成 Request
//
// 请求行按单个空格切分，第一个字段是方法，第二个字段是路径，其余忽略。
// 之后直到第一个空行都是请求头，按第一个 ": " 切分。
// 空行之后的所有行去掉分隔符后拼接成 body，不参考 Content-Length。
func ParseRequest(raw string) (*Request, error) {
	if raw == "" {
		return nil, newParseError(MissingRequestLine, "")
	}
	lines := strings.Split(raw, CRLF)

	requestLine := lines[0]
	parts := strings.Split(requestLine, " ")
	if len(parts) < 2 || parts[1] == "" || !strings.HasPrefix(parts[1], "/") {
		return nil, newParseError(MalformedRequestLine, requestLine)
	}

	req := &Request{
		Method:    parseMethod(parts[0]),
		RawMethod: parts[0],
		Path:      parts[1],
		Headers:   make(map[string]string),
	}

	for i := 1; i < len(lines); i++ {
		line := lines[i]
		// 读到空行，剩下的都是 body
		if line == "" {
			req.Body = []byte(strings.Join(lines[i+1:], ""))
			break
		}
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			return nil, newParseError(MalformedHeader, line)
		}
		req.Headers[key] = value
	}
	return req, nil
}
