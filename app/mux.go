package main

import "strings"

// HandlerFunc 路由处理函数类型
type HandlerFunc func(req *Request) *Response

type route struct {
	method  Method
	pattern string
	prefix  bool // true 表示前缀匹配，否则要求路径完全相等
	handler HandlerFunc
}

func (rt route) match(req *Request) bool {
	if rt.method != req.Method {
		return false
	}
	if rt.prefix {
		return strings.HasPrefix(req.Path, rt.pattern)
	}
	return req.Path == rt.pattern
}

// Mux 非 net/http 版本的极简路由器，按注册顺序匹配
type Mux struct {
	routes []route
}

// NewMux 创建一个新的路由器
func NewMux() *Mux {
	return &Mux{}
}

// Handle 注册完全匹配的路由
func (m *Mux) Handle(method Method, path string, handler HandlerFunc) {
	m.routes = append(m.routes, route{method: method, pattern: path, handler: handler})
}

// HandlePrefix 注册前缀匹配的路由，例如 "/echo/"
func (m *Mux) HandlePrefix(method Method, prefix string, handler HandlerFunc) {
	m.routes = append(m.routes, route{method: method, pattern: prefix, prefix: true, handler: handler})
}

// Serve 找到第一个匹配的路由并执行
// 如果没有匹配的路由，则返回 404
func (m *Mux) Serve(req *Request) *Response {
	for _, rt := range m.routes {
		if rt.match(req) {
			return rt.handler(req)
		}
	}
	return NewStatusResponse(404)
}
