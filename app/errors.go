package main

import (
	"errors"
	"fmt"
)

// ParseErrorKind 请求解析阶段的错误类型
type ParseErrorKind int

const (
	MissingRequestLine ParseErrorKind = iota
	MalformedRequestLine
	MalformedHeader
)

func (k ParseErrorKind) String() string {
	switch k {
	case MissingRequestLine:
		return "missing request line"
	case MalformedRequestLine:
		return "malformed request line"
	case MalformedHeader:
		return "malformed header line"
	default:
		return fmt.Sprintf("unknown parse error: %d", int(k))
	}
}

// TransportErrorKind 连接读写阶段的错误类型
type TransportErrorKind int

const (
	AcceptFailure TransportErrorKind = iota
	ReadFailure
	WriteFailure
)

func (k TransportErrorKind) String() string {
	switch k {
	case AcceptFailure:
		return "accept failed"
	case ReadFailure:
		return "read failed"
	case WriteFailure:
		return "write failed"
	default:
		return fmt.Sprintf("unknown transport error: %d", int(k))
	}
}

// Error 统一的错误类型，包装解析错误或传输错误
type Error struct {
	ParseErr     *ParseErrorKind
	TransportErr *TransportErrorKind
	Detail       string
	underlying   error
}

func (e *Error) Error() string {
	var msg string
	switch {
	case e.ParseErr != nil:
		msg = "parse error: " + e.ParseErr.String()
	case e.TransportErr != nil:
		msg = "transport error: " + e.TransportErr.String()
	default:
		msg = "unknown error"
	}
	if e.Detail != "" {
		msg += fmt.Sprintf(" (%q)", e.Detail)
	}
	if e.underlying != nil {
		msg += ": " + e.underlying.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.underlying
}

func newParseError(kind ParseErrorKind, detail string) *Error {
	return &Error{ParseErr: &kind, Detail: detail}
}

func newTransportError(kind TransportErrorKind, underlying error) *Error {
	return &Error{TransportErr: &kind, underlying: underlying}
}

// IsParseError 判断 err 是否为请求解析错误
func IsParseError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.ParseErr != nil
}

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFileName = errors.New("invalid file name")
	ErrNoDirectory     = errors.New("no directory configured")
)
