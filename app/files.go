package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore 是 /files/ 路由背后的文件读写接口
type FileStore interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
}

// dirStore 把所有读写限制在 --directory 指定的目录之内
type dirStore struct {
	root *os.Root
}

// OpenDirStore 打开目录，目录必须已经存在
func OpenDirStore(dir string) (*dirStore, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open directory %s: %w", dir, err)
	}
	return &dirStore{root: root}, nil
}

func (s *dirStore) Read(name string) ([]byte, error) {
	if !filepath.IsLocal(name) {
		return nil, ErrInvalidFileName
	}
	f, err := s.root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrFileNotFound
	}
	return io.ReadAll(f)
}

func (s *dirStore) Write(name string, data []byte) error {
	if !filepath.IsLocal(name) {
		return ErrInvalidFileName
	}
	// 文件已存在则覆盖
	f, err := s.root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *dirStore) Close() error {
	return s.root.Close()
}

// noStore 用于没有传 --directory 的情况
type noStore struct{}

func (noStore) Read(string) ([]byte, error) { return nil, ErrFileNotFound }

func (noStore) Write(string, []byte) error { return ErrNoDirectory }
