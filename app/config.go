package main

const (
	defaultAddr      = "127.0.0.1:4221"
	defaultChunkSize = 1024
)

// Config 启动后不再修改，所有连接共享只读
type Config struct {
	Addr      string
	Directory string // 为空表示没有传 --directory
	ChunkSize int    // 每次从连接读取的字节数
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = defaultChunkSize
	}
	return c
}

// newFileStore 根据是否配置目录选择文件存储
func newFileStore(cfg Config) (FileStore, error) {
	if cfg.Directory == "" {
		return noStore{}, nil
	}
	store, err := OpenDirStore(cfg.Directory)
	if err != nil {
		return nil, err
	}
	return store, nil
}
