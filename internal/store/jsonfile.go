package store

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrCorrupt 持久化文件存在但内容无法解析
var ErrCorrupt = errors.New("store: malformed document")

// JSONFile 把一个 JSON 文档（数组或对象）整体读出、修改、再整体写回。
// 同一路径的读改写在进程内串行执行。
type JSONFile[T any] struct {
	path     string
	defaults func() T
}

// NewJSONFile 创建一个文件记录。defaults 为 nil 时缺失文件读作零值且不落盘，
// 否则第一次读取时用默认值初始化文件。
func NewJSONFile[T any](path string, defaults func() T) *JSONFile[T] {
	return &JSONFile[T]{path: path, defaults: defaults}
}

// Path 返回底层文件路径
func (f *JSONFile[T]) Path() string {
	return f.path
}

// Exists 判断文件是否存在
func (f *JSONFile[T]) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Load 读取整个文档
func (f *JSONFile[T]) Load() (T, error) {
	mu := lockFor(f.path)
	mu.Lock()
	defer mu.Unlock()
	return f.load()
}

// Update 在锁内执行 读取 -> fn 修改 -> 写回。
// fn 返回错误时不会写盘；返回 ErrNoChange 时同样跳过写盘但 Update 返回 nil。
func (f *JSONFile[T]) Update(fn func(doc *T) error) error {
	mu := lockFor(f.path)
	mu.Lock()
	defer mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		if errors.Is(err, ErrNoChange) {
			return nil
		}
		return err
	}
	return f.write(doc)
}

// Save 直接覆盖整个文档
func (f *JSONFile[T]) Save(doc T) error {
	mu := lockFor(f.path)
	mu.Lock()
	defer mu.Unlock()
	return f.write(doc)
}

// Remove 删除文件，文件不存在不算错误
func (f *JSONFile[T]) Remove() error {
	mu := lockFor(f.path)
	mu.Lock()
	defer mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ErrNoChange 由 Update 的回调返回，表示文档未变化无需写回
var ErrNoChange = errors.New("store: no change")

func (f *JSONFile[T]) load() (T, error) {
	var doc T
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		if f.defaults == nil {
			return doc, nil
		}
		doc = f.defaults()
		if err := f.write(doc); err != nil {
			return doc, err
		}
		return doc, nil
	}
	if err != nil {
		return doc, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("%w: %s: %v", ErrCorrupt, filepath.Base(f.path), err)
	}
	return doc, nil
}

// write 先写临时文件再 rename，失败时旧文档保持不变
func (f *JSONFile[T]) write(doc T) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(f.path, data)
}

// WriteFile 原子地写入任意文件（如 markdown），与同路径的其他写入串行
func WriteFile(path string, data []byte) error {
	mu := lockFor(path)
	mu.Lock()
	defer mu.Unlock()
	return writeAtomic(path, data)
}

// RemoveFile 删除文件；文件不存在返回 os.ErrNotExist
func RemoveFile(path string) error {
	mu := lockFor(path)
	mu.Lock()
	defer mu.Unlock()
	return os.Remove(path)
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return fmt.Errorf("generating temp suffix: %w", err)
	}
	tmp := path + ".tmp." + hex.EncodeToString(suffix)

	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// ListPartitions 列出目录下所有 *.json 分区的 key（文件名去掉扩展名），按字典序。
// 目录不存在时返回空列表。
func ListPartitions(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(keys)
	return keys, nil
}

var (
	locksMu sync.Mutex
	locks   = make(map[string]*sync.Mutex)
)

// lockFor 每个文件路径一把锁
func lockFor(path string) *sync.Mutex {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	locksMu.Lock()
	defer locksMu.Unlock()
	mu, ok := locks[abs]
	if !ok {
		mu = &sync.Mutex{}
		locks[abs] = mu
	}
	return mu
}
