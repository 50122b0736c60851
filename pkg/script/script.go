// Package script はpixelpenプログラムのソースファイルを読み込む
package script

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Extension はプログラムファイルの拡張子
const Extension = ".pen"

// Encoding はソースファイルの文字コード
type Encoding int

const (
	Auto Encoding = iota
	UTF8
	UTF16
	ShiftJIS
)

var encodingNames = map[Encoding]string{
	Auto:     "auto",
	UTF8:     "utf-8",
	UTF16:    "utf-16",
	ShiftJIS: "shift-jis",
}

func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return "unknown"
}

// ParseEncoding は文字コード名を解釈する（大文字小文字を無視）
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Auto, nil
	case "utf-8", "utf8":
		return UTF8, nil
	case "utf-16", "utf16":
		return UTF16, nil
	case "shift-jis", "shift_jis", "sjis":
		return ShiftJIS, nil
	}
	return Auto, fmt.Errorf("unknown encoding: %s", name)
}

// Script はソースファイルを表す
type Script struct {
	FileName string   // ファイル名
	Content  string   // UTF-8に変換された内容
	Size     int64    // ファイルサイズ
	Encoding Encoding // 実際に使った文字コード
}

// Loader はソースファイルの読み込みを行う
type Loader struct {
	fsys     fs.FS
	encoding Encoding
}

// NewLoader Loaderを作成
// fsysには os.DirFS や embed.FS を渡せる
func NewLoader(fsys fs.FS, enc Encoding) *Loader {
	return &Loader{
		fsys:     fsys,
		encoding: enc,
	}
}

// LoadFile はパスを指定して1ファイルを読み込む
func LoadFile(filePath string, enc Encoding) (*Script, error) {
	loader := NewLoader(os.DirFS(filepath.Dir(filePath)), enc)
	return loader.Load(filepath.Base(filePath))
}

// Load はファイルを読み込んでUTF-8に変換する
// ファイル名は大文字小文字を無視して検索する
func (l *Loader) Load(name string) (*Script, error) {
	actual, err := l.findFile(name)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fsys, actual)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	content, used, err := Decode(data, l.encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to convert encoding for %s: %w", name, err)
	}

	return &Script{
		FileName: path.Base(actual),
		Content:  content,
		Size:     int64(len(data)),
		Encoding: used,
	}, nil
}

// List はディレクトリ内のプログラムファイル名を返す（拡張子はcase-insensitive）
func (l *Loader) List(dir string) ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(path.Ext(entry.Name()), Extension) {
			names = append(names, path.Join(dir, entry.Name()))
		}
	}
	sort.Strings(names)
	return names, nil
}

// findFile 大文字小文字を無視してファイルを検索
func (l *Loader) findFile(name string) (string, error) {
	name = path.Clean(filepath.ToSlash(name))

	// まず直接アクセスを試みる
	if info, err := fs.Stat(l.fsys, name); err == nil && !info.IsDir() {
		return name, nil
	}

	dir, base := path.Split(name)
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" {
		dir = "."
	}

	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(entry.Name(), base) {
			return path.Join(dir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("file not found: %s (searched in %s): %w", base, dir, fs.ErrNotExist)
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode はバイト列をUTF-8文字列に変換する
// Autoの場合はBOM、UTF-8としての妥当性、Shift-JISの順に判定する
func Decode(data []byte, enc Encoding) (string, Encoding, error) {
	if enc == Auto {
		enc = detect(data)
	}

	var decoder *encoding.Decoder
	switch enc {
	case UTF8:
		return string(bytes.TrimPrefix(data, bomUTF8)), UTF8, nil
	case UTF16:
		// BOMがなければリトルエンディアンとみなす
		decoder = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case ShiftJIS:
		decoder = japanese.ShiftJIS.NewDecoder()
	default:
		return "", enc, fmt.Errorf("unsupported encoding: %s", enc)
	}

	reader := transform.NewReader(bytes.NewReader(data), decoder)
	utf8Data, err := io.ReadAll(reader)
	if err != nil {
		return "", enc, fmt.Errorf("failed to decode %s: %w", enc, err)
	}
	return string(utf8Data), enc, nil
}

// detect 文字コードを推定
func detect(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return UTF8
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		return UTF16
	case utf8.Valid(data):
		return UTF8
	}
	return ShiftJIS
}
