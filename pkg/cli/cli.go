package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zurustar/pixelpen/pkg/graphics"
	"github.com/zurustar/pixelpen/pkg/logger"
	"github.com/zurustar/pixelpen/pkg/script"
)

// デフォルト値
const (
	DefaultCanvasSize = 32
	DefaultTimeLimit  = 30 * time.Second
	MaxScale          = 64
)

// Config はコマンドライン引数から解析された設定を保持する
type Config struct {
	SourcePath string          // ソースファイルまたはディレクトリのパス
	CanvasSize int             // キャンバスの辺長（1..1024）
	TimeLimit  time.Duration   // プログラム実行の制限時間（0は無制限）
	Timeout    time.Duration   // ウィンドウを自動で閉じるまでの時間（0は無制限）
	LogLevel   string          // ログレベル（debug, info, warn, error）
	Headless   bool            // ヘッドレスモード（ウィンドウなし）
	Output     string          // 画像の書き出し先（.png / .bmp）
	Scale      int             // 書き出し時の拡大率
	Encoding   script.Encoding // ソースの文字コード
	Preview    bool            // 端末にキャンバスを表示
	CheckOnly  bool            // 構文チェックのみ（実行しない）
	ShowHelp   bool            // ヘルプ表示フラグ
}

// booleanFlags は値を取らないフラグ
var booleanFlags = map[string]bool{
	"h": true, "help": true,
	"headless": true,
	"preview":  true,
	"check":    true,
}

// ParseArgs コマンドライン引数を解析してConfigを返す
// 環境変数 CANVAS_SIZE, TIME_LIMIT, TIMEOUT, LOG_LEVEL, HEADLESS は
// 対応するフラグが指定されていない場合にのみ使われる
func ParseArgs(args []string) (*Config, error) {
	// 引数を並べ替え：フラグを前に、位置引数を後ろに
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("pixelpen", flag.ContinueOnError)

	config := &Config{}

	var timeLimitSec, timeoutSec int
	var encoding string
	fs.IntVar(&config.CanvasSize, "size", DefaultCanvasSize, "キャンバスの辺長")
	fs.IntVar(&config.CanvasSize, "s", DefaultCanvasSize, "キャンバスの辺長（短縮形）")
	fs.IntVar(&timeLimitSec, "time-limit", int(DefaultTimeLimit/time.Second), "実行の制限時間（秒）")
	fs.IntVar(&timeoutSec, "timeout", 0, "ウィンドウを閉じるまでの時間（秒）")
	fs.IntVar(&timeoutSec, "t", 0, "ウィンドウを閉じるまでの時間（秒）（短縮形）")
	fs.StringVar(&config.LogLevel, "log-level", "info", "ログレベル（debug, info, warn, error）")
	fs.StringVar(&config.LogLevel, "l", "info", "ログレベル（短縮形）")
	fs.BoolVar(&config.Headless, "headless", false, "ヘッドレスモード")
	fs.StringVar(&config.Output, "output", "", "画像の書き出し先（.png, .bmp）")
	fs.StringVar(&config.Output, "o", "", "画像の書き出し先（短縮形）")
	fs.IntVar(&config.Scale, "scale", 1, "書き出し時の拡大率")
	fs.StringVar(&encoding, "encoding", "auto", "ソースの文字コード（auto, utf-8, utf-16, shift-jis）")
	fs.BoolVar(&config.Preview, "preview", false, "端末にキャンバスを表示")
	fs.BoolVar(&config.CheckOnly, "check", false, "構文チェックのみ行う")
	fs.BoolVar(&config.ShowHelp, "help", false, "ヘルプを表示")
	fs.BoolVar(&config.ShowHelp, "h", false, "ヘルプを表示（短縮形）")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	// 明示的に指定されたフラグ
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// 環境変数からの設定（コマンドラインフラグが優先）
	if !set["headless"] {
		if headlessEnv := os.Getenv("HEADLESS"); headlessEnv != "" {
			config.Headless = headlessEnv == "1" || strings.ToLower(headlessEnv) == "true"
		}
	}
	if !set["size"] && !set["s"] {
		if v, ok, err := intEnv("CANVAS_SIZE"); err != nil {
			return nil, err
		} else if ok {
			config.CanvasSize = v
		}
	}
	if !set["time-limit"] {
		if v, ok, err := intEnv("TIME_LIMIT"); err != nil {
			return nil, err
		} else if ok {
			timeLimitSec = v
		}
	}
	if !set["timeout"] && !set["t"] {
		if v, ok, err := intEnv("TIMEOUT"); err != nil {
			return nil, err
		} else if ok {
			timeoutSec = v
		}
	}
	if !set["log-level"] && !set["l"] {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = strings.ToLower(logLevelEnv)
		}
	}

	// 値の検証
	if config.CanvasSize < 1 || config.CanvasSize > graphics.MaxCanvasSize {
		return nil, fmt.Errorf("canvas size must be between 1 and %d, got %d", graphics.MaxCanvasSize, config.CanvasSize)
	}
	if timeLimitSec < 0 {
		return nil, fmt.Errorf("time limit must be non-negative, got %d", timeLimitSec)
	}
	config.TimeLimit = time.Duration(timeLimitSec) * time.Second

	if timeoutSec < 0 {
		return nil, fmt.Errorf("timeout must be non-negative, got %d", timeoutSec)
	}
	config.Timeout = time.Duration(timeoutSec) * time.Second

	if _, err := logger.ParseLevel(config.LogLevel); err != nil {
		return nil, err
	}

	if config.Scale < 1 || config.Scale > MaxScale {
		return nil, fmt.Errorf("scale must be between 1 and %d, got %d", MaxScale, config.Scale)
	}
	if config.Output != "" {
		if _, err := graphics.FormatFromPath(config.Output); err != nil {
			return nil, err
		}
	}

	enc, err := script.ParseEncoding(encoding)
	if err != nil {
		return nil, err
	}
	config.Encoding = enc

	// 位置引数（ソースファイル）
	if fs.NArg() > 0 {
		config.SourcePath = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("only one source file can be given, got %d", fs.NArg())
	}

	return config, nil
}

// intEnv は整数の環境変数を読む
// 未設定ならok=false、数値でなければエラー
func intEnv(name string) (int, bool, error) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s: %q is not an integer", name, v)
	}
	return n, true, nil
}

// reorderArgs 引数を並べ替えて、フラグを前に、位置引数を後ろに配置する
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// フラグかどうかを判定（-または--で始まる）
		if len(arg) > 1 && arg[0] == '-' {
			flags = append(flags, arg)

			// 値が別の引数になっている場合（-s 64 など）は次の引数も追加
			name := strings.TrimLeft(arg, "-")
			if strings.Contains(name, "=") || booleanFlags[name] {
				continue
			}
			if i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			// 位置引数
			positional = append(positional, arg)
		}
	}

	// フラグを前に、位置引数を後ろに配置
	return append(flags, positional...)
}

// PrintHelp ヘルプメッセージを表示
func PrintHelp() {
	fmt.Fprintf(os.Stdout, `pixelpen - pixel canvas drawing language

Usage:
  pixelpen [options] <source.pen | directory>

Arguments:
  source.pen    実行するプログラムのパス
  directory     ディレクトリ内の.penを名前順に同じキャンバスで実行

Options:
  -s, --size <pixels>         キャンバスの辺長 1..%d（デフォルト: %d）
  --time-limit <seconds>      プログラムの制限時間、0で無制限（デフォルト: %d）
  -t, --timeout <seconds>     指定秒数後にウィンドウを閉じる（デフォルト: 無制限）
  -l, --log-level <level>     ログレベル: debug, info, warn, error（デフォルト: info）
  --headless                  ヘッドレスモード（ウィンドウなし）
  -o, --output <file>         キャンバスを画像として保存（.png, .bmp）
  --scale <n>                 保存時の拡大率 1..%d（デフォルト: 1）
  --encoding <name>           ソースの文字コード: auto, utf-8, utf-16, shift-jis
  --preview                   端末にキャンバスを表示
  --check                     構文チェックのみ行い、実行しない
  -h, --help                  このヘルプを表示

Environment Variables:
  CANVAS_SIZE=<pixels>        キャンバスの辺長
  TIME_LIMIT=<seconds>        プログラムの制限時間
  TIMEOUT=<seconds>           ウィンドウを閉じるまでの時間
  LOG_LEVEL=<level>           ログレベル
  HEADLESS=1                  ヘッドレスモードを有効化

Examples:
  pixelpen house.pen                          ウィンドウで結果を表示
  pixelpen --size 64 -o house.png house.pen   64x64で描いてPNGに保存
  pixelpen --headless --preview house.pen     端末にだけ表示
  pixelpen --check samples                    samples内の全プログラムを構文チェック
  HEADLESS=1 pixelpen -o out.bmp --scale 8 house.pen
`, graphics.MaxCanvasSize, DefaultCanvasSize, int(DefaultTimeLimit/time.Second), MaxScale)
}
