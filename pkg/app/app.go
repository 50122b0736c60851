package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/zurustar/pixelpen/pkg/cli"
	"github.com/zurustar/pixelpen/pkg/compiler"
	"github.com/zurustar/pixelpen/pkg/engine"
	"github.com/zurustar/pixelpen/pkg/graphics"
	"github.com/zurustar/pixelpen/pkg/logger"
	"github.com/zurustar/pixelpen/pkg/report"
	"github.com/zurustar/pixelpen/pkg/script"
	"github.com/zurustar/pixelpen/pkg/vm"
	"github.com/zurustar/pixelpen/pkg/window"
)

// ErrProgramFailed はプログラムが診断を出した場合に返される
var ErrProgramFailed = errors.New("program reported errors")

// Application はアプリケーションのメインロジックを管理する
type Application struct {
	config *cli.Config
	log    *slog.Logger
	engine *engine.Engine

	stdout io.Writer
	stderr io.Writer

	// showWindow はビューアを表示する（テストで差し替える）
	showWindow func(canvas *graphics.Canvas, status string, timeout time.Duration) error
}

// New Applicationを作成
func New() *Application {
	return &Application{
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		showWindow: window.Run,
	}
}

// Run アプリケーションを実行
// プログラムが診断を出した場合はErrProgramFailedを返す
func (app *Application) Run(args []string) error {
	// 1. コマンドライン引数の解析
	if err := app.parseArgs(args); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if app.config.ShowHelp {
		cli.PrintHelp()
		return nil
	}
	if app.config.SourcePath == "" {
		return fmt.Errorf("no source file given (see --help)")
	}

	// 2. ロガーの初期化
	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.log.Info("Application started", "source", app.config.SourcePath, "size", app.config.CanvasSize)

	// 3. ソースの読み込みとコンパイル
	programs, err := app.compileSources()
	if err != nil {
		return err
	}
	if app.config.CheckOnly {
		return app.check(programs)
	}

	// 4. 実行
	app.engine, err = engine.New(app.config.CanvasSize,
		engine.WithTimeLimit(app.config.TimeLimit),
		engine.WithLogger(app.log))
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	// Ctrl+Cで実行を中断する
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var result *engine.Result
	var failed []string
	for _, compiled := range programs {
		app.log.Debug("Source preview", "name", compiled.Script.FileName, "preview", truncate(compiled.Script.Content, 100))

		result = app.engine.Run(ctx, compiled.Program, compiled.Diagnostics)

		// 5. 診断の表示
		if !result.OK() {
			failed = append(failed, compiled.Script.FileName)
			if len(programs) > 1 {
				fmt.Fprintln(app.stderr, compiled.Script.FileName)
			}
			fmt.Fprint(app.stderr, report.Diagnostics(result.Diagnostics, compiled.Script.Content))
		}
		if errors.Is(result.Err, vm.ErrCanceled) {
			break
		}
	}

	// 6. 画像の書き出しとプレビュー
	if app.config.Output != "" {
		if err := app.export(result.Canvas); err != nil {
			return fmt.Errorf("failed to export canvas: %w", err)
		}
	}
	if app.config.Preview {
		fmt.Fprint(app.stdout, report.Canvas(result.Canvas))
	}

	// 7. ビューア
	if !app.config.Headless {
		status := window.StatusLine(result.Cursor, result.Diagnostics.Len())
		if err := app.showWindow(result.Canvas, status, app.config.Timeout); err != nil {
			return fmt.Errorf("failed to run window: %w", err)
		}
	}

	switch {
	case len(failed) == 0:
	case len(programs) == 1:
		return fmt.Errorf("%w: %s", ErrProgramFailed, compiler.Summary(result.Diagnostics))
	default:
		return fmt.Errorf("%w: %s", ErrProgramFailed, strings.Join(failed, ", "))
	}

	app.log.Info("Application terminated normally")
	return nil
}

// compileSources はソースファイル、またはディレクトリ内の全プログラムを読み込んでコンパイルする
func (app *Application) compileSources() ([]*compiler.Result, error) {
	path := app.config.SourcePath

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load source: %w", err)
	}

	if !info.IsDir() {
		compiled, err := compiler.CompileFile(path, app.config.Encoding)
		if err != nil {
			return nil, fmt.Errorf("failed to load source: %w", err)
		}
		return []*compiler.Result{compiled}, nil
	}

	loader := script.NewLoader(os.DirFS(path), app.config.Encoding)
	names, err := loader.List(".")
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no %s files in %s", script.Extension, path)
	}

	programs := make([]*compiler.Result, 0, len(names))
	for _, name := range names {
		s, err := loader.Load(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load source: %w", err)
		}
		app.log.Info("Source loaded", "name", s.FileName, "size", s.Size, "encoding", s.Encoding.String())
		programs = append(programs, compiler.CompileScript(s))
	}
	return programs, nil
}

// check は構文エラーだけを報告する（実行はしない）
func (app *Application) check(programs []*compiler.Result) error {
	var errs []error
	for _, compiled := range programs {
		fmt.Fprintf(app.stdout, "%s: %s\n", compiled.Script.FileName, compiler.Summary(compiled.Diagnostics))
		if err := compiled.Err(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", compiled.Script.FileName, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w:\n%w", ErrProgramFailed, errors.Join(errs...))
	}
	return nil
}

// parseArgs コマンドライン引数を解析
func (app *Application) parseArgs(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	app.config = config
	return nil
}

// initLogger ロガーを初期化
func (app *Application) initLogger() error {
	if err := logger.InitLogger(app.config.LogLevel, app.stderr); err != nil {
		return err
	}
	app.log = logger.GetLogger()
	return nil
}

// export キャンバスを画像ファイルに書き出す
func (app *Application) export(canvas *graphics.Canvas) (err error) {
	format, err := graphics.FormatFromPath(app.config.Output)
	if err != nil {
		return err
	}

	f, err := os.Create(app.config.Output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := graphics.Encode(f, canvas, format, app.config.Scale); err != nil {
		return err
	}

	app.log.Info("Canvas exported", "path", app.config.Output, "format", format.String(), "scale", app.config.Scale)
	return nil
}

// truncate 文字列を指定した長さで切り詰める
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
