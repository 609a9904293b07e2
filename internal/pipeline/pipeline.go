package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shouni/go-layout-kit/internal/builder"
	"github.com/shouni/go-layout-kit/internal/config"
	"github.com/shouni/go-layout-kit/pkg/domain"
	"github.com/shouni/go-layout-kit/pkg/parser"
	"github.com/shouni/go-layout-kit/pkg/report"
	"github.com/shouni/go-layout-kit/pkg/runner"

	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

const reportMimeType = "text/plain; charset=utf-8"

// ExecutePlan は台本1ファイルからレイアウト計画を生成し、レポートを保存するのだ。
func ExecutePlan(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	result, err := planPage(ctx, appCtx, cfg)
	if err != nil {
		return err
	}

	outputPath := cfg.Options.OutputFile
	if err := appCtx.Writer.Write(ctx, outputPath, strings.NewReader(result.Report), reportMimeType); err != nil {
		return fmt.Errorf("レポートの保存に失敗したのだ (path: %s): %w", outputPath, err)
	}

	slog.Info("ページ計画が完成したのだ！",
		"path", outputPath,
		"panels", len(result.Layout.Panels),
		"composition", result.Layout.CompositionType(),
	)
	return nil
}

// ExecutePreview は台本からASCIIプレビューを組み立てて標準出力に描くのだ。
func ExecutePreview(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	result, err := planPage(ctx, appCtx, cfg)
	if err != nil {
		return err
	}

	preview := report.RenderPreview(result.Layout, cfg.Options.PreviewCols, cfg.Options.PreviewRows)
	fmt.Print(preview)
	return nil
}

// ExecuteBatch はディレクトリ内の全台本を並列に計画し、連番でレポートを保存するのだ。
// ディレクトリ走査はローカル専用なのだ（個々のファイル読み書きは gs:// も可）。
func ExecuteBatch(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	scriptPaths, err := listScripts(cfg.Options.ScriptDir)
	if err != nil {
		return err
	}
	if len(scriptPaths) == 0 {
		return fmt.Errorf("台本ファイルが見つからないのだ (dir: %s)", cfg.Options.ScriptDir)
	}

	// 1. 全台本の読み込み
	scriptParser := parser.NewScriptParser(appCtx.Reader)
	scripts := make([]*domain.Script, 0, len(scriptPaths))
	for _, path := range scriptPaths {
		script, err := scriptParser.ParseFromPath(ctx, path)
		if err != nil {
			return err
		}
		mergeScriptDefaults(script, cfg)
		scripts = append(scripts, script)
	}

	// 2. 並列計画
	batchRunner := builder.BuildBatchRunner(appCtx)
	plans, err := batchRunner.Run(ctx, scripts)
	if err != nil {
		return fmt.Errorf("複数ページの計画に失敗したのだ: %w", err)
	}

	// 3. 連番を付けて保存
	for _, plan := range plans {
		pagePath := indexedPath(cfg.Options.OutputFile, plan.Page)
		if err := appCtx.Writer.Write(ctx, pagePath, strings.NewReader(plan.Report), reportMimeType); err != nil {
			return fmt.Errorf("第 %d ページのレポート保存に失敗したのだ (path: %s): %w", plan.Page, pagePath, err)
		}
		slog.Info("ページレポートを保存したのだ", "page", plan.Page, "path", pagePath)
	}

	return nil
}

// planPage は台本1ファイルを読み込み、設定の既定値を補ってから計画するのだ。
func planPage(ctx context.Context, appCtx *builder.AppContext, cfg *config.Config) (*runner.PlanResult, error) {
	scriptParser := parser.NewScriptParser(appCtx.Reader)
	script, err := scriptParser.ParseFromPath(ctx, cfg.Options.ScriptFile)
	if err != nil {
		return nil, err
	}
	mergeScriptDefaults(script, cfg)

	planRunner := builder.BuildPlanRunner(appCtx)
	result, err := planRunner.Run(ctx, script)
	if err != nil {
		return nil, fmt.Errorf("レイアウト計画に失敗したのだ: %w", err)
	}
	return result, nil
}

// mergeScriptDefaults は台本に無い文脈パラメータを設定値で補うのだ。
// プレーンテキスト台本はシーンしか持てないので、ここでの補完が効くのだ。
func mergeScriptDefaults(script *domain.Script, cfg *config.Config) {
	if script.Mood == "" {
		script.Mood = cfg.Mood
	}
	if script.TargetFormat == "" {
		script.TargetFormat = cfg.TargetFormat
	}
	if script.ReadingDirection == "" {
		script.ReadingDirection = cfg.Direction
	}
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、
// アプリケーションコンテキストを初期化して返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	gcsFactory, err := gcsfactory.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.InputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.OutputWriter()
	if err != nil {
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, reader, writer)
	return &appCtx, nil
}

// listScripts はディレクトリから台本らしき拡張子のファイルを名前順で集めるのだ。
func listScripts(dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("台本ディレクトリ（--script-dir）を指定してほしいのだ")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("台本ディレクトリの読み込みに失敗したのだ (%s): %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml", ".txt":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// indexedPath は "layout_plan.txt" を "layout_plan_3.txt" のような連番パスにするのだ。
func indexedPath(basePath string, index int) string {
	ext := filepath.Ext(basePath)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(basePath, ext), index, ext)
}
