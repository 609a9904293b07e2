package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-layout-kit/internal/config"
	"github.com/shouni/go-layout-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// batchCmd は、ディレクトリ内の全台本を並列に計画するのだ。
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "複数ページの台本をまとめて計画するのだ。",
	Long: `--script-dir 内の台本ファイル（1ファイル=1ページ）を名前順に読み込み、
ページごとに独立したレイアウト計画を並列実行して連番レポートを保存するのだ。`,
	Example: "  go-layout-kit batch -d scripts/ -o output/layout_plan.txt --concurrency 8",
	RunE:    batchCommand,
}

// batchCommand は、batch サブコマンドの実行ロジック本体なのだ。
func batchCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.ScriptDir == "" {
		return fmt.Errorf("台本ディレクトリ（--script-dir）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	applyOverrides(cfg)

	slog.Info("複数ページの計画を開始するのだ！",
		"dir", opts.ScriptDir,
		"concurrency", opts.Concurrency,
		"output", opts.OutputFile)

	if err := pipeline.ExecuteBatch(ctx, cfg); err != nil {
		return fmt.Errorf("バッチ実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべてのページ計画が完了したのだ！")
	return nil
}
