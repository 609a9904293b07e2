package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-layout-kit/internal/config"
	"github.com/shouni/go-layout-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// planCmd は、台本1ファイルからページレイアウト計画を生成するのだ。
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "台本からページレイアウト計画を生成するのだ。",
	Long: `シーン記述のリストを解析し、パネル数・クライマックス・矩形配置を決めた
レイアウト計画レポートを出力するのだ。台本は JSON / YAML / プレーンテキストに対応なのだ。`,
	Example: "  go-layout-kit plan -f examples/script.yaml -o output/layout_plan.txt",
	RunE:    planCommand,
}

// planCommand は、plan サブコマンドの実行ロジック本体なのだ。
func planCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if opts.ScriptFile == "" {
		return fmt.Errorf("台本（--script-file）を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードして、フラグで上書きするのだ
	cfg := config.LoadConfig()
	applyOverrides(cfg)

	slog.Info("レイアウト計画を開始するのだ！",
		"script", opts.ScriptFile,
		"mood", cfg.Mood,
		"format", cfg.TargetFormat,
		"output", opts.OutputFile)

	if err := pipeline.ExecutePlan(ctx, cfg); err != nil {
		return fmt.Errorf("計画パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("レイアウト計画が完了したのだ！")
	return nil
}
