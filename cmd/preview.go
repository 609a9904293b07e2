package cmd

import (
	"fmt"

	"github.com/shouni/go-layout-kit/internal/config"
	"github.com/shouni/go-layout-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// previewCmd は、レイアウト計画を端末上のASCIIグリッドで確認するのだ。
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "計画したパネル配置をASCIIグリッドで描くのだ。",
	Long: `plan と同じ計画を実行して、レポートの代わりにページの見取り図を
標準出力へ描画するのだ。クライマックスのパネルは '#' で示されるのだよ。`,
	Example: "  go-layout-kit preview -f examples/script.yaml --seed 42",
	RunE:    previewCommand,
}

// previewCommand は、preview サブコマンドの実行ロジック本体なのだ。
func previewCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.ScriptFile == "" {
		return fmt.Errorf("台本（--script-file）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	applyOverrides(cfg)

	if err := pipeline.ExecutePreview(ctx, cfg); err != nil {
		return fmt.Errorf("プレビュー実行中にエラーが発生したのだ: %w", err)
	}
	return nil
}
