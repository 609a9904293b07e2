package cmd

import (
	"github.com/shouni/go-layout-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// opts は全サブコマンドで共有する実行時オプションなのだ。
var opts config.PlanOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.ScriptFile, "script-file", "f", "", "台本ファイルのパス（ローカル or gs://...）なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.ScriptDir, "script-dir", "d", "", "batch用の台本ディレクトリなのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputFile, "output-file", "o", config.DefaultOutputFile, "レポートの保存パス（ローカル or gs://...）なのだ。")

	// --- レイアウト挙動設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.Mood, "mood", "m", "", "ページのムード（epic action / lyrical drama など）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.TargetFormat, "format", "", "出力フォーマット（webcomic / print manga など）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.Direction, "direction", "", "読み順（western / manga）なのだ。")
	rootCmd.PersistentFlags().Uint64Var(&opts.Seed, "seed", 0, "裁ち落とし判定の乱数シードなのだ。0なら実行ごとに変わるのだ。")

	// --- プレビュー・実行制御 ---
	previewCmd.Flags().IntVar(&opts.PreviewCols, "preview-cols", config.DefaultPreviewCols, "プレビューの横セル数なのだ。")
	previewCmd.Flags().IntVar(&opts.PreviewRows, "preview-rows", config.DefaultPreviewRows, "プレビューの縦セル数なのだ。")
	batchCmd.Flags().IntVar(&opts.Concurrency, "concurrency", config.DefaultConcurrency, "同時に計画するページ数なのだ。")
}

// preRunAppE は、コマンド実行前の共通準備を行うのだ。
// .env があれば読み込むけれど、無くてもエラーにはしないのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"go-layout-kit",
		addAppFlags,
		preRunAppE,
		planCmd,
		previewCmd,
		batchCmd,
	)
}

// applyOverrides は、環境設定にCLIフラグの上書きを反映するのだ。
func applyOverrides(cfg *config.Config) {
	if opts.Mood != "" {
		cfg.Mood = opts.Mood
	}
	if opts.TargetFormat != "" {
		cfg.TargetFormat = opts.TargetFormat
	}
	if opts.Direction != "" {
		cfg.Direction = opts.Direction
	}
	cfg.Options = opts
}
