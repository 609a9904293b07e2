package config

import (
	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultMood         = "lyrical drama"
	DefaultTargetFormat = "webcomic"
	DefaultDirection    = "western"
	DefaultOutputFile   = "output/layout_plan.txt" // レポートのデフォルト保存先なのだ
	DefaultPreviewCols  = 40
	DefaultPreviewRows  = 20
	DefaultConcurrency  = 4
)

// Config はアプリケーション全体の環境設定を保持する構造体なのだ。
type Config struct {
	Mood         string
	TargetFormat string
	Direction    string

	Options PlanOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		Mood:         envutil.GetEnv("LAYOUT_MOOD", DefaultMood),
		TargetFormat: envutil.GetEnv("LAYOUT_FORMAT", DefaultTargetFormat),
		Direction:    envutil.GetEnv("LAYOUT_DIRECTION", DefaultDirection),
	}
	return cfg
}

// PlanOptions は CLI フラグから渡される実行時のパラメータなのだ。
type PlanOptions struct {
	// ソース入力関連
	ScriptFile string // --script-file
	ScriptDir  string // --script-dir (batch用)
	OutputFile string // --output-file

	// レイアウト挙動の上書き設定
	Mood         string // --mood
	TargetFormat string // --format
	Direction    string // --direction
	Seed         uint64 // --seed: 0なら実行ごとに異なる裁ち落とし判定になるのだ

	// プレビュー表示
	PreviewCols int // --preview-cols
	PreviewRows int // --preview-rows

	// 実行制御
	Concurrency int // --concurrency: batchの並列ページ数
}
