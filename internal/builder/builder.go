package builder

import (
	"github.com/shouni/go-layout-kit/pkg/layout"
	"github.com/shouni/go-layout-kit/pkg/parser"
	"github.com/shouni/go-layout-kit/pkg/report"
	"github.com/shouni/go-layout-kit/pkg/runner"
)

// BuildEngine はシード指定に応じたレイアウトエンジンを構築します。
// --seed が指定されていれば、同じ入力から常に同じ計画が得られるのだ。
func BuildEngine(appCtx *AppContext) *layout.Engine {
	if seed := appCtx.Options.Seed; seed != 0 {
		return layout.NewEngineSeeded(seed)
	}
	return layout.NewEngine()
}

// BuildPlanRunner は1ページ計画を担当する Runner を構築します。
func BuildPlanRunner(appCtx *AppContext) *runner.PlanRunner {
	return runner.NewPlanRunner(
		parser.NewScriptParser(appCtx.Reader),
		BuildEngine(appCtx),
		report.NewFormatter(),
	)
}

// BuildBatchRunner は複数ページの並列計画を担当する Runner を構築します。
func BuildBatchRunner(appCtx *AppContext) *runner.BatchRunner {
	return runner.NewBatchRunner(
		report.NewFormatter(),
		appCtx.Options.Seed,
		appCtx.Options.Concurrency,
	)
}
