package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-layout-kit/pkg/domain"
	"github.com/shouni/go-layout-kit/pkg/layout"
	"github.com/shouni/go-layout-kit/pkg/report"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency は同時に計画するページ数の既定値です。
const DefaultBatchConcurrency = 4

// PagePlan は複数ページ計画の1ページ分の結果です。Page は1始まりです。
type PagePlan struct {
	Page   int
	Layout *domain.PageLayout
	Report string
}

// BatchRunner は複数ページの台本を並列に計画します。
// 各ページは自己完結した純粋計算なので、ページ間の調整は不要です。
// ページごとに baseSeed+ページ番号 でシードした専用エンジンを使うため、
// 並列度や完了順に関係なく結果は決定論的です。
type BatchRunner struct {
	formatter   *report.Formatter
	baseSeed    uint64
	concurrency int
}

// NewBatchRunner は BatchRunner を初期化します。concurrency が 0 以下の
// 場合は既定値を使います。
func NewBatchRunner(formatter *report.Formatter, baseSeed uint64, concurrency int) *BatchRunner {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}
	return &BatchRunner{
		formatter:   formatter,
		baseSeed:    baseSeed,
		concurrency: concurrency,
	}
}

// Run は全ページのレイアウトを並列生成し、入力順のまま結果を返します。
// いずれかのページが失敗した場合は全体をエラーとします。
func (b *BatchRunner) Run(ctx context.Context, scripts []*domain.Script) ([]PagePlan, error) {
	if len(scripts) == 0 {
		return nil, fmt.Errorf("計画対象の台本がありません")
	}

	plans := make([]PagePlan, len(scripts))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(b.concurrency)

	slog.InfoContext(ctx, "複数ページの並列計画を開始するのだ", "pages", len(scripts), "concurrency", b.concurrency)

	for i, script := range scripts {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			engine := layout.NewEngineSeeded(b.baseSeed + uint64(i))
			pageLayout, err := engine.GenerateLayout(
				script.CleanScenes(),
				script.KeyElements,
				script.Mood,
				script.TargetFormat,
				script.Direction(),
			)
			if err != nil {
				return fmt.Errorf("第 %d ページの計画に失敗しました: %w", i+1, err)
			}

			plans[i] = PagePlan{
				Page:   i + 1,
				Layout: pageLayout,
				Report: b.formatter.Format(pageLayout),
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "すべてのページ計画が完了したのだ", "pages", len(plans))
	return plans, nil
}
