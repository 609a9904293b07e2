package runner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-layout-kit/pkg/domain"
	"github.com/shouni/go-layout-kit/pkg/layout"
	"github.com/shouni/go-layout-kit/pkg/parser"
	"github.com/shouni/go-layout-kit/pkg/report"

	"github.com/patrickmn/go-cache"
)

const (
	defaultCacheExpiration = 5 * time.Minute
	cacheCleanupInterval   = 15 * time.Minute
)

// PlanResult は1ページ分の計画とそのレポートをまとめた成果物です。
type PlanResult struct {
	Layout *domain.PageLayout
	Report string
}

// PlanRunner は台本の解析、レイアウト生成、レポート整形までを管理します。
// 同一台本の再計画を避けるため、内容ハッシュをキーに成果物をキャッシュします。
// 裁ち落とし判定は乱数を含むため、キャッシュヒット時は最初に確定した
// 計画をそのまま再利用します。
type PlanRunner struct {
	parser    parser.Parser
	engine    *layout.Engine
	formatter *report.Formatter
	planCache *cache.Cache
}

// NewPlanRunner は依存関係を注入して PlanRunner を初期化します。
func NewPlanRunner(p parser.Parser, engine *layout.Engine, formatter *report.Formatter) *PlanRunner {
	return &PlanRunner{
		parser:    p,
		engine:    engine,
		formatter: formatter,
		planCache: cache.New(defaultCacheExpiration, cacheCleanupInterval),
	}
}

// Run は解析済みの台本からレイアウト計画とレポートを生成します。
func (r *PlanRunner) Run(ctx context.Context, script *domain.Script) (*PlanResult, error) {
	if script == nil {
		return nil, fmt.Errorf("script データが nil です")
	}

	key, err := scriptCacheKey(script)
	if err == nil {
		if cached, ok := r.planCache.Get(key); ok {
			slog.InfoContext(ctx, "キャッシュ済みのレイアウト計画を再利用します", "key", key)
			return cached.(*PlanResult), nil
		}
	}

	pageLayout, err := r.engine.GenerateLayout(
		script.CleanScenes(),
		script.KeyElements,
		script.Mood,
		script.TargetFormat,
		script.Direction(),
	)
	if err != nil {
		return nil, fmt.Errorf("レイアウト生成に失敗しました: %w", err)
	}

	result := &PlanResult{
		Layout: pageLayout,
		Report: r.formatter.Format(pageLayout),
	}

	if key != "" {
		r.planCache.Set(key, result, cache.DefaultExpiration)
	}

	slog.InfoContext(ctx, "レイアウト計画を生成しました",
		"panels", len(pageLayout.Panels),
		"requested", pageLayout.TotalPanels,
		"flow", pageLayout.DominantFlow(),
		"composition", pageLayout.CompositionType(),
	)
	return result, nil
}

// RunFromPath は台本ファイルを読み込んでから Run を実行します。
func (r *PlanRunner) RunFromPath(ctx context.Context, scriptFile string) (*PlanResult, error) {
	if r.parser == nil {
		return nil, fmt.Errorf("パーサーが設定されていません")
	}

	script, err := r.parser.ParseFromPath(ctx, scriptFile)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, script)
}

// scriptCacheKey は台本内容の sha256 からキャッシュキーを生成します。
func scriptCacheKey(script *domain.Script) (string, error) {
	data, err := json.Marshal(script)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16], nil
}
