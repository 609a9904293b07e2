package layout

import (
	"errors"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/shouni/go-layout-kit/pkg/domain"
)

// ErrNoScenes はシーンが1つも与えられなかった場合の唯一のハードエラーです。
// それ以外の不正入力はすべて既定値へのフォールバックで吸収します。
var ErrNoScenes = errors.New("シーンが1つも指定されていません")

// Engine はシーン記述と文脈パラメータから PageLayout を構築する
// レイアウト計画の中核です。クライマックスの裁ち落とし判定に使う
// 乱数源以外に状態を持たず、呼び出し間で共有される可変状態もありません。
type Engine struct {
	rng *rand.Rand
}

// NewEngine はプロセス由来のシードで初期化したエンジンを返します。
func NewEngine() *Engine {
	return &Engine{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// NewEngineSeeded は固定シードのエンジンを返します。
// 同一入力・同一シードであれば常に同一の PageLayout を生成します。
func NewEngineSeeded(seed uint64) *Engine {
	return &Engine{
		rng: rand.New(rand.NewPCG(seed, seed)),
	}
}

// GenerateLayout は台本データから1ページ分のレイアウト計画を生成します。
//
// 処理は (1) パネル数の推定 (2) クライマックス検出 (3) テンプレート選択
// (4) クライマックス拡大 (5) 境界正規化 (6) パネル構築 の順に進みます。
// reading_direction は読み順の提示にのみ使われ、矩形の幾何には影響しません。
func (e *Engine) GenerateLayout(
	scenes []string,
	keyElements []string,
	mood string,
	targetFormat string,
	dir domain.ReadingDirection,
) (*domain.PageLayout, error) {
	cleaned := cleanScenes(scenes)
	if len(cleaned) == 0 {
		return nil, ErrNoScenes
	}

	panelCount := calculatePanelCount(cleaned, mood, targetFormat)
	climaxIndex := findClimax(cleaned, keyElements)

	template := selectLayoutTemplate(panelCount, mood)
	adjusted := adjustForClimax(template, climaxIndex)

	panels := e.buildPanels(adjusted, cleaned, climaxIndex)

	return &domain.PageLayout{
		Panels:           panels,
		ReadingDirection: dir,
		Mood:             mood,
		TargetFormat:     targetFormat,
		TotalPanels:      panelCount,
	}, nil
}

// cleanScenes は空白のみのシーンを除いたスライスを返します。
func cleanScenes(scenes []string) []string {
	cleaned := make([]string, 0, len(scenes))
	for _, s := range scenes {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

// calculatePanelCount はシーン数にムード係数を掛けて四捨五入し、
// [3, フォーマット上限] にクランプしたパネル数を返します。
func calculatePanelCount(scenes []string, mood, targetFormat string) int {
	factor, ok := moodFactors[mood]
	if !ok {
		factor = defaultMoodFactor
	}
	limit, ok := formatLimits[targetFormat]
	if !ok {
		limit = defaultFormatLimit
	}

	calculated := int(math.Round(float64(len(scenes)) * factor))
	if calculated < minPanelCount {
		return minPanelCount
	}
	if calculated > limit {
		return limit
	}
	return calculated
}

// findClimax は各シーンの劇的強度を採点し、最大スコアに最初に到達した
// シーンの添字を返します。同点は常に先のシーンが勝ちます。
// 近接した入力間でクライマックスが揺れないよう、この先着規則は厳守します。
func findClimax(scenes []string, keyElements []string) int {
	best, bestIndex := -1, 0
	for i, scene := range scenes {
		lower := strings.ToLower(scene)

		score := 0
		for _, kw := range climaxKeywords {
			if strings.Contains(lower, kw.Word) {
				score += kw.Weight
			}
		}
		for _, element := range keyElements {
			if element == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(element)) {
				score += keyElementBonus
			}
		}

		if score > best {
			best, bestIndex = score, i
		}
	}
	return bestIndex
}

// selectLayoutTemplate はパネル数に対応するテンプレートを選びます。
// 定義のないパネル数には均等グリッドを合成します。ムードが dynamic な
// スタイルに対応し、かつ複数バリアントがある場合のみ第2バリアントを使います。
func selectLayoutTemplate(panelCount int, mood string) []rect {
	variants, ok := layoutTemplates[panelCount]
	if !ok {
		variants = [][]rect{generateGridLayout(panelCount)}
	}

	style, ok := moodStyles[mood]
	if !ok {
		style = defaultMoodStyle
	}

	if style == "dynamic" && len(variants) > 1 {
		return variants[1]
	}
	return variants[0]
}

// generateGridLayout は cols=ceil(sqrt(n)) の均等グリッドを行優先で合成します。
func generateGridLayout(panelCount int) []rect {
	cols := int(math.Ceil(math.Sqrt(float64(panelCount))))
	rows := int(math.Ceil(float64(panelCount) / float64(cols)))

	cellWidth := 1.0 / float64(cols)
	cellHeight := 1.0 / float64(rows)

	grid := make([]rect, 0, panelCount)
	for i := 0; i < panelCount; i++ {
		row := i / cols
		col := i % cols
		grid = append(grid, rect{
			X: float64(col) * cellWidth,
			Y: float64(row) * cellHeight,
			W: cellWidth,
			H: cellHeight,
		})
	}
	return grid
}

// adjustForClimax はクライマックス枠の幅・高さを拡大した新しい矩形列を返します。
// 拡大でページ外にはみ出した分は正規化で吸収します。元のテンプレートは
// 共有データなので、ここでは決して書き換えません。
func adjustForClimax(template []rect, climaxIndex int) []rect {
	adjusted := make([]rect, len(template))
	copy(adjusted, template)

	if climaxIndex < len(adjusted) {
		adjusted[climaxIndex].W *= climaxScale
		adjusted[climaxIndex].H *= climaxScale
	}

	return normalizeLayout(adjusted)
}

// normalizeLayout は全矩形をページ境界に収める整形パスです。
// x,y を [0,1] に、幅・高さを [0.1, 1] にクランプし、はみ出しは縮めます。
// パネル同士の重なりはここでは解決しません。
func normalizeLayout(layout []rect) []rect {
	normalized := make([]rect, 0, len(layout))
	for _, r := range layout {
		r.X = clamp(r.X, 0.0, 1.0)
		r.Y = clamp(r.Y, 0.0, 1.0)
		r.W = clamp(r.W, minPanelSize, 1.0)
		r.H = clamp(r.H, minPanelSize, 1.0)

		if r.X+r.W > 1.0 {
			r.W = 1.0 - r.X
		}
		if r.Y+r.H > 1.0 {
			r.H = 1.0 - r.Y
		}

		normalized = append(normalized, r)
	}
	return normalized
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// buildPanels は正規化済みテンプレートとシーンを順に対にして Panel を構築します。
// 短い方で打ち切るため、シーンが足りない末尾の枠は黙って捨てられます。
func (e *Engine) buildPanels(template []rect, scenes []string, climaxIndex int) domain.Panels {
	panels := make(domain.Panels, 0, len(template))

	for i, r := range template {
		if i >= len(scenes) {
			break
		}

		content := scenes[i]
		isClimax := i == climaxIndex
		isBleed := isClimax && e.rng.Float64() > bleedThreshold

		panels = append(panels, domain.Panel{
			ID:          i + 1,
			X:           r.X,
			Y:           r.Y,
			Width:       r.W,
			Height:      r.H,
			AspectRatio: determineAspectRatio(content),
			Content:     content,
			IsClimax:    isClimax,
			IsBleed:     isBleed,
		})
	}

	return panels
}

// determineAspectRatio はシーン記述から縦横比を決めます。
// まず対応表を宣言順に走査し、どれにも該当しなければ内容の傾向
// （表情系→PORTRAIT、動作系→CINEMATIC）で既定値を選びます。
func determineAspectRatio(content string) domain.AspectRatio {
	lower := strings.ToLower(content)

	for _, entry := range contentRatios {
		if strings.Contains(lower, entry.Keyword) {
			return entry.Ratio
		}
	}

	if containsAny(lower, portraitHints) {
		return domain.AspectPortrait
	}
	if containsAny(lower, cinematicHints) {
		return domain.AspectCinematic
	}
	return domain.AspectStandard
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
