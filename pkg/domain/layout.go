package domain

// PageLayout は1ページ分のレイアウト計画です。Panels の並びは
// テンプレート（生成）順であり、読み順ではありません。
// 構築後に変更されることはなく、複数ゴルーチンから読み取り共有できます。
type PageLayout struct {
	Panels           Panels           `json:"panels"`
	ReadingDirection ReadingDirection `json:"reading_direction"`
	Mood             string           `json:"mood"`
	TargetFormat     string           `json:"target_format"`

	// TotalPanels は切り詰め前に要求されたパネル数です。
	// シーン数がテンプレート枠より少ない場合、len(Panels) を上回ります。
	TotalPanels int `json:"total_panels"`
}

// highEnergyMoods は対角的な視線誘導を生むムードの集合です。
var highEnergyMoods = map[string]struct{}{
	"epic action":    {},
	"tense thriller": {},
}

// DominantFlow はページ全体の視線誘導パターンを分類します。
// Manga 方向は内容に依らず常に縦・右→左の流れとして扱います。
func (l *PageLayout) DominantFlow() string {
	if l.ReadingDirection == Manga {
		return "vertical_right_left"
	}

	if len(l.Panels) <= 4 {
		return "z_pattern"
	}
	if _, ok := highEnergyMoods[l.Mood]; ok {
		return "diagonal_dynamic"
	}
	return "modified_z"
}

// CompositionType は面積の分布からページの構図タイプを分類します。
// 1枚が平均の2倍超を占めるならピラミッド型の焦点構図とみなします。
func (l *PageLayout) CompositionType() string {
	if len(l.Panels) == 0 {
		return "balanced_grid"
	}

	var total, maxArea float64
	for _, p := range l.Panels {
		area := p.Area()
		total += area
		if area > maxArea {
			maxArea = area
		}
	}
	avg := total / float64(len(l.Panels))

	switch {
	case maxArea/avg > 2.0:
		return "pyramidal_focus"
	case len(l.Panels) <= 5:
		return "balanced_grid"
	default:
		return "rhythmic_mosaic"
	}
}

// ClimaxPanel はクライマックスに指定されたパネルを返します。
// 存在しない場合は ok=false を返します。
func (l *PageLayout) ClimaxPanel() (Panel, bool) {
	for _, p := range l.Panels {
		if p.IsClimax {
			return p, true
		}
	}
	return Panel{}, false
}
