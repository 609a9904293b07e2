package layout

import "github.com/shouni/go-layout-kit/pkg/domain"

// rect はテンプレート段階の正規化矩形です。Panel 構築前の中間表現であり、
// この型のままパッケージ外へ出ることはありません。
type rect struct {
	X, Y, W, H float64
}

// layoutTemplates はパネル数ごとの事前定義テンプレートです。
// 各テンプレートはページ全面を覆う矩形列で、複数バリアントを持てます。
// 定義のないパネル数には均等グリッドを合成します。
var layoutTemplates = map[int][][]rect{
	4: {
		{
			{0.0, 0.0, 0.5, 0.5}, {0.5, 0.0, 0.5, 0.5},
			{0.0, 0.5, 0.5, 0.5}, {0.5, 0.5, 0.5, 0.5},
		},
	},
	5: {
		{
			{0.0, 0.0, 0.6, 0.4}, {0.6, 0.0, 0.4, 0.4},
			{0.0, 0.4, 1.0, 0.3},
			{0.0, 0.7, 0.5, 0.3}, {0.5, 0.7, 0.5, 0.3},
		},
	},
	6: {
		{
			{0.0, 0.0, 0.6, 0.3}, {0.6, 0.0, 0.4, 0.3},
			{0.0, 0.3, 0.45, 0.25}, {0.45, 0.3, 0.55, 0.25},
			{0.0, 0.55, 0.3, 0.45}, {0.3, 0.55, 0.7, 0.45},
		},
	},
}

// moodFactors はムードごとのパネル数係数です。未知のムードは 1.0 扱いです。
var moodFactors = map[string]float64{
	"epic action":    0.8,
	"lyrical drama":  1.2,
	"tense thriller": 1.0,
	"comedy sketch":  1.4,
}

// formatLimits は出力フォーマットごとのパネル数上限です。未知の値は 8 扱いです。
var formatLimits = map[string]int{
	"webcomic":       9,
	"print manga":    7,
	"european album": 6,
	"social story":   4,
}

// moodStyles はムードからテンプレートのスタイル傾向への対応表です。
var moodStyles = map[string]string{
	"epic action":    "dynamic",
	"lyrical drama":  "balanced",
	"tense thriller": "tight",
	"comedy sketch":  "varied",
}

const (
	defaultMoodFactor  = 1.0
	defaultFormatLimit = 8
	defaultMoodStyle   = "balanced"

	minPanelCount = 3

	// climaxScale はクライマックスパネルの拡大率です。
	climaxScale = 1.3
	// minPanelSize は正規化後に許容する最小の幅・高さです。
	minPanelSize = 0.1
	// bleedThreshold を超えた乱数値でクライマックスを裁ち落としにします（約30%）。
	bleedThreshold = 0.7
)

// climaxKeywords は劇的強度のキーワード重み表です。
// スコアは一致した全キーワードの合算なので並び順に意味はありませんが、
// 重みの降順で宣言して意図を読み取りやすくしています。
var climaxKeywords = []struct {
	Word   string
	Weight int
}{
	{"explosion", 10},
	{"climax", 9},
	{"decisive", 8},
	{"shocking", 8},
	{"key", 7},
	{"unexpected", 7},
	{"battle", 6},
}

// keyElementBonus はシーンに台本の重要モチーフが現れた際の加点です。
const keyElementBonus = 3

// contentRatios はシーン記述のキーワードから縦横比を引く対応表です。
// 最初に一致したキーワードが勝つため、宣言順がそのまま優先順位になります。
var contentRatios = []struct {
	Keyword string
	Ratio   domain.AspectRatio
}{
	{"establishing", domain.AspectWidescreen},
	{"landscape", domain.AspectWidescreen},
	{"city", domain.AspectWidescreen},
	{"running", domain.AspectCinematic},
	{"movement", domain.AspectCinematic},
	{"chase", domain.AspectCinematic},
	{"close-up", domain.AspectPortrait},
	{"face", domain.AspectPortrait},
	{"emotion", domain.AspectPortrait},
	{"height", domain.AspectExtremeVertical},
	{"falling", domain.AspectExtremeVertical},
}

// キーワード表に該当しなかった場合の内容ベースのフォールバック判定語です。
var (
	portraitHints  = []string{"emotion", "face", "reaction"}
	cinematicHints = []string{"action", "movement"}
)
