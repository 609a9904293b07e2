package domain

import (
	"fmt"
	"strings"
)

// AspectRatio はパネルに割り当てる縦横比の閉じた語彙です。
// 実行時にこの集合が変化することはありません。
type AspectRatio int

const (
	AspectStandard AspectRatio = iota // 4:3 標準コマ
	AspectWidescreen                  // 16:9 風景・establishing向け
	AspectCinematic                   // 47:20 (約2.35:1) アクション向け
	AspectSquare                      // 1:1
	AspectPortrait                    // 2:3 表情・クローズアップ向け
	AspectVertical                    // 3:4
	AspectExtremeVertical             // 1:2 高さ・落下の演出向け
)

// aspectDimensions は各列挙値の width:height を保持する参照テーブルです。
var aspectDimensions = map[AspectRatio][2]int{
	AspectStandard:        {4, 3},
	AspectWidescreen:      {16, 9},
	AspectCinematic:       {47, 20},
	AspectSquare:          {1, 1},
	AspectPortrait:        {2, 3},
	AspectVertical:        {3, 4},
	AspectExtremeVertical: {1, 2},
}

var aspectNames = map[AspectRatio]string{
	AspectStandard:        "STANDARD",
	AspectWidescreen:      "WIDESCREEN",
	AspectCinematic:       "CINEMATIC",
	AspectSquare:          "SQUARE",
	AspectPortrait:        "PORTRAIT",
	AspectVertical:        "VERTICAL",
	AspectExtremeVertical: "EXTREME_VERTICAL",
}

// Dimensions は width:height の整数ペアを返します。
func (a AspectRatio) Dimensions() (int, int) {
	d, ok := aspectDimensions[a]
	if !ok {
		d = aspectDimensions[AspectStandard]
	}
	return d[0], d[1]
}

// Ratio は数値としての縦横比（width / height）を返します。
func (a AspectRatio) Ratio() float64 {
	w, h := a.Dimensions()
	return float64(w) / float64(h)
}

// Name は列挙値の表示名を返します。
func (a AspectRatio) Name() string {
	if n, ok := aspectNames[a]; ok {
		return n
	}
	return aspectNames[AspectStandard]
}

// String は "STANDARD (4:3)" 形式の表記を返します。
func (a AspectRatio) String() string {
	w, h := a.Dimensions()
	return fmt.Sprintf("%s (%d:%d)", a.Name(), w, h)
}

// ReadingDirection はページの読み進め方向です。ページごとに不変です。
type ReadingDirection int

const (
	// Western は左→右・上→下の読み順です。
	Western ReadingDirection = iota
	// Manga は右→左・上→下の読み順です。
	Manga
)

// String は方向の識別ラベルを返します。
func (d ReadingDirection) String() string {
	if d == Manga {
		return "right_to_left"
	}
	return "left_to_right"
}

// ParseReadingDirection はラベル文字列を ReadingDirection に変換します。
// 未知のラベルは Western にフォールバックします。
func ParseReadingDirection(s string) ReadingDirection {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manga", "right_to_left", "rtl":
		return Manga
	default:
		return Western
	}
}
