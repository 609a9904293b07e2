package domain

import "sort"

// Panels はパネル列に対する検索・整列ヘルパーを提供する型です。
type Panels []Panel

// SortByReadingOrder はパネルを人間の読み順に並べ替えた新しいスライスを返します。
// Manga は (-y, -x)、Western は (y, x) のキーで安定ソートします。
// 読み順は ID（生成順）から独立しており、要求のたびに計算し直します。
func (ps Panels) SortByReadingOrder(dir ReadingDirection) Panels {
	sorted := make(Panels, len(ps))
	copy(sorted, ps)

	if dir == Manga {
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Y != sorted[j].Y {
				return sorted[i].Y > sorted[j].Y
			}
			return sorted[i].X > sorted[j].X
		})
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})
	return sorted
}
