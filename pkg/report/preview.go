package report

import (
	"fmt"
	"strings"

	"github.com/shouni/go-layout-kit/pkg/domain"
)

const (
	// DefaultPreviewCols と DefaultPreviewRows は端末表示向けの既定解像度です。
	DefaultPreviewCols = 40
	DefaultPreviewRows = 20

	emptyCell  = '.'
	climaxCell = '#'
)

// RenderPreview はパネル配置を cols×rows の文字グリッドとして描画します。
// 各セルには覆っているパネルの ID（10の剰余）、クライマックスには '#' を
// 置きます。パネルは生成順に上書きするため、重なりは後のパネルが勝ちます。
func RenderPreview(layout *domain.PageLayout, cols, rows int) string {
	if cols <= 0 {
		cols = DefaultPreviewCols
	}
	if rows <= 0 {
		rows = DefaultPreviewRows
	}

	grid := make([][]rune, rows)
	for y := range grid {
		grid[y] = make([]rune, cols)
		for x := range grid[y] {
			grid[y][x] = emptyCell
		}
	}

	for _, panel := range layout.Panels {
		mark := rune('0' + panel.ID%10)
		if panel.IsClimax {
			mark = climaxCell
		}

		x0 := int(panel.X * float64(cols))
		y0 := int(panel.Y * float64(rows))
		x1 := int((panel.X + panel.Width) * float64(cols))
		y1 := int((panel.Y + panel.Height) * float64(rows))

		for y := y0; y < y1 && y < rows; y++ {
			for x := x0; x < x1 && x < cols; x++ {
				grid[y][x] = mark
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("page preview (%s, %s)\n", layout.Mood, layout.ReadingDirection))
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
