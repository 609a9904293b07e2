package report

import (
	"fmt"
	"strings"

	"github.com/shouni/go-layout-kit/pkg/domain"
)

// Formatter はレイアウト計画を人間が読めるレポートに整形します。
// アルゴリズムの中核には属さない薄い提示層です。
type Formatter struct{}

// NewFormatter は新しい Formatter インスタンスを生成します。
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format はページ見出し、読み順に並べたパネル明細、構図分析の
// 3部構成でレポート文字列を組み立てます。
func (f *Formatter) Format(layout *domain.PageLayout) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("PAGE LAYOUT: %s\n", strings.ToUpper(layout.Mood)))
	sb.WriteString(strings.Repeat("=", 50) + "\n")
	sb.WriteString(fmt.Sprintf("Panels: %d | Mood: %s\n", layout.TotalPanels, layout.Mood))
	sb.WriteString(fmt.Sprintf("Format: %s | Flow: %s\n", layout.TargetFormat, layout.DominantFlow()))
	sb.WriteString(fmt.Sprintf("Composition: %s\n\n", layout.CompositionType()))

	sorted := layout.Panels.SortByReadingOrder(layout.ReadingDirection)

	for _, panel := range sorted {
		var marks string
		if panel.IsBleed {
			marks += " [BLEED]"
		}
		if panel.IsClimax {
			marks += " [CLIMAX]"
		}

		sb.WriteString(fmt.Sprintf("PANEL %d:\n", panel.ID))
		sb.WriteString(fmt.Sprintf("  Position: (%.1f, %.1f)\n", panel.X, panel.Y))
		sb.WriteString(fmt.Sprintf("  Size: %.1f x %.1f\n", panel.Width, panel.Height))
		sb.WriteString(fmt.Sprintf("  Ratio: %s\n", panel.AspectRatio))
		sb.WriteString(fmt.Sprintf("  Content: %s%s\n", panel.Content, marks))
		sb.WriteString(fmt.Sprintf("  Area: %.2f\n\n", panel.Area()))
	}

	sb.WriteString("COMPOSITION ANALYSIS:\n")
	sb.WriteString(fmt.Sprintf("- %s\n", layout.CompositionType()))
	sb.WriteString(fmt.Sprintf("- Dominant flow: %s\n", layout.DominantFlow()))
	if len(sorted) > 0 {
		sb.WriteString(fmt.Sprintf("- Accent on panel %d\n", sorted[0].ID))
	} else {
		sb.WriteString("- Accent on panel N/A\n")
	}
	sb.WriteString("- Ready for the artist\n")

	return sb.String()
}
