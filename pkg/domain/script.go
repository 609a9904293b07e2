package domain

import "strings"

// Script は上流の台本から渡される、1ページ分のレイアウト入力です。
// Scenes の1要素が1パネル候補に対応します。
type Script struct {
	Title            string   `json:"title" yaml:"title"`
	Scenes           []string `json:"scenes" yaml:"scenes"`
	KeyElements      []string `json:"key_elements" yaml:"key_elements"`
	Mood             string   `json:"mood" yaml:"mood"`
	TargetFormat     string   `json:"target_format" yaml:"target_format"`
	ReadingDirection string   `json:"reading_direction" yaml:"reading_direction"`
}

// Direction は文字列フィールドを ReadingDirection に解決します。
func (s *Script) Direction() ReadingDirection {
	return ParseReadingDirection(s.ReadingDirection)
}

// CleanScenes は空白のみのシーン記述を取り除いた新しいスライスを返します。
func (s *Script) CleanScenes() []string {
	cleaned := make([]string, 0, len(s.Scenes))
	for _, scene := range s.Scenes {
		if trimmed := strings.TrimSpace(scene); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
