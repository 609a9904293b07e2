package layout

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/shouni/go-layout-kit/pkg/domain"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

var chaseScenes = []string{
	"Night city, establishing shot of the skyline",
	"The protagonist is running across the rooftop",
	"Close-up: a terrified face",
	"An explosion right behind him",
	"Debris falling from above",
	"Dodging a falling beam",
}

func TestGenerateLayout_PanelCount(t *testing.T) {
	t.Run("epic actionのwebcomicは6シーンが5パネルになるのだ", func(t *testing.T) {
		engine := NewEngineSeeded(1)
		layout, err := engine.GenerateLayout(chaseScenes, nil, "epic action", "webcomic", domain.Western)
		if err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}

		// round(6 * 0.8) = 5, clamp(5, 3, 9) = 5
		if layout.TotalPanels != 5 {
			t.Errorf("期待値 5, 実際の値 %d", layout.TotalPanels)
		}
		if len(layout.Panels) != 5 {
			t.Errorf("パネルは5枚構築されるはずなのだ: %d", len(layout.Panels))
		}
	})

	t.Run("2シーンでも最低3パネルが要求されて2枚だけ構築されるのだ", func(t *testing.T) {
		engine := NewEngineSeeded(1)
		layout, err := engine.GenerateLayout([]string{"scene one", "scene two"}, nil, "unknown mood", "unknown format", domain.Western)
		if err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}

		// clamp(round(2 * 1.0), 3, 8) = 3、ただしシーンが2つなので末尾の枠は捨てられるのだ
		if layout.TotalPanels != 3 {
			t.Errorf("要求パネル数の期待値 3, 実際の値 %d", layout.TotalPanels)
		}
		if len(layout.Panels) != 2 {
			t.Errorf("構築パネル数の期待値 2, 実際の値 %d", len(layout.Panels))
		}
	})

	t.Run("未知のフォーマットは上限8にクランプされるのだ", func(t *testing.T) {
		scenes := make([]string, 10)
		for i := range scenes {
			scenes[i] = "an ordinary scene"
		}
		engine := NewEngineSeeded(1)
		layout, err := engine.GenerateLayout(scenes, nil, "tense thriller", "zine", domain.Western)
		if err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}
		if layout.TotalPanels != 8 {
			t.Errorf("期待値 8, 実際の値 %d", layout.TotalPanels)
		}
	})

	t.Run("social storyは4パネルで頭打ちなのだ", func(t *testing.T) {
		engine := NewEngineSeeded(1)
		layout, err := engine.GenerateLayout(chaseScenes, nil, "tense thriller", "social story", domain.Western)
		if err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}
		if layout.TotalPanels != 4 {
			t.Errorf("期待値 4, 実際の値 %d", layout.TotalPanels)
		}
	})
}

func TestGenerateLayout_EmptyScenes(t *testing.T) {
	engine := NewEngineSeeded(1)

	t.Run("シーンが空ならErrNoScenesなのだ", func(t *testing.T) {
		_, err := engine.GenerateLayout(nil, nil, "epic action", "webcomic", domain.Western)
		if !errors.Is(err, ErrNoScenes) {
			t.Errorf("ErrNoScenesが返るはずなのだ: %v", err)
		}
	})

	t.Run("空白だけのシーンもフィルタ後に空扱いなのだ", func(t *testing.T) {
		_, err := engine.GenerateLayout([]string{"   ", "\t"}, nil, "epic action", "webcomic", domain.Western)
		if !errors.Is(err, ErrNoScenes) {
			t.Errorf("ErrNoScenesが返るはずなのだ: %v", err)
		}
	})
}

func TestFindClimax(t *testing.T) {
	t.Run("explosionを含むシーンが最後でもクライマックスに選ばれるのだ", func(t *testing.T) {
		scenes := []string{
			"a quiet morning",
			"walking to school",
			"suddenly, an explosion tears the street apart",
		}
		if got := findClimax(scenes, nil); got != 2 {
			t.Errorf("期待値 2, 実際の値 %d", got)
		}
	})

	t.Run("同点なら先のシーンが勝つのだ", func(t *testing.T) {
		scenes := []string{
			"the battle begins",
			"the battle rages on",
		}
		if got := findClimax(scenes, nil); got != 0 {
			t.Errorf("先着規則が破れているのだ: %d", got)
		}
	})

	t.Run("全スコアゼロなら先頭のシーンなのだ", func(t *testing.T) {
		scenes := []string{"calm", "still calm", "even calmer"}
		if got := findClimax(scenes, nil); got != 0 {
			t.Errorf("期待値 0, 実際の値 %d", got)
		}
	})

	t.Run("key_elementsの一致は+3で効くのだ", func(t *testing.T) {
		scenes := []string{
			"a quiet morning",
			"she is looking at the watch nervously",
		}
		if got := findClimax(scenes, []string{"looking at the watch"}); got != 1 {
			t.Errorf("期待値 1, 実際の値 %d", got)
		}
	})

	t.Run("キーワード検索は大文字小文字を区別しないのだ", func(t *testing.T) {
		scenes := []string{"nothing here", "THE EXPLOSION!"}
		if got := findClimax(scenes, nil); got != 1 {
			t.Errorf("期待値 1, 実際の値 %d", got)
		}
	})
}

func TestGenerateLayout_ClimaxFlags(t *testing.T) {
	t.Run("クライマックスは最大1枚でbleedはそこにしか立たないのだ", func(t *testing.T) {
		for seed := uint64(1); seed <= 50; seed++ {
			engine := NewEngineSeeded(seed)
			layout, err := engine.GenerateLayout(chaseScenes, nil, "epic action", "webcomic", domain.Western)
			if err != nil {
				t.Fatalf("生成に失敗したのだ: %v", err)
			}

			climaxCount := 0
			for _, p := range layout.Panels {
				if p.IsClimax {
					climaxCount++
				}
				if p.IsBleed && !p.IsClimax {
					t.Fatalf("クライマックスでないパネル %d にbleedが立っているのだ", p.ID)
				}
			}
			if climaxCount > 1 {
				t.Fatalf("クライマックスが %d 枚あるのだ (seed=%d)", climaxCount, seed)
			}
		}
	})

	t.Run("explosionのシーンがクライマックスとして拡大されるのだ", func(t *testing.T) {
		engine := NewEngineSeeded(1)
		layout, err := engine.GenerateLayout(chaseScenes, nil, "epic action", "webcomic", domain.Western)
		if err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}

		climax, ok := layout.ClimaxPanel()
		if !ok {
			t.Fatal("クライマックスパネルが存在しないのだ")
		}
		// chaseScenes[3] が "explosion" で重み10のトップなのだ
		if climax.ID != 4 {
			t.Errorf("クライマックスIDの期待値 4, 実際の値 %d", climax.ID)
		}
	})
}

func TestGenerateLayout_BoundaryInvariant(t *testing.T) {
	moods := []string{"epic action", "lyrical drama", "tense thriller", "comedy sketch", "unknown"}
	formats := []string{"webcomic", "print manga", "european album", "social story", "unknown"}

	for _, mood := range moods {
		for _, format := range formats {
			engine := NewEngineSeeded(7)
			layout, err := engine.GenerateLayout(chaseScenes, []string{"emotion: panic"}, mood, format, domain.Western)
			if err != nil {
				t.Fatalf("生成に失敗したのだ (%s/%s): %v", mood, format, err)
			}

			for _, p := range layout.Panels {
				if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
					t.Errorf("位置がページ外なのだ (%s/%s): panel %d (%f, %f)", mood, format, p.ID, p.X, p.Y)
				}
				if p.Width < minPanelSize-eps || p.Height < minPanelSize-eps {
					t.Errorf("最小サイズを下回っているのだ (%s/%s): panel %d %fx%f", mood, format, p.ID, p.Width, p.Height)
				}
				if p.X+p.Width > 1+eps || p.Y+p.Height > 1+eps {
					t.Errorf("ページからはみ出しているのだ (%s/%s): panel %d", mood, format, p.ID)
				}
			}
		}
	}
}

func TestGenerateLayout_Determinism(t *testing.T) {
	t.Run("同じシードなら同じPageLayoutになるのだ", func(t *testing.T) {
		key := []string{"emotion: panic", "explosion"}

		first, err := NewEngineSeeded(42).GenerateLayout(chaseScenes, key, "epic action", "webcomic", domain.Manga)
		if err != nil {
			t.Fatalf("1回目の生成に失敗したのだ: %v", err)
		}
		second, err := NewEngineSeeded(42).GenerateLayout(chaseScenes, key, "epic action", "webcomic", domain.Manga)
		if err != nil {
			t.Fatalf("2回目の生成に失敗したのだ: %v", err)
		}

		if !reflect.DeepEqual(first, second) {
			t.Errorf("決定論が破れているのだ。\n1回目: %+v\n2回目: %+v", first, second)
		}
	})
}

func TestSelectLayoutTemplate(t *testing.T) {
	t.Run("定義済みパネル数はテンプレートがそのまま使われるのだ", func(t *testing.T) {
		for _, count := range []int{4, 5, 6} {
			template := selectLayoutTemplate(count, "lyrical drama")
			if len(template) != count {
				t.Errorf("パネル数 %d のテンプレート長が %d なのだ", count, len(template))
			}
		}
	})

	t.Run("定義のないパネル数は均等グリッドに落ちるのだ", func(t *testing.T) {
		template := selectLayoutTemplate(7, "lyrical drama")
		if len(template) != 7 {
			t.Fatalf("期待値 7, 実際の値 %d", len(template))
		}

		// cols = ceil(sqrt(7)) = 3 なので各セル幅は 1/3 なのだ
		if !almostEqual(template[0].W, 1.0/3.0) {
			t.Errorf("セル幅の期待値 1/3, 実際の値 %f", template[0].W)
		}
		// 行優先配置: 4番目の矩形は2行目の先頭なのだ
		if !almostEqual(template[3].X, 0.0) || !almostEqual(template[3].Y, 1.0/3.0) {
			t.Errorf("行優先配置が崩れているのだ: (%f, %f)", template[3].X, template[3].Y)
		}
	})
}

func TestAdjustForClimax(t *testing.T) {
	t.Run("クライマックス枠は1.3倍に拡大されて正規化されるのだ", func(t *testing.T) {
		template := layoutTemplates[4][0]
		adjusted := adjustForClimax(template, 0)

		if !almostEqual(adjusted[0].W, 0.65) || !almostEqual(adjusted[0].H, 0.65) {
			t.Errorf("拡大後の期待値 0.65x0.65, 実際の値 %fx%f", adjusted[0].W, adjusted[0].H)
		}
		// 元のテンプレートは書き換わらないのだ
		if !almostEqual(template[0].W, 0.5) {
			t.Errorf("共有テンプレートが破壊されているのだ: %f", template[0].W)
		}
	})

	t.Run("範囲外のクライマックス添字は拡大なしで正規化だけ通るのだ", func(t *testing.T) {
		template := layoutTemplates[4][0]
		adjusted := adjustForClimax(template, 99)
		for i, r := range adjusted {
			if !almostEqual(r.W, template[i].W) || !almostEqual(r.H, template[i].H) {
				t.Errorf("矩形 %d が変化しているのだ", i)
			}
		}
	})

	t.Run("はみ出した矩形はページ境界まで縮むのだ", func(t *testing.T) {
		template := layoutTemplates[4][0]
		// 右下の枠を拡大するとページ外に出るので縮められるのだ
		adjusted := adjustForClimax(template, 3)
		last := adjusted[3]
		if last.X+last.W > 1+eps || last.Y+last.H > 1+eps {
			t.Errorf("正規化後もはみ出しているのだ: %+v", last)
		}
		if !almostEqual(last.W, 0.5) || !almostEqual(last.H, 0.5) {
			t.Errorf("1-x まで縮むはずなのだ: %+v", last)
		}
	})
}

func TestDetermineAspectRatio(t *testing.T) {
	cases := []struct {
		content string
		want    domain.AspectRatio
	}{
		{"establishing shot of the valley", domain.AspectWidescreen},
		{"panorama of the city at dawn", domain.AspectWidescreen},
		{"a high-speed chase through alleys", domain.AspectCinematic},
		{"close-up of trembling hands", domain.AspectPortrait},
		{"her face in the mirror", domain.AspectPortrait},
		{"falling from the rooftop", domain.AspectExtremeVertical},
		{"a sudden reaction", domain.AspectPortrait},   // フォールバック判定なのだ
		{"explosive action sequence", domain.AspectCinematic}, // フォールバック判定なのだ
		{"a quiet cup of tea", domain.AspectStandard},
	}

	for _, tc := range cases {
		if got := determineAspectRatio(tc.content); got != tc.want {
			t.Errorf("%q の期待値 %s, 実際の値 %s", tc.content, tc.want, got)
		}
	}
}

func TestNormalizeLayout(t *testing.T) {
	t.Run("小さすぎる枠は0.1まで引き上げられるのだ", func(t *testing.T) {
		normalized := normalizeLayout([]rect{{X: 0.5, Y: 0.5, W: 0.01, H: 0.01}})
		if !almostEqual(normalized[0].W, minPanelSize) || !almostEqual(normalized[0].H, minPanelSize) {
			t.Errorf("最小サイズの期待値 %f, 実際の値 %fx%f", minPanelSize, normalized[0].W, normalized[0].H)
		}
	})

	t.Run("負の座標は0にクランプされるのだ", func(t *testing.T) {
		normalized := normalizeLayout([]rect{{X: -0.2, Y: -0.1, W: 0.5, H: 0.5}})
		if normalized[0].X != 0 || normalized[0].Y != 0 {
			t.Errorf("クランプ結果が不正なのだ: %+v", normalized[0])
		}
	})
}
