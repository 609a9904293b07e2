package domain

// Panel は漫画ページ上の1コマ分の矩形領域と、その演出属性を保持します。
// 座標・サイズはすべてページに対する 0〜1 の正規化値です。
// エンジンによって一度だけ構築され、以後は変更されません。
type Panel struct {
	ID          int         `json:"id"` // テンプレート順で振られる1始まりの連番
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	AspectRatio AspectRatio `json:"aspect_ratio"`
	Content     string      `json:"content"` // 元になったシーン記述

	// IsClimax は1ページにつき最大1枚にのみ立つフラグです。
	IsClimax bool `json:"is_climax"`
	// IsBleed は裁ち落とし（ページ端まで絵を伸ばす）指定です。
	// クライマックスパネル以外で true になることはありません。
	IsBleed bool `json:"is_bleed"`
}

// Area はページに対するパネルの面積比を返します。
func (p Panel) Area() float64 {
	return p.Width * p.Height
}
