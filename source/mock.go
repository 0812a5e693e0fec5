package source

import "github.com/poiesic/subnav/core"

var mockCandidates = []core.Candidate{
	{
		Name:    "神奈川県 ものづくりDX支援補助金 (モック)",
		URL:     "https://www.pref.kanagawa.jp/docs/mock/dx-hojo.html",
		Snippet: "神奈川県内の製造業のDX（デジタルトランスフォーメーション）を支援します。最大250万円...",
		Content: "神奈川県 ものづくりDX支援補助金。この補助金は、県内の中小企業が行うIoT、AI導入などのDXの取り組みを支援するものです。対象経費は、ソフトウェア導入費、コンサルティング費用など。適格要件として、県内に事業所を有すること、常時雇用する従業員が5名以上であること。注意点として、他の国・県の補助金との併用は不可。締切は2025年12月31日です。金額は最大250万円（補助率1/2）。対象者は製造業を営む中小企業。",
	},
	{
		Name:    "神奈川県 IT導入サポート助成金 (モック)",
		URL:     "https://www.pref.kanagawa.jp/docs/mock/it-support.html",
		Snippet: "神奈川県内の全業種の中小企業を対象に、ITツールの導入をサポートします。最大50万円...",
		Content: "神奈川県 IT導入サポート助成金。テレワーク導入、ECサイト構築など、IT化を支援。全業種対象。金額は最大50万円（補助率2/3）。締切は2025年11月30日。要件は、県内での事業実態があること。経費はツール利用料、ECサイト構築費など。比較的申請しやすいが、予算上限に達し次第終了となるため注意が必要。",
	},
}
