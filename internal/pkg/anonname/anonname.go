// Package anonname generates the pseudonymous display names answers are
// posted under, e.g. 「賢いパンダ」 or 「伝説の忍者」. Names are random per
// answer; collisions are acceptable.
package anonname

import "math/rand/v2"

var adjectives = []string{
	"賢い", "面白い", "元気な", "優しい", "勇敢な",
	"静かな", "明るい", "素早い", "冷静な", "陽気な",
	"謎の", "伝説の", "幻の", "無敵の", "最強の",
	"究極の", "天才", "カリスマ", "エリート", "マスター",
}

var nouns = []string{
	"パンダ", "コアラ", "ペンギン", "フクロウ", "リス",
	"ハムスター", "ウサギ", "キツネ", "タヌキ", "カワウソ",
	"アザラシ", "イルカ", "シロクマ", "ライオン", "トラ",
	"ドラゴン", "ユニコーン", "フェニックス", "忍者", "侍",
}

// Generate returns a random adjective+noun pseudonym.
func Generate() string {
	return adjectives[rand.IntN(len(adjectives))] + nouns[rand.IntN(len(nouns))]
}
