package icon

// Icon identifies a registered UI symbol.
type Icon int

const (
	Fail Icon = iota
	Success
	Mark
	Link
	Search
	Progress
	Note
	Import
	Queue
	Volume
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "X",
		kaomoji: "(╥﹏╥)",
		squares: "■",
	},
	Success: {
		emoji:   "✔️",
		nerd:    "",
		plain:   "+",
		kaomoji: "(•̀ᴗ•́)و",
		squares: "▰",
	},
	Mark: {
		emoji:   "✅",
		nerd:    "",
		plain:   "*",
		kaomoji: "(◕‿◕)",
		squares: "▣",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "~",
		kaomoji: "(つ≧▽≦)つ",
		squares: "▨",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "(⊙_⊙)",
		squares: "▧",
	},
	Progress: {
		emoji:   "🎶",
		nerd:    "",
		plain:   ">",
		kaomoji: "(┛◉Д◉)┛",
		squares: "▶",
	},
	Note: {
		emoji:   "🎵",
		nerd:    "",
		plain:   "#",
		kaomoji: "(^_^)♪",
		squares: "♪",
	},
	Import: {
		emoji:   "📥",
		nerd:    "",
		plain:   "v",
		kaomoji: "(・・?)",
		squares: "▼",
	},
	Queue: {
		emoji:   "📜",
		nerd:    "",
		plain:   "=",
		kaomoji: "(・_・)",
		squares: "▤",
	},
	Volume: {
		emoji:   "🔊",
		nerd:    "墳",
		plain:   "%",
		kaomoji: "( ´ ▽ ` )",
		squares: "◈",
	},
}
