package i18n

var catalog = map[string]map[string]string{
	English: {
		"Guide.message":    "We picked your counter currency from your region. You can change it at any time from the menu.",
		"app version":      "App version",
		"base currencies":  "Base currencies",
		"calculate":        "Calculate",
		"continue":         "Continue",
		"counter currency": "Counter currency",
		"language":         "Language",
		"next":             "Next",
		"rate":             "Rate",
		"search":           "Search",
		"window":           "Window",
		"unavailable":      "unavailable",
		"english":          "English",
		"korean":           "Korean",
		"japanese":         "Japanese",
		"chinese":          "Chinese",
	},
	Korean: {
		"Guide.message":    "지역에 맞춰 기준 통화를 선택했어요. 메뉴에서 언제든 바꿀 수 있어요.",
		"app version":      "앱 버전",
		"base currencies":  "비교 통화",
		"calculate":        "계산",
		"continue":         "계속",
		"counter currency": "기준 통화",
		"language":         "언어",
		"next":             "다음",
		"rate":             "환율",
		"search":           "검색",
		"window":           "창",
		"unavailable":      "정보 없음",
		"english":          "영어",
		"korean":           "한국어",
		"japanese":         "일본어",
		"chinese":          "중국어",
	},
	Japanese: {
		"Guide.message":    "地域に合わせて基準通貨を選びました。メニューからいつでも変更できます。",
		"app version":      "アプリバージョン",
		"base currencies":  "比較通貨",
		"calculate":        "計算",
		"continue":         "続ける",
		"counter currency": "基準通貨",
		"language":         "言語",
		"next":             "次へ",
		"rate":             "為替レート",
		"search":           "検索",
		"window":           "ウィンドウ",
		"unavailable":      "取得できません",
		"english":          "英語",
		"korean":           "韓国語",
		"japanese":         "日本語",
		"chinese":          "中国語",
	},
	Chinese: {
		"Guide.message":    "已根据您的地区选择基准货币。您可以随时在菜单中更改。",
		"app version":      "应用版本",
		"base currencies":  "对比货币",
		"calculate":        "计算",
		"continue":         "继续",
		"counter currency": "基准货币",
		"language":         "语言",
		"next":             "下一步",
		"rate":             "汇率",
		"search":           "搜索",
		"window":           "窗口",
		"unavailable":      "暂无数据",
		"english":          "英语",
		"korean":           "韩语",
		"japanese":         "日语",
		"chinese":          "中文",
	},
}
