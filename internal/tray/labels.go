package tray

import "strings"

// Labels are the user-visible menu strings for one locale.
type Labels struct {
	AppName  string
	Loading  string
	CopyHint string
	Previous string
	Next     string
	Today    string
	Random   string
	HD       string
	Exit     string
}

var labelSets = map[string]Labels{
	"en": {
		AppName:  "Astronomy Picture of the Day",
		Loading:  "Downloading...",
		CopyHint: "Copy title to clipboard",
		Previous: "Previous",
		Next:     "Next",
		Today:    "Today",
		Random:   "Random",
		HD:       "Download HD",
		Exit:     "Exit",
	},
	"zh": {
		AppName:  "Astronomy Picture of the Day",
		Loading:  "正在下载...",
		CopyHint: "复制标题",
		Previous: "上一张",
		Next:     "下一张",
		Today:    "今日",
		Random:   "随机",
		HD:       "下载高清图",
		Exit:     "退出",
	},
}

// LabelsFor returns the label set for locale, matching on the language
// prefix ("zh_CN" -> "zh") and falling back to English.
func LabelsFor(locale string) Labels {
	lang := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(lang, "-_."); i >= 0 {
		lang = lang[:i]
	}
	if l, ok := labelSets[lang]; ok {
		return l
	}
	return labelSets["en"]
}
