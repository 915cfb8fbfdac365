package search

// synonyms maps Arabic and transliterated storefront vocabulary to the
// canonical English terms used in catalog names, descriptions and specs.
// Keys are matched lowercased: first against the full query string, then
// token by token. Kept as plain data so new vocabulary lands here and
// nowhere else.
var synonyms = map[string]string{
	// Full phrases, checked before token-by-token expansion
	"سماعة بلوتوث":  "bluetooth headphones",
	"سماعات بلوتوث": "bluetooth headphones",
	"شاحن متنقل":    "power bank",
	"شاحن سريع":     "fast charger",
	"ساعة ذكية":     "smart watch",

	// Device categories
	"لابتوب":   "laptop",
	"لاب توب":  "laptop",
	"حاسوب":    "laptop",
	"كمبيوتر":  "computer",
	"جوال":     "phone",
	"موبايل":   "phone",
	"هاتف":     "phone",
	"تلفون":    "phone",
	"ايفون":    "iphone",
	"آيفون":    "iphone",
	"سماعة":    "headphones",
	"سماعات":   "headphones",
	"ساعة":     "watch",
	"تابلت":    "tablet",
	"ايباد":    "ipad",

	// Accessories
	"شاحن":    "charger",
	"شواحن":   "charger",
	"كيبل":    "cable",
	"كابل":    "cable",
	"وصلة":    "cable",
	"ماوس":    "mouse",
	"فأرة":    "mouse",
	"كيبورد":  "keyboard",
	"لوحة":    "keyboard",
	"باوربانك": "power bank",
	"ميكروفون": "microphone",
	"مايك":    "microphone",
	"كاميرا":  "camera",
	"شاشة":    "monitor",
	"سبيكر":   "speaker",
	"مكبر":    "speaker",

	// Brands as commonly typed in Arabic script
	"سامسونج": "samsung",
	"سامسونغ": "samsung",
	"ابل":     "apple",
	"أبل":     "apple",
	"هواوي":   "huawei",
	"شاومي":   "xiaomi",
	"سوني":    "sony",
	"لينوفو":  "lenovo",
	"اسوس":    "asus",
	"ديل":     "dell",

	// Common Latin-script transliterations and misspellings
	"laptob":  "laptop",
	"labtop":  "laptop",
	"mobail":  "phone",
	"jawal":   "phone",
	"sammaa":  "headphones",
	"shahin":  "charger",
}
