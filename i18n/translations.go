package i18n

import "kolan-weather/models"

var translations = map[models.Language]map[string]string{
	models.LanguagePersian: {
		"appName":   "کۆڵان",
		"appSlogan": "پیش‌بینی دقیق آب و هوا",
		"home":      "صفحه اصلی",

		"searchCity": "جستجوی شهر...",
		"search":     "جستجو",
		"searching":  "در حال جستجو...",
		"noResults":  "نتیجه‌ای یافت نشد",

		"currentWeather": "آب و هوای فعلی",
		"today":          "امروز",
		"hourly":         "ساعتی",
		"daily":          "هفتگی",

		"clearSky":        "آسمان صاف",
		"mainlyClear":     "عمدتاً صاف",
		"partlyCloudy":    "نیمه ابری",
		"overcast":        "ابری",
		"fog":             "مه",
		"drizzle":         "باران ملایم",
		"freezingDrizzle": "باران یخ‌زده",
		"rain":            "باران",
		"freezingRain":    "باران یخ‌زده",
		"snow":            "برف",
		"snowGrains":      "دانه برف",
		"rainShowers":     "رگبار",
		"snowShowers":     "بارش برف",
		"thunderstorm":    "رعد و برق",

		"feelsLike":     "احساس دما",
		"humidity":      "رطوبت",
		"wind":          "باد",
		"windSpeed":     "سرعت باد",
		"windDirection": "جهت باد",
		"windGusts":     "تندباد",
		"pressure":      "فشار هوا",
		"uvIndex":       "شاخص UV",
		"visibility":    "دید",
		"cloudCover":    "پوشش ابر",
		"sunrise":       "طلوع",
		"sunset":        "غروب",

		"north":     "شمال",
		"northEast": "شمال شرقی",
		"east":      "شرق",
		"southEast": "جنوب شرقی",
		"south":     "جنوب",
		"southWest": "جنوب غربی",
		"west":      "غرب",
		"northWest": "شمال غربی",

		"celsius":    "سانتی‌گراد",
		"fahrenheit": "فارنهایت",
		"kmh":        "کیلومتر/ساعت",
		"mph":        "مایل/ساعت",

		"currentLocation":    "موقعیت فعلی",
		"useMyLocation":      "استفاده از موقعیت من",
		"locationPermission": "اجازه دسترسی به موقعیت",
		"locationDenied":     "دسترسی به موقعیت رد شد",

		"settings":        "تنظیمات",
		"language":        "زبان",
		"temperatureUnit": "واحد دما",
		"theme":           "تم",
		"darkMode":        "حالت تاریک",
		"lightMode":       "حالت روشن",
		"autoMode":        "خودکار",

		"savedCities": "شهرهای ذخیره شده",
		"addCity":     "افزودن شهر",
		"removeCity":  "حذف شهر",

		"error":        "خطا",
		"networkError": "خطای شبکه",
		"tryAgain":     "تلاش مجدد",
		"loading":      "در حال بارگذاری...",
		"lastUpdated":  "آخرین به‌روزرسانی",
	},

	models.LanguageEnglish: {
		"appName":   "Kolan",
		"appSlogan": "Accurate Weather Forecast",
		"home":      "Home",

		"searchCity": "Search city...",
		"search":     "Search",
		"searching":  "Searching...",
		"noResults":  "No results found",

		"currentWeather": "Current Weather",
		"today":          "Today",
		"hourly":         "Hourly",
		"daily":          "7 Days",

		"clearSky":        "Clear sky",
		"mainlyClear":     "Mainly clear",
		"partlyCloudy":    "Partly cloudy",
		"overcast":        "Overcast",
		"fog":             "Fog",
		"drizzle":         "Drizzle",
		"freezingDrizzle": "Freezing drizzle",
		"rain":            "Rain",
		"freezingRain":    "Freezing rain",
		"snow":            "Snow",
		"snowGrains":      "Snow grains",
		"rainShowers":     "Rain showers",
		"snowShowers":     "Snow showers",
		"thunderstorm":    "Thunderstorm",

		"feelsLike":     "Feels like",
		"humidity":      "Humidity",
		"wind":          "Wind",
		"windSpeed":     "Wind Speed",
		"windDirection": "Wind Direction",
		"windGusts":     "Gusts",
		"pressure":      "Pressure",
		"uvIndex":       "UV Index",
		"visibility":    "Visibility",
		"cloudCover":    "Cloud cover",
		"sunrise":       "Sunrise",
		"sunset":        "Sunset",

		"north":     "N",
		"northEast": "NE",
		"east":      "E",
		"southEast": "SE",
		"south":     "S",
		"southWest": "SW",
		"west":      "W",
		"northWest": "NW",

		"celsius":    "Celsius",
		"fahrenheit": "Fahrenheit",
		"kmh":        "km/h",
		"mph":        "mph",

		"currentLocation":    "Current Location",
		"useMyLocation":      "Use my location",
		"locationPermission": "Location permission",
		"locationDenied":     "Location access denied",

		"settings":        "Settings",
		"language":        "Language",
		"temperatureUnit": "Temperature Unit",
		"theme":           "Theme",
		"darkMode":        "Dark Mode",
		"lightMode":       "Light Mode",
		"autoMode":        "Auto",

		"savedCities": "Saved Cities",
		"addCity":     "Add City",
		"removeCity":  "Remove City",

		"error":        "Error",
		"networkError": "Network Error",
		"tryAgain":     "Try Again",
		"loading":      "Loading...",
		"lastUpdated":  "Last Updated",
	},

	models.LanguageKurdish: {
		"appName":   "کۆڵان",
		"appSlogan": "پێشبینی کەش و هەوا",
		"home":      "سەرەکی",

		"searchCity": "گەڕانی شار...",
		"search":     "گەڕان",
		"searching":  "لە گەڕاندایە...",
		"noResults":  "هیچ ئەنجامێک نەدۆزرایەوە",

		"currentWeather": "کەش و هەوای ئێستا",
		"today":          "ئەمڕۆ",
		"hourly":         "کاتژمێری",
		"daily":          "حەفتەیی",

		"clearSky":        "ئاسمان صاف",
		"mainlyClear":     "بەشێوەیەکی سەرەکی صاف",
		"partlyCloudy":    "تەنها هەور",
		"overcast":        "هەوراوی",
		"fog":             "تەم",
		"drizzle":         "بارانی بچووک",
		"freezingDrizzle": "بارانی بچووکی بەستوو",
		"rain":            "باران",
		"freezingRain":    "بارانی بەستوو",
		"snow":            "بەفر",
		"snowGrains":      "دانی بەفر",
		"rainShowers":     "بارانی توند",
		"snowShowers":     "بەفری توند",
		"thunderstorm":    "ترومبێل",

		"feelsLike":     "وەک دەر دەکەوێت",
		"humidity":      "شیاوێتی",
		"wind":          "با",
		"windSpeed":     "خێرایی با",
		"windDirection": "ئاڕاستەی با",
		"windGusts":     "گێژەبا",
		"pressure":      "پەستانی هەوا",
		"uvIndex":       "پێوانەی UV",
		"visibility":    "بینین",
		"cloudCover":    "ڕووپۆشی هەور",
		"sunrise":       "تاڵان",
		"sunset":        "ئاوابوون",

		"north":     "باکوور",
		"northEast": "باکووری ڕۆژهەڵات",
		"east":      "ڕۆژهەڵات",
		"southEast": "باشووری ڕۆژهەڵات",
		"south":     "باشوور",
		"southWest": "باشووری ڕۆژئاوا",
		"west":      "ڕۆژئاوا",
		"northWest": "باکووری ڕۆژئاوا",

		"celsius":    "سەلسیۆس",
		"fahrenheit": "فارنهایت",
		"kmh":        "کیلۆمەتر/کاتژمێر",
		"mph":        "مایل/کاتژمێر",

		"currentLocation":    "شوێنی ئێستا",
		"useMyLocation":      "شوێنی من بەکاربێنە",
		"locationPermission": "مۆڵەتی شوێن",
		"locationDenied":     "دەستڕاگەیشتن بە شوێن ڕەتکرایەوە",

		"settings":        "ڕێکخستنەکان",
		"language":        "زمان",
		"temperatureUnit": "یەکەی پلەی گەرما",
		"theme":           "ڕووکار",
		"darkMode":        "دۆخی تاریک",
		"lightMode":       "دۆخی ڕووناک",
		"autoMode":        "خۆکار",

		"savedCities": "شارە پاشەکەوتکراوەکان",
		"addCity":     "زیادکردنی شار",
		"removeCity":  "سڕینەوەی شار",

		"error":        "هەڵە",
		"networkError": "هەڵەی تۆڕ",
		"tryAgain":     "هەوڵبدەرەوە",
		"loading":      "بارکردن...",
		"lastUpdated":  "دوایین نوێکردنەوە",
	},
}

var dayNames = map[models.Language][7]string{
	models.LanguagePersian: {"یکشنبه", "دوشنبه", "سه‌شنبه", "چهارشنبه", "پنج‌شنبه", "جمعه", "شنبه"},
	models.LanguageEnglish: {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	models.LanguageKurdish: {"یەکشەممە", "دوشەممە", "سێشەممە", "چوارشەممە", "پێنجشەممە", "هەینی", "شەممە"},
}

var monthNames = map[models.Language][12]string{
	models.LanguagePersian: {"ژانویه", "فوریه", "مارس", "آوریل", "مه", "ژوئن", "ژوئیه", "اوت", "سپتامبر", "اکتبر", "نوامبر", "دسامبر"},
	models.LanguageEnglish: {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	models.LanguageKurdish: {"کانوونی دووەم", "شوبات", "ئازار", "نیسان", "ئایار", "حوزەیران", "تەممووز", "ئاب", "ئەیلوول", "تشرینی یەکەم", "تشرینی دووەم", "کانوونی یەکەم"},
}
