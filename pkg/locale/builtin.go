package locale

import (
	"strconv"
	"strings"
)

type builtin struct {
	tag string
	cfg *Config
}

// builtins lists the bundled locales in definition order (parents first).
func builtins() []builtin {
	return []builtin{
		{"en-gb", englishGB()},
		{"de", german()},
		{"fr", french()},
		{"es", spanish()},
		{"ru", russian()},
		{"ja", japanese()},
	}
}

// Base returns the base (English) config. Locales defined without a parent
// inherit every field they leave unset from it.
func Base() *Config {
	return &Config{
		Months: Names("January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December"),
		MonthsShort: Names("Jan", "Feb", "Mar", "Apr", "May", "Jun",
			"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"),
		Weekdays:      Names("Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"),
		WeekdaysShort: Names("Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"),
		WeekdaysMin:   Names("Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"),
		LongDateFormat: map[string]string{
			"LTS":  "h:mm:ss A",
			"LT":   "h:mm A",
			"L":    "MM/DD/YYYY",
			"LL":   "MMMM D, YYYY",
			"LLL":  "MMMM D, YYYY h:mm A",
			"LLLL": "dddd, MMMM D, YYYY h:mm A",
		},
		Calendar: map[string]string{
			"sameDay":  "[Today at] LT",
			"nextDay":  "[Tomorrow at] LT",
			"nextWeek": "dddd [at] LT",
			"lastDay":  "[Yesterday at] LT",
			"lastWeek": "[Last] dddd [at] LT",
			"sameElse": "L",
		},
		RelativeTime: map[string]Phrase{
			"future": Text("in %s"),
			"past":   Text("%s ago"),
			"s":      Text("a few seconds"),
			"ss":     Text("%d seconds"),
			"m":      Text("a minute"),
			"mm":     Text("%d minutes"),
			"h":      Text("an hour"),
			"hh":     Text("%d hours"),
			"d":      Text("a day"),
			"dd":     Text("%d days"),
			"w":      Text("a week"),
			"ww":     Text("%d weeks"),
			"M":      Text("a month"),
			"MM":     Text("%d months"),
			"y":      Text("a year"),
			"yy":     Text("%d years"),
		},
		OrdinalFunc:  englishOrdinal,
		OrdinalParse: `\d{1,2}(th|st|nd|rd)`,
		Meridiem:     &Meridiem{AM: "AM", PM: "PM"},
		Week:         &Week{Dow: 0, Doy: 6},
		Eras: []Era{
			{Since: "0001-01-01", Until: "+inf", Offset: 1, Name: "Anno Domini", Narrow: "AD", Abbr: "AD"},
			{Since: "0000-12-31", Until: "-inf", Offset: 1, Name: "Before Christ", Narrow: "BC", Abbr: "BC"},
		},
		InvalidDate: "Invalid date",
	}
}

func englishOrdinal(n int, _ string) string {
	suffix := "th"
	if (n%100)/10 != 1 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

func englishGB() *Config {
	return &Config{
		Parent: BaseTag,
		LongDateFormat: map[string]string{
			"LT":   "HH:mm",
			"LTS":  "HH:mm:ss",
			"L":    "DD/MM/YYYY",
			"LL":   "D MMMM YYYY",
			"LLL":  "D MMMM YYYY HH:mm",
			"LLLL": "dddd, D MMMM YYYY HH:mm",
		},
		Week: &Week{Dow: 1, Doy: 4},
	}
}

func german() *Config {
	return &Config{
		Months: Names("Januar", "Februar", "März", "April", "Mai", "Juni",
			"Juli", "August", "September", "Oktober", "November", "Dezember"),
		MonthsShort: Names("Jan.", "Feb.", "März", "Apr.", "Mai", "Juni",
			"Juli", "Aug.", "Sep.", "Okt.", "Nov.", "Dez."),
		Weekdays:      Names("Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"),
		WeekdaysShort: Names("So.", "Mo.", "Di.", "Mi.", "Do.", "Fr.", "Sa."),
		WeekdaysMin:   Names("So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"),
		LongDateFormat: map[string]string{
			"LT":   "HH:mm",
			"LTS":  "HH:mm:ss",
			"L":    "DD.MM.YYYY",
			"LL":   "D. MMMM YYYY",
			"LLL":  "D. MMMM YYYY HH:mm",
			"LLLL": "dddd, D. MMMM YYYY HH:mm",
		},
		Calendar: map[string]string{
			"sameDay":  "[heute um] LT [Uhr]",
			"sameElse": "L",
			"nextDay":  "[morgen um] LT [Uhr]",
			"nextWeek": "dddd [um] LT [Uhr]",
			"lastDay":  "[gestern um] LT [Uhr]",
			"lastWeek": "[letzten] dddd [um] LT [Uhr]",
		},
		RelativeTime: map[string]Phrase{
			"future": Text("in %s"),
			"past":   Text("vor %s"),
			"s":      Text("ein paar Sekunden"),
			"ss":     Text("%d Sekunden"),
			"m":      dative("eine Minute", "einer Minute"),
			"mm":     Text("%d Minuten"),
			"h":      dative("eine Stunde", "einer Stunde"),
			"hh":     Text("%d Stunden"),
			"d":      dative("ein Tag", "einem Tag"),
			"dd":     dative("%d Tage", "%d Tagen"),
			"w":      dative("eine Woche", "einer Woche"),
			"ww":     Text("%d Wochen"),
			"M":      dative("ein Monat", "einem Monat"),
			"MM":     dative("%d Monate", "%d Monaten"),
			"y":      dative("ein Jahr", "einem Jahr"),
			"yy":     dative("%d Jahre", "%d Jahren"),
		},
		Ordinal:      "%d.",
		OrdinalParse: `\d{1,2}\.`,
		Week:         &Week{Dow: 1, Doy: 4},
		InvalidDate:  "Ungültiges Datum",
	}
}

func dative(bare, suffixed string) Phrase {
	return Phrase{Text: bare, Suffixed: &Phrase{Text: suffixed}}
}

func french() *Config {
	return &Config{
		Months: Names("janvier", "février", "mars", "avril", "mai", "juin",
			"juillet", "août", "septembre", "octobre", "novembre", "décembre"),
		MonthsShort: Names("janv.", "févr.", "mars", "avr.", "mai", "juin",
			"juil.", "août", "sept.", "oct.", "nov.", "déc."),
		Weekdays:      Names("dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"),
		WeekdaysShort: Names("dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."),
		WeekdaysMin:   Names("di", "lu", "ma", "me", "je", "ve", "sa"),
		LongDateFormat: map[string]string{
			"LT":   "HH:mm",
			"LTS":  "HH:mm:ss",
			"L":    "DD/MM/YYYY",
			"LL":   "D MMMM YYYY",
			"LLL":  "D MMMM YYYY HH:mm",
			"LLLL": "dddd D MMMM YYYY HH:mm",
		},
		Calendar: map[string]string{
			"sameDay":  "[Aujourd’hui à] LT",
			"nextDay":  "[Demain à] LT",
			"nextWeek": "dddd [à] LT",
			"lastDay":  "[Hier à] LT",
			"lastWeek": "dddd [dernier à] LT",
			"sameElse": "L",
		},
		RelativeTime: map[string]Phrase{
			"future": Text("dans %s"),
			"past":   Text("il y a %s"),
			"s":      Text("quelques secondes"),
			"ss":     Text("%d secondes"),
			"m":      Text("une minute"),
			"mm":     Text("%d minutes"),
			"h":      Text("une heure"),
			"hh":     Text("%d heures"),
			"d":      Text("un jour"),
			"dd":     Text("%d jours"),
			"w":      Text("une semaine"),
			"ww":     Text("%d semaines"),
			"M":      Text("un mois"),
			"MM":     Text("%d mois"),
			"y":      Text("un an"),
			"yy":     Text("%d ans"),
		},
		OrdinalFunc:  frenchOrdinal,
		OrdinalParse: `\d{1,2}(er|)`,
		Meridiem: &Meridiem{
			AM: "PD", PM: "MD", LowerAM: "PD", LowerPM: "MD",
			Parse: "PD|MD", PMPattern: "^M",
		},
		Week:        &Week{Dow: 1, Doy: 4},
		InvalidDate: "Date invalide",
	}
}

func frenchOrdinal(n int, token string) string {
	s := strconv.Itoa(n)
	switch token {
	case "D":
		if n == 1 {
			return s + "er"
		}
		return s
	case "w", "W":
		if n == 1 {
			return s + "re"
		}
		return s + "e"
	default:
		if n == 1 {
			return s + "er"
		}
		return s + "e"
	}
}

func spanish() *Config {
	return &Config{
		Months: Names("enero", "febrero", "marzo", "abril", "mayo", "junio",
			"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"),
		MonthsShort: &NameSet{
			Format:     []string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"},
			Standalone: []string{"ene.", "feb.", "mar.", "abr.", "may.", "jun.", "jul.", "ago.", "sep.", "oct.", "nov.", "dic."},
			IsFormat:   `-MMM-`,
		},
		Weekdays:      Names("domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"),
		WeekdaysShort: Names("dom.", "lun.", "mar.", "mié.", "jue.", "vie.", "sáb."),
		WeekdaysMin:   Names("do", "lu", "ma", "mi", "ju", "vi", "sá"),
		LongDateFormat: map[string]string{
			"LT":   "H:mm",
			"LTS":  "H:mm:ss",
			"L":    "DD/MM/YYYY",
			"LL":   "D [de] MMMM [de] YYYY",
			"LLL":  "D [de] MMMM [de] YYYY H:mm",
			"LLLL": "dddd, D [de] MMMM [de] YYYY H:mm",
		},
		Calendar:     map[string]string{"sameElse": "L"},
		CalendarFunc: spanishCalendar,
		RelativeTime: map[string]Phrase{
			"future": Text("en %s"),
			"past":   Text("hace %s"),
			"s":      Text("unos segundos"),
			"ss":     Text("%d segundos"),
			"m":      Text("un minuto"),
			"mm":     Text("%d minutos"),
			"h":      Text("una hora"),
			"hh":     Text("%d horas"),
			"d":      Text("un día"),
			"dd":     Text("%d días"),
			"w":      Text("una semana"),
			"ww":     Text("%d semanas"),
			"M":      Text("un mes"),
			"MM":     Text("%d meses"),
			"y":      Text("un año"),
			"yy":     Text("%d años"),
		},
		Ordinal:      "%dº",
		OrdinalParse: `\d{1,2}º`,
		Week:         &Week{Dow: 1, Doy: 4},
		InvalidDate:  "Fecha inválida",
	}
}

// spanishCalendar agrees the article with the hour: "a la una", "a las dos".
func spanishCalendar(key string, hour int) string {
	at := "a las"
	if hour == 1 {
		at = "a la"
	}
	switch key {
	case "sameDay":
		return "[hoy " + at + "] LT"
	case "nextDay":
		return "[mañana " + at + "] LT"
	case "nextWeek":
		return "dddd [" + at + "] LT"
	case "lastDay":
		return "[ayer " + at + "] LT"
	case "lastWeek":
		return "[el] dddd [pasado " + at + "] LT"
	}
	return ""
}

func russian() *Config {
	return &Config{
		Months: &NameSet{
			Format: []string{"января", "февраля", "марта", "апреля", "мая", "июня",
				"июля", "августа", "сентября", "октября", "ноября", "декабря"},
			Standalone: []string{"январь", "февраль", "март", "апрель", "май", "июнь",
				"июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь"},
		},
		MonthsShort: &NameSet{
			Format: []string{"янв.", "февр.", "мар.", "апр.", "мая", "июня",
				"июля", "авг.", "сент.", "окт.", "нояб.", "дек."},
			Standalone: []string{"янв.", "февр.", "март", "апр.", "май", "июнь",
				"июль", "авг.", "сент.", "окт.", "нояб.", "дек."},
		},
		Weekdays: &NameSet{
			Format:     []string{"воскресенье", "понедельник", "вторник", "среду", "четверг", "пятницу", "субботу"},
			Standalone: []string{"воскресенье", "понедельник", "вторник", "среда", "четверг", "пятница", "суббота"},
			IsFormat:   `\[ ?[Вв] ?(?:прошлую|следующую|эту)? ?] ?dddd`,
		},
		WeekdaysShort: Names("вс", "пн", "вт", "ср", "чт", "пт", "сб"),
		WeekdaysMin:   Names("вс", "пн", "вт", "ср", "чт", "пт", "сб"),
		LongDateFormat: map[string]string{
			"LT":   "H:mm",
			"LTS":  "H:mm:ss",
			"L":    "DD.MM.YYYY",
			"LL":   "D MMMM YYYY г.",
			"LLL":  "D MMMM YYYY г., H:mm",
			"LLLL": "dddd, D MMMM YYYY г., H:mm",
		},
		Calendar: map[string]string{
			"sameDay":  "[Сегодня, в] LT",
			"nextDay":  "[Завтра, в] LT",
			"lastDay":  "[Вчера, в] LT",
			"nextWeek": "[В] dddd, [в] LT",
			"lastWeek": "dddd, [в] LT",
			"sameElse": "L",
		},
		RelativeTime: map[string]Phrase{
			"future": Text("через %s"),
			"past":   Text("%s назад"),
			"s":      Text("несколько секунд"),
			"ss":     russianForms("секунда", "секунды", "секунд", "секунду"),
			"m":      {Text: "минута", Suffixed: &Phrase{Text: "минуту"}},
			"mm":     russianForms("минута", "минуты", "минут", "минуту"),
			"h":      Text("час"),
			"hh":     russianForms("час", "часа", "часов", ""),
			"d":      Text("день"),
			"dd":     russianForms("день", "дня", "дней", ""),
			"w":      Text("неделя"),
			"ww":     russianForms("неделя", "недели", "недель", ""),
			"M":      Text("месяц"),
			"MM":     russianForms("месяц", "месяца", "месяцев", ""),
			"y":      Text("год"),
			"yy":     russianForms("год", "года", "лет", ""),
		},
		OrdinalFunc:  russianOrdinal,
		OrdinalParse: `\d{1,2}-(й|го|я)`,
		Meridiem: &Meridiem{
			AM: "утра", PM: "дня",
			Parse: "ночи|утра|дня|вечера", PMPattern: "^(дня|вечера)$",
		},
		MeridiemFunc: russianMeridiem,
		Week:         &Week{Dow: 1, Doy: 4},
	}
}

// russianForms builds a counted phrase. suffixedOne, when set, replaces
// the singular form after "через" and before "назад".
func russianForms(one, few, many, suffixedOne string) Phrase {
	p := Phrase{Forms: map[string]string{
		PluralOne:  "%d " + one,
		PluralFew:  "%d " + few,
		PluralMany: "%d " + many,
	}}
	if suffixedOne != "" {
		p.Suffixed = &Phrase{Forms: map[string]string{
			PluralOne:  "%d " + suffixedOne,
			PluralFew:  "%d " + few,
			PluralMany: "%d " + many,
		}}
	}
	return p
}

func russianOrdinal(n int, token string) string {
	s := strconv.Itoa(n)
	switch token {
	case "M", "d", "DDD":
		return s + "-й"
	case "D":
		return s + "-го"
	case "w", "W":
		return s + "-я"
	}
	return s
}

func russianMeridiem(hour, _ int, _ bool) string {
	switch {
	case hour < 4:
		return "ночи"
	case hour < 12:
		return "утра"
	case hour < 17:
		return "дня"
	}
	return "вечера"
}

func japanese() *Config {
	months := make([]string, 12)
	for i := range months {
		months[i] = strconv.Itoa(i+1) + "月"
	}
	return &Config{
		Months:        Names(months...),
		MonthsShort:   Names(months...),
		Weekdays:      Names("日曜日", "月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日"),
		WeekdaysShort: Names("日", "月", "火", "水", "木", "金", "土"),
		WeekdaysMin:   Names("日", "月", "火", "水", "木", "金", "土"),
		LongDateFormat: map[string]string{
			"LT":   "HH:mm",
			"LTS":  "HH:mm:ss",
			"L":    "YYYY/MM/DD",
			"LL":   "YYYY年M月D日",
			"LLL":  "YYYY年M月D日 HH:mm",
			"LLLL": "YYYY年M月D日 dddd HH:mm",
			"l":    "YYYY/MM/DD",
			"ll":   "YYYY年M月D日",
			"lll":  "YYYY年M月D日 HH:mm",
			"llll": "YYYY年M月D日(ddd) HH:mm",
		},
		Calendar: map[string]string{
			"sameDay":  "[今日] LT",
			"nextDay":  "[明日] LT",
			"nextWeek": "[来週]dddd LT",
			"lastDay":  "[昨日] LT",
			"lastWeek": "[先週]dddd LT",
			"sameElse": "L",
		},
		RelativeTime: map[string]Phrase{
			"future": Text("%s後"),
			"past":   Text("%s前"),
			"s":      Text("数秒"),
			"ss":     Text("%d秒"),
			"m":      Text("1分"),
			"mm":     Text("%d分"),
			"h":      Text("1時間"),
			"hh":     Text("%d時間"),
			"d":      Text("1日"),
			"dd":     Text("%d日"),
			"w":      Text("1週間"),
			"ww":     Text("%d週間"),
			"M":      Text("1ヶ月"),
			"MM":     Text("%dヶ月"),
			"y":      Text("1年"),
			"yy":     Text("%d年"),
		},
		OrdinalFunc:  japaneseOrdinal,
		OrdinalParse: `\d{1,2}日`,
		Meridiem: &Meridiem{
			AM: "午前", PM: "午後", LowerAM: "午前", LowerPM: "午後",
			Parse: "午前|午後", PMPattern: "^午後$",
		},
		Eras: []Era{
			{Since: "2019-05-01", Offset: 1, Name: "令和", Narrow: "㋿", Abbr: "R"},
			{Since: "1989-01-08", Until: "2019-04-30", Offset: 1, Name: "平成", Narrow: "㍻", Abbr: "H"},
			{Since: "1926-12-25", Until: "1989-01-07", Offset: 1, Name: "昭和", Narrow: "㍼", Abbr: "S"},
			{Since: "1912-07-30", Until: "1926-12-24", Offset: 1, Name: "大正", Narrow: "㍽", Abbr: "T"},
			{Since: "1873-01-01", Until: "1912-07-29", Offset: 6, Name: "明治", Narrow: "㍾", Abbr: "M"},
			{Since: "0001-01-01", Until: "1873-12-31", Offset: 1, Name: "西暦", Narrow: "AD", Abbr: "AD"},
			{Since: "0000-12-31", Until: "-inf", Offset: 1, Name: "紀元前", Narrow: "BC", Abbr: "BC"},
		},
		EraYearOrdinalParse: `(元|\d+)年`,
		EraYearOrdinalFunc:  japaneseEraYear,
		InvalidDate:         "無効な日付",
	}
}

func japaneseOrdinal(n int, token string) string {
	s := strconv.Itoa(n)
	switch token {
	case "y":
		if n == 1 {
			return "元年"
		}
		return s + "年"
	case "d", "D", "DDD":
		return s + "日"
	}
	return s
}

// japaneseEraYear reads "元年" (the first year of an era) and "31年".
func japaneseEraYear(input string) (int, bool) {
	input = strings.TrimSuffix(input, "年")
	if input == "元" {
		return 1, true
	}
	n, err := strconv.Atoi(input)
	return n, err == nil
}
