package book

// SampleBooks 内置样例目录
// 每次调用返回新的切片和新的实体,调用方可以放心修改
func SampleBooks() []*Book {
	return []*Book{
		{
			ID:      "bk9",
			Title:   "Schauspieler werden: Tipps, Tricks und ein grosses Geheimnis",
			Author:  "Jochen Horst",
			House:   HouseRavenclaw,
			Section: SectionNew,
			Year:    2025,
			Blurb:   "Ein ehrlicher Blick hinter die Kulissen der Schauspielkunst – mit praxisnahen Tipps, provokanten Einsichten und drei Jahrzehnten Erfahrung von Bühne, Film und Fernsehen.",
			Rarity:  2,
			Price:   24,
		},
		{
			ID:      "bk2",
			Title:   "Phantastische Tierwesen & wo sie zu finden sind",
			Author:  "Newt Scamander",
			House:   HouseHufflepuff,
			Section: SectionNew,
			Year:    2001,
			Blurb:   "Ein Feldführer zu Kreaturen, die lieber nicht gekitzelt werden sollten. Mit handschriftlichen Randnotizen!",
			Rarity:  3,
			Price:   16,
		},
		{
			ID:      "bk3",
			Title:   "Das Standard-Zauberwerk (Band 6)",
			Author:  "Miranda Falke",
			House:   HouseGryffindor,
			Section: SectionSchool,
			Year:    1996,
			Blurb:   "Pflichtlektüre – robust, zuverlässig, ideales Übungsbuch für N.E.W.T.s.",
			Rarity:  1,
			Price:   9,
		},
		{
			ID:      "bk5",
			Title:   "Geschichte der Zauberei",
			Author:  "Bathilda Bagshot",
			House:   HouseRavenclaw,
			Section: SectionSchool,
			Year:    1947,
			Blurb:   "Von Runenreformen bis Zaubereiministerien – trocken? Vielleicht. Unverzichtbar? Definitiv.",
			Rarity:  2,
			Price:   14,
		},
		{
			ID:      "bk6",
			Title:   "Rezepturen & Tränke für Fortgeschrittene",
			Author:  "Libatius Borage",
			House:   HouseSlytherin,
			Section: SectionRare,
			Year:    1946,
			Blurb:   "Für Meister:innen des Kessels. Enthält Korrekturen einer gewissen mysteriösen Hand...",
			Rarity:  4,
			Price:   28,
		},
		{
			ID:      "bk8",
			Title:   "Die Märchen von Beedle dem Barden",
			Author:  "Beedle der Barde",
			House:   HouseHufflepuff,
			Section: SectionRare,
			Year:    1405,
			Blurb:   "Zeitlose Geschichten mit mehr Wahrheit zwischen den Zeilen, als Muggel je ahnten.",
			Rarity:  4,
			Price:   32,
		},
	}
}
