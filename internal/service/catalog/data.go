package catalog

// popularCars популярные марки и модели, порядок марок сохраняется при выводе
var popularCars = []Brand{
	{Name: "Volkswagen", Models: []string{
		"Golf", "Polo", "Passat", "Tiguan", "T-Roc", "Touran", "Arteon",
		"ID.3", "ID.4", "Up!", "Taigo", "Sharan", "Jetta", "Caddy",
		"Transporter",
	}},
	{Name: "Toyota", Models: []string{
		"Corolla", "Yaris", "C-HR", "RAV4", "Camry", "Aygo", "Highlander",
		"Land Cruiser", "Hilux", "Avensis", "Verso", "Proace", "Prius", "GR86",
		"Supra",
	}},
	{Name: "Peugeot", Models: []string{
		"208", "308", "2008", "3008", "5008", "508", "107", "207", "Traveller",
		"Rifter", "Expert", "Partner", "Boxer", "Bipper", "4008",
	}},
	{Name: "Renault", Models: []string{
		"Clio", "Captur", "Megane", "Kadjar", "Scenic", "Talisman", "Twingo",
		"ZOE", "Laguna", "Arkana", "Austral", "Koleos", "Espace", "Trafic",
		"Master",
	}},
	{Name: "Skoda", Models: []string{
		"Octavia", "Fabia", "Kamiq", "Karoq", "Kodiaq", "Superb", "Rapid",
		"Scala", "Citigo", "Enyaq", "Yeti", "Roomster", "Felicia", "Forman",
		"Favorit",
	}},
	{Name: "BMW", Models: []string{
		"1 Series", "2 Series", "3 Series", "4 Series", "5 Series", "6 Series",
		"7 Series", "8 Series", "X1", "X2", "X3", "X4", "X5", "X6", "i3",
	}},
	{Name: "Mercedes", Models: []string{
		"A-Class", "B-Class", "C-Class", "E-Class", "S-Class", "GLA", "GLB",
		"GLC", "GLE", "GLS", "CLA", "CLS", "EQC", "EQB", "Sprinter",
	}},
	{Name: "Audi", Models: []string{
		"A1", "A3", "A4", "A5", "A6", "A7", "A8", "Q2", "Q3", "Q5", "Q7", "Q8",
		"TT", "e-tron", "RS6",
	}},
	{Name: "Ford", Models: []string{
		"Fiesta", "Focus", "Puma", "Kuga", "Mondeo", "Galaxy", "S-MAX",
		"EcoSport", "Tourneo", "Transit", "Ranger", "Ka+", "Explorer", "Edge",
		"C-Max",
	}},
	{Name: "Fiat", Models: []string{
		"500", "Panda", "Tipo", "500X", "500L", "Doblo", "Punto", "Bravo",
		"Fiorino", "Qubo", "Linea", "Croma", "Idea", "Multipla", "Freemont",
	}},
	{Name: "Kia", Models: []string{
		"Ceed", "Sportage", "Rio", "Picanto", "Stonic", "Niro", "Sorento",
		"Optima", "Carens", "XCeed", "EV6", "Soul", "Cerato", "Seltos",
		"Mohave",
	}},
	{Name: "Hyundai", Models: []string{
		"i10", "i20", "i30", "Tucson", "Santa Fe", "Kona", "Bayon", "Ioniq 5",
		"Ioniq 6", "Elantra", "Sonata", "Accent", "Terracan", "Matrix", "Atos",
	}},
	{Name: "Seat", Models: []string{
		"Ibiza", "Leon", "Arona", "Ateca", "Tarraco", "Toledo", "Altea",
		"Cordoba", "Alhambra", "Mii", "Exeo", "Marbella", "Fura", "Inca",
		"Malaga",
	}},
	{Name: "Opel", Models: []string{
		"Corsa", "Astra", "Mokka", "Grandland", "Crossland", "Insignia",
		"Zafira", "Meriva", "Combo", "Vivaro", "Adam", "Ampera", "Tigra",
		"Vectra", "Omega",
	}},
	{Name: "Dacia", Models: []string{
		"Sandero", "Logan", "Duster", "Spring", "Jogger", "Dokker", "Lodgy",
		"1300", "1304", "1310", "Nova", "Solenza", "Pick-Up", "SuperNova",
		"Manifesto",
	}},
	{Name: "Chevrolet", Models: []string{
		"Aveo", "Cruze", "Cobalt", "Captiva", "Orlando", "Malibu",
		"Camaro", "Tahoe", "Blazer", "Equinox", "Suburban",
	}},
}
