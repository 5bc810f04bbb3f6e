package catalog

// SampleProducts is the starter catalog written by Seed on a fresh store.
func SampleProducts() []Product {
	return []Product{
		{
			ID: "MOUSE-001", Name: "Logitech MX Master 3S", Brand: "Logitech", Price: 99.99,
			Description: "Premium wireless mouse with ergonomic design and customizable buttons. Perfect for productivity and creative work.",
			ImageURL:    "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=800&h=800&fit=crop",
			Specs:       Specs{DPI: "8000", Connectivity: "Wireless", Buttons: 7, Weight: "141g"},
			InStock:     true, Featured: true, Colors: []string{"Graphite", "Pale Grey"},
		},
		{
			ID: "MOUSE-002", Name: "Razer DeathAdder V3 Pro", Brand: "Razer", Price: 149.99,
			Description: "Ultra-lightweight wireless gaming mouse with optical switches and ergonomic design for competitive gaming.",
			ImageURL:    "https://images.unsplash.com/photo-1615663245857-ac93bb7c39e7?w=800&h=800&fit=crop",
			Specs:       Specs{DPI: "30000", Connectivity: "Wireless", Buttons: 8, Weight: "63g"},
			InStock:     true, Featured: true, Colors: []string{"Black", "White"},
		},
		{
			ID: "MOUSE-003", Name: "Logitech G Pro X Superlight", Brand: "Logitech", Price: 139.99,
			Description: "Professional-grade gaming mouse designed in collaboration with pro players. Ultra-lightweight and responsive.",
			ImageURL:    "https://images.unsplash.com/photo-1586920745727-11044d622b7b?w=800&h=800&fit=crop",
			Specs:       Specs{DPI: "25600", Connectivity: "Wireless", Buttons: 5, Weight: "63g"},
			InStock:     true, Colors: []string{"Black", "White", "Pink", "Red"},
		},
		{
			ID: "MOUSE-004", Name: "Razer Viper Mini", Brand: "Razer", Price: 39.99,
			Description: "Compact ambidextrous gaming mouse with optical switches. Perfect for claw and fingertip grip styles.",
			ImageURL:    "https://images.unsplash.com/photo-1613141411244-0e4e355a1c7a?w=800&h=800&fit=crop",
			Specs:       Specs{DPI: "8500", Connectivity: "Wired", Buttons: 6, Weight: "61g"},
			InStock:     true, Colors: []string{"Black"},
		},
		{
			ID: "MOUSE-005", Name: "SteelSeries Aerox 3 Wireless", Brand: "SteelSeries", Price: 89.99,
			Description: "Lightweight wireless gaming mouse with IP54 protection. Features a unique holey shell design for reduced weight.",
			ImageURL:    "https://images.unsplash.com/photo-1563297007-0686b7003af7?w=800&h=800&fit=crop",
			Specs:       Specs{DPI: "18000", Connectivity: "Wireless", Buttons: 6, Weight: "66g"},
			InStock:     true, Colors: []string{"Black", "White", "Snow"},
		},
		{
			ID: "MOUSE-006", Name: "Logitech MX Anywhere 3", Brand: "Logitech", Price: 79.99,
			Description: "Compact wireless mouse designed for on-the-go productivity. Works on any surface including glass.",
			ImageURL:    "https://images.unsplash.com/photo-1587829741301-dc798b83add3?w=800&h=800&fit=crop",
			Specs:       Specs{DPI: "4000", Connectivity: "Wireless", Buttons: 6, Weight: "99g"},
			InStock:     true, Colors: []string{"Graphite", "Rose", "Pale Grey"},
		},
		{
			ID: "MOUSE-007", Name: "Razer Basilisk V3", Brand: "Razer", Price: 69.99,
			Description: "Customizable gaming mouse with 10+1 programmable buttons and Chroma RGB lighting.",
			ImageURL:    "https://images.unsplash.com/photo-1625948515291-69613efd103f?w=800&h=800&fit=crop",
			Specs:       Specs{DPI: "26000", Connectivity: "Wired", Buttons: 11, Weight: "101g"},
			InStock:     true, Featured: true, Colors: []string{"Black"},
		},
		{
			ID: "MOUSE-008", Name: "SteelSeries Rival 3", Brand: "SteelSeries", Price: 29.99,
			Description: "Affordable gaming mouse with true 1-to-1 tracking and bright RGB lighting. Great value for beginners.",
			ImageURL:    "https://images.unsplash.com/photo-1605647540924-852290f6b0d5?w=800&h=800&fit=crop",
			Specs:       Specs{DPI: "8500", Connectivity: "Wired", Buttons: 6, Weight: "77g"},
			InStock:     true, Colors: []string{"Black"},
		},
		{
			ID: "MOUSE-009", Name: "Corsair Dark Core RGB Pro", Brand: "Corsair", Price: 89.99,
			Description: "Wireless gaming mouse with three modes of connectivity and Qi wireless charging capability.",
			ImageURL:    "https://images.unsplash.com/photo-1622782914767-404fb9ab3f57?w=800&h=800&fit=crop",
			Specs:       Specs{DPI: "18000", Connectivity: "Wireless", Buttons: 8, Weight: "142g"},
			InStock:     true, Colors: []string{"Black", "White"},
		},
		{
			ID: "MOUSE-010", Name: "HyperX Pulsefire Haste", Brand: "HyperX", Price: 49.99,
			Description: "Ultra-lightweight hexagonal shell design with virgin-grade PTFE feet for smooth gliding.",
			ImageURL:    "https://images.unsplash.com/photo-1612287230202-1ff1d85d1bdf?w=800&h=800&fit=crop",
			Specs:       Specs{DPI: "16000", Connectivity: "Wired", Buttons: 6, Weight: "59g"},
			InStock:     true, Colors: []string{"Black", "White", "Red"},
		},
	}
}
