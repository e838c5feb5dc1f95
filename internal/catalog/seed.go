package catalog

// Default returns the built-in data tables.
func Default() *Catalog {
	return &Catalog{
		Paths: []Path{
			{
				ID:             "four_year_college",
				Name:           "Four-Year College",
				Description:    "Bachelor's degree. High upfront cost, strongest career salary.",
				UpfrontCost:    40000,
				DurationMonths: 48,
				MonthlySalary:  0,
				CareerSalary:   4500,
				Student:        true,
				MonthlyCosts: LivingCosts{
					Housing: 800, Food: 300, Transport: 80,
					Utilities: 120, Phone: 50, Insurance: 150,
				},
			},
			{
				ID:             "community_college",
				Name:           "Community College",
				Description:    "Associate degree with a transfer option. Moderate cost.",
				UpfrontCost:    15000,
				DurationMonths: 24,
				MonthlySalary:  0,
				CareerSalary:   3200,
				Student:        true,
				MonthlyCosts: LivingCosts{
					Housing: 600, Food: 300, Transport: 80,
					Utilities: 120, Phone: 50, Insurance: 150,
				},
			},
			{
				ID:             "trade_school",
				Name:           "Trade School",
				Description:    "Skilled-trade certification. Short program, solid pay.",
				UpfrontCost:    13000,
				DurationMonths: 18,
				MonthlySalary:  0,
				CareerSalary:   3400,
				Student:        true,
				MonthlyCosts: LivingCosts{
					Housing: 600, Food: 300, Transport: 80,
					Utilities: 120, Phone: 50, Insurance: 150,
				},
			},
			{
				ID:             "military",
				Name:           "Military Service",
				Description:    "Enlist. Paid from day one, housing covered, education benefits after.",
				UpfrontCost:    0,
				DurationMonths: 48,
				MonthlySalary:  2200,
				CareerSalary:   3000,
				MonthlyCosts: LivingCosts{
					Housing: 0, Food: 150, Transport: 0,
					Utilities: 0, Phone: 50, Insurance: 0,
				},
			},
			{
				ID:             "immediate_work",
				Name:           "Straight to Work",
				Description:    "Full-time job right away. No debt, slower salary growth.",
				UpfrontCost:    0,
				DurationMonths: 36,
				MonthlySalary:  2400,
				CareerSalary:   2800,
				MonthlyCosts: LivingCosts{
					Housing: 600, Food: 300, Transport: 80,
					Utilities: 120, Phone: 50, Insurance: 150,
				},
			},
			{
				ID:             "entrepreneur",
				Name:           "Start a Business",
				Description:    "Bootstrap a small business. Lean income early, big upside later.",
				UpfrontCost:    5000,
				DurationMonths: 36,
				MonthlySalary:  1500,
				CareerSalary:   3500,
				MonthlyCosts: LivingCosts{
					Housing: 600, Food: 300, Transport: 80,
					Utilities: 120, Phone: 50, Insurance: 150,
				},
			},
		},

		Vehicles: []Vehicle{
			{ID: "old_beater", Name: "Old Beater", Description: "Runs. Usually.", Price: 2800},
			{ID: "used_sedan", Name: "Reliable Used Sedan", Description: "Boring and dependable.", Price: 8500},
			{ID: "new_compact", Name: "New Compact", Description: "Factory warranty, factory payments.", Price: 19500},
			{ID: "pickup", Name: "Midsize Pickup", Description: "Hauls friends' couches forever.", Price: 27000},
		},

		SideJobs: []SideJob{
			{ID: "campus_bookstore", Name: "Campus Bookstore Clerk", HourlyRate: 12, HoursPerWeek: 15},
			{ID: "barista", Name: "Barista", HourlyRate: 14, HoursPerWeek: 20},
			{ID: "tutor", Name: "Peer Tutor", HourlyRate: 18, HoursPerWeek: 10},
			{ID: "delivery", Name: "Delivery Driver", HourlyRate: 16, HoursPerWeek: 25},
			{ID: "retail", Name: "Retail Associate", HourlyRate: 13, HoursPerWeek: 20},
		},

		Goals: []Goal{
			{ID: "own_home", Name: "Own a Home", Description: "Save toward a down payment on a place of your own."},
			{ID: "debt_free", Name: "Debt-Free Living", Description: "Pay off every loan and stay out of debt."},
			{ID: "travel_world", Name: "Travel the World", Description: "Build a travel fund for a year abroad."},
			{ID: "start_business", Name: "Start a Business", Description: "Save the seed money to launch your own venture."},
			{ID: "emergency_fund", Name: "Emergency Fund", Description: "Keep three months of expenses in savings."},
			{ID: "early_retirement", Name: "Retire Early", Description: "Grow net worth fast enough to stop working young."},
			{ID: "help_family", Name: "Help Family", Description: "Be able to support family when they need it."},
			{ID: "finish_education", Name: "Finish Education", Description: "Complete a degree or certification debt under control."},
			{ID: "dream_car", Name: "Dream Car", Description: "Buy the car you actually want, in cash."},
			{ID: "give_back", Name: "Give Back", Description: "Donate a steady share of income to causes you care about."},
		},
	}
}
