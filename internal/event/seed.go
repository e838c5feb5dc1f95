package event

// Seed returns the built-in life-event table. Lower priority wins when
// several events qualify in the same month, so the situational events
// (vehicle trouble, scholarships) sit ahead of the generic ones.
func Seed() Table {
	return Table{
		{
			ID:          "car_trouble",
			Title:       "Car Trouble",
			Description: "Your car broke down on the way to work.",
			Priority:    10,
			Requires:    Condition{RequiresVehicle: true},
			InputRequired: true,
			Choices: []Choice{
				{
					ID:     "full_repair",
					Label:  "Pay for a full repair ($500)",
					Effect: Effect{CashMin: -500, CashMax: -500, Wellbeing: -5},
				},
				{
					ID:     "patch_up",
					Label:  "Patch it up cheap ($150)",
					Effect: Effect{CashMin: -150, CashMax: -150, Wellbeing: -8},
				},
				{
					ID:     "ignore",
					Label:  "Keep driving it as-is",
					Effect: Effect{Wellbeing: -12},
				},
			},
		},
		{
			ID:          "scholarship_award",
			Title:       "Scholarship Award",
			Description: "Your application came through. A scholarship pays down part of your loan.",
			Priority:    15,
			Requires:    Condition{StudentsOnly: true},
			Effect:      Effect{DebtReduction: 1500, Wellbeing: 8},
		},
		{
			ID:          "medical_bill",
			Title:       "Medical Bill",
			Description: "You had to visit the doctor.",
			Priority:    20,
			Effect:      Effect{CashMin: -250, CashMax: -150, Wellbeing: -3},
		},
		{
			ID:          "phone_cracked",
			Title:       "Cracked Phone Screen",
			Description: "Your phone slipped. The screen did not survive.",
			Priority:    25,
			Effect:      Effect{CashMin: -120, CashMax: -120, Wellbeing: -2},
		},
		{
			ID:          "work_bonus",
			Title:       "Work Bonus",
			Description: "Great job! You received a bonus at work.",
			Priority:    30,
			Requires:    Condition{RequiresJob: true},
			Effect:      Effect{CashMin: 300, CashMax: 300, Wellbeing: 10},
		},
		{
			ID:          "friend_wedding",
			Title:       "Friend's Wedding",
			Description: "A close friend is getting married out of town.",
			Priority:    35,
			Requires:    Condition{MinMonth: 3},
			InputRequired: true,
			Choices: []Choice{
				{
					ID:     "attend",
					Label:  "Travel and attend ($250)",
					Effect: Effect{CashMin: -250, CashMax: -250, Wellbeing: 8},
				},
				{
					ID:     "send_gift",
					Label:  "Send a gift instead ($60)",
					Effect: Effect{CashMin: -60, CashMax: -60, Wellbeing: 2},
				},
				{
					ID:     "decline",
					Label:  "Politely decline",
					Effect: Effect{Wellbeing: -6},
				},
			},
		},
		{
			ID:          "tax_refund",
			Title:       "Tax Refund",
			Description: "You got a tax refund!",
			Priority:    40,
			Requires:    Condition{RequiresIncome: true},
			Effect:      Effect{CashMin: 400, CashMax: 400, Wellbeing: 5},
		},
		{
			ID:          "birthday_gift",
			Title:       "Birthday Gift",
			Description: "A relative sent you some birthday money.",
			Priority:    45,
			Effect:      Effect{CashMin: 75, CashMax: 75, Wellbeing: 4},
		},
		{
			ID:          "pay_raise",
			Title:       "Pay Raise",
			Description: "Your performance review went well.",
			Priority:    50,
			Requires:    Condition{RequiresJob: true, MinMonth: 6},
			Effect:      Effect{SalaryRaisePct: 0.04, Wellbeing: 6},
		},
		{
			ID:          "overtime_offer",
			Title:       "Overtime Weekend",
			Description: "Your employer needed extra hands over the weekend.",
			Priority:    55,
			Requires:    Condition{RequiresJob: true},
			Effect:      Effect{CashMin: 120, CashMax: 240, Wellbeing: -3},
		},
	}
}
