package recipe

// Preset recipe ids. They never collide with saved recipes, whose ids are uuids.
const (
	PresetBrigadeiro  = "preset_1"
	PresetRisotto     = "preset_2"
	PresetBourguignon = "preset_3"
)

// Presets returns the built-in recipes of the recipe book. Each call
// returns fresh copies.
func Presets() []Recipe {
	return []Recipe{
		{
			ID:           PresetBrigadeiro,
			Name:         "Brigadeiro Gourmet",
			Description:  "The Brazilian classic for quick sales and a high margin.",
			Category:     CategoryDessert,
			Difficulty:   DifficultyEasy,
			Yields:       25,
			PortionSize:  15,
			ProfitMargin: 100,
			Ingredients: []Ingredient{
				{ID: "p1", Name: "Condensed milk", PackagePrice: 6.50, PackageQuantity: 395, PackageUnit: "g", UsedQuantity: 395, UsedUnit: "g"},
				{ID: "p2", Name: "Table cream", PackagePrice: 4.00, PackageQuantity: 200, PackageUnit: "g", UsedQuantity: 200, UsedUnit: "g"},
				{ID: "p3", Name: "Cocoa powder 50%", PackagePrice: 25.00, PackageQuantity: 1, PackageUnit: "kg", UsedQuantity: 60, UsedUnit: "g"},
				{ID: "p4", Name: "Butter", PackagePrice: 12.00, PackageQuantity: 200, PackageUnit: "g", UsedQuantity: 20, UsedUnit: "g"},
				{ID: "p5", Name: "Belgian sprinkles", PackagePrice: 45.00, PackageQuantity: 1, PackageUnit: "kg", UsedQuantity: 100, UsedUnit: "g"},
			},
			Overheads: Overheads{
				PreparationTimeMinutes: 10,
				CookingTimeMinutes:     20,
				GasCylinderPrice:       120,
				GasCylinderWeight:      13,
				GasBurnerConsumption:   0.225,
				LaborHourlyRate:        15,
				ElectricityEstimate:    0.5,
				WaterEstimate:          0.2,
				OtherCosts:             2.0,
			},
			Instructions: []InstructionStep{
				{Text: "In a heavy-bottomed pan, mix the condensed milk and the cocoa powder.", TimeInMinutes: 2},
				{Text: "Add the cream and the butter.", TimeInMinutes: 1},
				{Text: "Cook over medium heat, stirring constantly with a silicone spatula."},
				{Text: "Cook until the mixture comes away from the bottom of the pan.", TimeInMinutes: 15},
				{Text: "Move to a greased plate and cover with plastic wrap touching the surface.", TimeInMinutes: 2},
				{Text: "Let it cool completely, ideally resting for 6 hours.", TimeInMinutes: 360},
				{Text: "Roll 15 g portions and coat them in sprinkles.", TimeInMinutes: 20},
				{Text: "Place them in paper cups.", TimeInMinutes: 5},
			},
		},
		{
			ID:           PresetRisotto,
			Name:         "Risoto de Funghi Secchi",
			Description:  "A refined dish that takes technique and constant attention.",
			Category:     CategoryMain,
			Difficulty:   DifficultyMedium,
			Yields:       4,
			PortionSize:  350,
			ProfitMargin: 150,
			Ingredients: []Ingredient{
				{ID: "r1", Name: "Arborio rice", PackagePrice: 22.00, PackageQuantity: 1, PackageUnit: "kg", UsedQuantity: 400, UsedUnit: "g"},
				{ID: "r2", Name: "Dried porcini", PackagePrice: 35.00, PackageQuantity: 50, PackageUnit: "g", UsedQuantity: 30, UsedUnit: "g"},
				{ID: "r3", Name: "Dry white wine", PackagePrice: 40.00, PackageQuantity: 750, PackageUnit: "ml", UsedQuantity: 100, UsedUnit: "ml"},
				{ID: "r4", Name: "Unsalted butter", PackagePrice: 15.00, PackageQuantity: 200, PackageUnit: "g", UsedQuantity: 80, UsedUnit: "g"},
				{ID: "r5", Name: "Parmesan", PackagePrice: 80.00, PackageQuantity: 1, PackageUnit: "kg", UsedQuantity: 100, UsedUnit: "g"},
				{ID: "r6", Name: "Onion", PackagePrice: 6.00, PackageQuantity: 1, PackageUnit: "kg", UsedQuantity: 100, UsedUnit: "g"},
			},
			Overheads: Overheads{
				PreparationTimeMinutes: 20,
				CookingTimeMinutes:     30,
				GasCylinderPrice:       120,
				GasCylinderWeight:      13,
				GasBurnerConsumption:   0.225,
				LaborHourlyRate:        20,
				ElectricityEstimate:    0.5,
				WaterEstimate:          0.5,
			},
			Instructions: []InstructionStep{
				{Text: "Soak the porcini in warm water for 30 minutes. Strain and keep the water.", TimeInMinutes: 30},
				{Text: "Chop the soaked porcini.", TimeInMinutes: 2},
				{Text: "Sweat the onion in half the butter until translucent.", TimeInMinutes: 5},
				{Text: "Add the rice and toast it lightly.", TimeInMinutes: 2},
				{Text: "Add the white wine and stir until the alcohol cooks off.", TimeInMinutes: 2},
				{Text: "Add the porcini and start adding the stock one ladle at a time."},
				{Text: "Stir constantly to release the starch.", TimeInMinutes: 18},
				{Text: "Turn off the heat when the rice is al dente."},
				{Text: "Beat in the rest of the cold butter and the parmesan.", TimeInMinutes: 1},
				{Text: "Stir vigorously to emulsify and serve at once.", TimeInMinutes: 1},
			},
		},
		{
			ID:           PresetBourguignon,
			Name:         "Boeuf Bourguignon",
			Description:  "The ultimate test of patience and layered flavor.",
			Category:     CategoryMain,
			Difficulty:   DifficultyHard,
			Yields:       6,
			PortionSize:  400,
			ProfitMargin: 200,
			Ingredients: []Ingredient{
				{ID: "b1", Name: "Beef shank or chuck", PackagePrice: 35.00, PackageQuantity: 1, PackageUnit: "kg", UsedQuantity: 1.2, UsedUnit: "kg"},
				{ID: "b2", Name: "Red wine (Pinot Noir)", PackagePrice: 60.00, PackageQuantity: 750, PackageUnit: "ml", UsedQuantity: 750, UsedUnit: "ml"},
				{ID: "b3", Name: "Diced bacon", PackagePrice: 25.00, PackageQuantity: 1, PackageUnit: "kg", UsedQuantity: 200, UsedUnit: "g"},
				{ID: "b4", Name: "Carrot", PackagePrice: 5.00, PackageQuantity: 1, PackageUnit: "kg", UsedQuantity: 300, UsedUnit: "g"},
				{ID: "b5", Name: "Pearl onions", PackagePrice: 15.00, PackageQuantity: 500, PackageUnit: "g", UsedQuantity: 300, UsedUnit: "g"},
				{ID: "b6", Name: "Fresh button mushrooms", PackagePrice: 18.00, PackageQuantity: 300, PackageUnit: "g", UsedQuantity: 300, UsedUnit: "g"},
			},
			Overheads: Overheads{
				PreparationTimeMinutes: 45,
				CookingTimeMinutes:     180,
				GasCylinderPrice:       120,
				GasCylinderWeight:      13,
				GasBurnerConsumption:   0.225,
				LaborHourlyRate:        25,
				ElectricityEstimate:    1.0,
				WaterEstimate:          1.0,
			},
			Instructions: []InstructionStep{
				{Text: "Cut the beef into large cubes and pat dry with paper towels.", TimeInMinutes: 10},
				{Text: "Fry the bacon in a cast-iron pot. Set it aside and keep the fat.", TimeInMinutes: 5},
				{Text: "Sear the beef in the bacon fat in batches. Set aside.", TimeInMinutes: 15},
				{Text: "In the same pot, sweat the carrot and chopped onion.", TimeInMinutes: 5},
				{Text: "Return the beef and the bacon to the pot.", TimeInMinutes: 1},
				{Text: "Add the red wine and top up with beef stock to cover.", TimeInMinutes: 2},
				{Text: "Add the bouquet garni."},
				{Text: "Simmer on very low heat, or in the oven, for about 3 hours.", TimeInMinutes: 180},
				{Text: "For the last 20 minutes, add the pearl onions and the mushrooms sauteed in butter.", TimeInMinutes: 5},
				{Text: "Season with salt and pepper. The sauce should be thick and glossy.", TimeInMinutes: 2},
			},
		},
	}
}

