package catalog

import "github.com/mmeshcher/wholemart-system/internal/model"

// Default возвращает демонстрационный каталог витрины. Цены в пайсах.
func Default() *Catalog {
	return New([]model.Product{
		{ID: 101, Name: "Balrampur Sulphitation White Sugar, 50Kg Bag", Category: "Sugar", PriceCents: 227728, Stock: 250, MinOrderQty: 10, Image: "7.jpeg"},
		{ID: 102, Name: "Surajmukhi Masoor Malka, 30Kg Bag", Category: "Pulses", PriceCents: 207031, Stock: 300, MinOrderQty: 1, Image: "1.jpeg"},
		{ID: 103, Name: "Best Choice Refined Palmolein Oil, 1L Pouch", Category: "Oils", PriceCents: 9783, Stock: 120, MinOrderQty: 10, Image: "2.jpeg"},
		{ID: 104, Name: "Everest Meat Masala, 500g Pouch", Category: "Spices", PriceCents: 8247, Stock: 200, MinOrderQty: 12, Image: "3.jpeg"},
		{ID: 105, Name: "Beauty Queen Sonam Boiled Rice, 25Kg Bag", Category: "Grains", PriceCents: 133810, Stock: 100, MinOrderQty: 1, Image: "4.jpeg"},
		{ID: 106, Name: "Dhara Mustard Oil, 1L Pouch", Category: "Oils", PriceCents: 16600, Stock: 600, MinOrderQty: 15, Image: "5.jpeg"},
		{ID: 107, Name: "Scooter Special Mustard Oil, 1L Pouch", Category: "Oils", PriceCents: 14473, Stock: 400, MinOrderQty: 12, Image: "8.jpeg"},
		{ID: 108, Name: "Puja Food Sharbati Atta, 25Kg Bag", Category: "Flour", PriceCents: 83500, Stock: 55, MinOrderQty: 1, Image: "6.jpeg"},
		{ID: 109, Name: "Baba Special Sonam Steamed Rice, 25Kg Bag", Category: "Grains", PriceCents: 144869, Stock: 50, MinOrderQty: 1, Image: "10.jpeg"},
		{ID: 110, Name: "TATA salt, 1Kg Pack", Category: "Grains", PriceCents: 2588, Stock: 320, MinOrderQty: 12, Image: "9.jpeg"},
		{ID: 111, Name: "Everest Chaat Masala, 500g Pouch", Category: "Spices", PriceCents: 6673, Stock: 100, MinOrderQty: 12, Image: "11.jpeg"},
		{ID: 112, Name: "Ambe Whole Wheat Atta, 26Kg Bag", Category: "Flour", PriceCents: 81500, Stock: 40, MinOrderQty: 1, Image: "12.jpeg"},
		{ID: 113, Name: "Narayani Ka 7 Star Steamed Rice, 26Kg Bag", Category: "Grains", PriceCents: 125000, Stock: 25, MinOrderQty: 1, Image: "14.jpeg"},
		{ID: 114, Name: "Dhara Refined Soyabean Oil, 1L Pouch", Category: "Oils", PriceCents: 15050, Stock: 300, MinOrderQty: 12, Image: "13.jpeg"},
		{ID: 115, Name: "Himani Best Choice Refined Palmolein Oil, 15Kg Tin", Category: "Oils", PriceCents: 223500, Stock: 200, MinOrderQty: 2, Image: "15.jpeg"},
		{ID: 116, Name: "Veer Toor Dal, 30Kg Bag", Category: "Pulses", PriceCents: 338964, Stock: 50, MinOrderQty: 1, Image: "16.jpeg"},
		{ID: 117, Name: "Puja Food Shuddh Chakki Atta, 49Kg Bag", Category: "Flour", PriceCents: 153000, Stock: 10, MinOrderQty: 1, Image: "17.jpeg"},
		{ID: 118, Name: "Aalu 45kg bag", Category: "Vegetables", PriceCents: 54000, Stock: 100, MinOrderQty: 1, Image: "18.jpeg"},
		{ID: 119, Name: "Pyaaz 45kg bag", Category: "Vegetables", PriceCents: 86000, Stock: 100, MinOrderQty: 1, Image: "19.jpeg"},
		{ID: 120, Name: "Fresh Tamatar per kg", Category: "Vegetables", PriceCents: 3500, Stock: 100, MinOrderQty: 5, Image: "20.jpeg"},
		{ID: 121, Name: "Cabbage 10kg bag", Category: "Vegetables", PriceCents: 18000, Stock: 50, MinOrderQty: 1, Image: "21.jpeg"},
		{ID: 122, Name: "Fortune Refined Soyabean Oil, 15L Tin", Category: "Oils", PriceCents: 216000, Stock: 100, MinOrderQty: 1, Image: "22.jpeg"},
		{ID: 123, Name: "Gajar 10kg bag", Category: "Vegetables", PriceCents: 35000, Stock: 50, MinOrderQty: 1, Image: "23.jpeg"},
		{ID: 124, Name: "Food Container Set, 25 Pieces", Category: "Kitchen", PriceCents: 14000, Stock: 50, MinOrderQty: 2, Image: "24.jpeg"},
		{ID: 125, Name: "Food Container Set, 25 Pieces", Category: "Kitchen", PriceCents: 14000, Stock: 50, MinOrderQty: 2, Image: "25.jpeg"},
		{ID: 126, Name: "Phenyl 5L", Category: "Cleaning", PriceCents: 15000, Stock: 50, MinOrderQty: 1, Image: "26.jpeg"},
		{ID: 127, Name: "Ambe Refined Wheat Flour(Maida), 49Kg Bag", Category: "Flour", PriceCents: 149200, Stock: 50, MinOrderQty: 1, Image: "27.jpeg"},
		{ID: 128, Name: "Aashirvaad Atta, 26Kg Bag", Category: "Flour", PriceCents: 93000, Stock: 50, MinOrderQty: 1, Image: "28.jpeg"},
	})
}
