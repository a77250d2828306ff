package catalog

import "kzone-booking-backend/internal/models"

// defaultExperiences returns the venue's experience list. Prices are per
// person; MaxGuests bounds the guest count a single booking may carry.
func defaultExperiences() []models.Experience {
	return []models.Experience{
		{
			ID:          1,
			Name:        "D R E S S L I K E A K - S T A R Z O NE",
			Price:       100,
			Duration:    "2 hours",
			MaxGuests:   5,
			Description: "Experience the glamour of K-pop fashion with professional styling and photo opportunities.",
			Image:       "https://images.unsplash.com/photo-1512206879471-eea3be4ec8c8?w=800&auto=format&fit=crop&q=80",
			Features: []string{
				"Professional K-pop styling",
				"Photo shoot session",
				"Costume rental",
				"Makeup application",
				"Digital photos included",
			},
			Rating: 4.8,
			Reviews: []models.Review{
				{
					ID:      1,
					User:    "Sarah K.",
					Avatar:  "https://i.pravatar.cc/150?img=1",
					Rating:  5,
					Comment: "Amazing experience! The stylists really know their K-pop fashion. Got to dress like my favorite idol!",
					Date:    "2024-03-15",
				},
				{
					ID:      2,
					User:    "Mike J.",
					Avatar:  "https://i.pravatar.cc/150?img=2",
					Rating:  4,
					Comment: "Great photo shoot and styling. The costumes were authentic and high quality.",
					Date:    "2024-03-10",
				},
			},
		},
		{
			ID:          2,
			Name:        "K-FOOD ZONE",
			Price:       75,
			Duration:    "1.5 hours",
			MaxGuests:   8,
			Description: "Taste authentic Korean cuisine with a variety of traditional dishes and street food.",
			Image:       "https://images.unsplash.com/photo-1498654896293-37aacf113fd9?w=800&auto=format&fit=crop&q=80",
			Features: []string{
				"Traditional Korean dishes",
				"Street food tasting",
				"Cooking demonstration",
				"Recipe sharing",
				"Beverage pairing",
			},
			Rating: 4.9,
			Reviews: []models.Review{
				{
					ID:      1,
					User:    "Lisa M.",
					Avatar:  "https://i.pravatar.cc/150?img=3",
					Rating:  5,
					Comment: "The food was incredible! Learned so much about Korean cuisine and got to try authentic street food.",
					Date:    "2024-03-18",
				},
				{
					ID:      2,
					User:    "David W.",
					Avatar:  "https://i.pravatar.cc/150?img=4",
					Rating:  5,
					Comment: "Best Korean food experience outside of Korea! The cooking demo was informative and fun.",
					Date:    "2024-03-12",
				},
			},
		},
		{
			ID:          3,
			Name:        "K-SOUVENIR ZONE",
			Price:       50,
			Duration:    "1 hour",
			MaxGuests:   10,
			Description: "Browse and purchase authentic Korean souvenirs and cultural items.",
			Image:       "https://images.unsplash.com/photo-1526614180703-827d23e7c8f2?w=800&auto=format&fit=crop&q=80",
			Features: []string{
				"Traditional crafts",
				"K-pop merchandise",
				"Korean beauty products",
				"Cultural artifacts",
				"Gift wrapping service",
			},
			Rating: 4.7,
			Reviews: []models.Review{
				{
					ID:      1,
					User:    "Emma R.",
					Avatar:  "https://i.pravatar.cc/150?img=5",
					Rating:  5,
					Comment: "Found amazing K-pop merchandise and authentic Korean beauty products. Great selection!",
					Date:    "2024-03-20",
				},
				{
					ID:      2,
					User:    "John D.",
					Avatar:  "https://i.pravatar.cc/150?img=6",
					Rating:  4,
					Comment: "Lots of unique items. The traditional crafts were beautiful and reasonably priced.",
					Date:    "2024-03-14",
				},
			},
		},
		{
			ID:          4,
			Name:        "K-KARAOKE ZONE",
			Price:       80,
			Duration:    "2 hours",
			MaxGuests:   6,
			Description: "Sing your favorite K-pop songs in our premium karaoke rooms.",
			Image:       "https://images.unsplash.com/photo-1516280440614-37939bbacd81?w=800&auto=format&fit=crop&q=80",
			Features: []string{
				"Private karaoke room",
				"Latest K-pop songs",
				"High-quality sound system",
				"LED display",
				"Snacks and drinks included",
			},
			Rating: 4.8,
			Reviews: []models.Review{
				{
					ID:      1,
					User:    "Amy L.",
					Avatar:  "https://i.pravatar.cc/150?img=7",
					Rating:  5,
					Comment: "Had a blast singing K-pop songs! The sound system was amazing and the room was so cozy.",
					Date:    "2024-03-17",
				},
				{
					ID:      2,
					User:    "Tom B.",
					Avatar:  "https://i.pravatar.cc/150?img=8",
					Rating:  4,
					Comment: "Great selection of K-pop songs. The snacks and drinks were a nice touch!",
					Date:    "2024-03-11",
				},
			},
		},
		{
			ID:          5,
			Name:        "K-Cinema Zone",
			Price:       90,
			Duration:    "2.5 hours",
			MaxGuests:   4,
			Description: "Watch popular Korean movies and dramas in our private cinema.",
			Image:       "https://images.unsplash.com/photo-1489599849927-2ee91cede3ba?w=800&auto=format&fit=crop&q=80",
			Features: []string{
				"Private screening room",
				"Latest Korean movies",
				"Premium seating",
				"Snacks and drinks",
				"English subtitles",
			},
			Rating: 4.9,
			Reviews: []models.Review{
				{
					ID:      1,
					User:    "Rachel K.",
					Avatar:  "https://i.pravatar.cc/150?img=9",
					Rating:  5,
					Comment: "Perfect movie experience! The seats were comfortable and the subtitles were clear.",
					Date:    "2024-03-19",
				},
				{
					ID:      2,
					User:    "Chris P.",
					Avatar:  "https://i.pravatar.cc/150?img=10",
					Rating:  5,
					Comment: "Amazing selection of Korean movies. The private cinema was luxurious!",
					Date:    "2024-03-13",
				},
			},
		},
		{
			ID:          6,
			Name:        "K-GAME ZONE",
			Price:       85,
			Duration:    "2 hours",
			MaxGuests:   8,
			Description: "Experience Korean gaming culture with popular PC games, mobile games, and esports viewing areas.",
			Image:       "https://images.unsplash.com/photo-1542751371-adc38448a05e?w=800&auto=format&fit=crop&q=80",
			Features: []string{
				"High-end gaming PCs",
				"Popular Korean games",
				"Esports viewing area",
				"Gaming tournaments",
				"Refreshments included",
			},
			Rating: 4.7,
			Reviews: []models.Review{
				{
					ID:      1,
					User:    "Alex G.",
					Avatar:  "https://i.pravatar.cc/150?img=11",
					Rating:  5,
					Comment: "Gaming heaven! The PCs were top-notch and the esports area was incredible.",
					Date:    "2024-03-16",
				},
				{
					ID:      2,
					User:    "Sophie M.",
					Avatar:  "https://i.pravatar.cc/150?img=12",
					Rating:  4,
					Comment: "Great gaming experience with friends. The refreshments were a nice bonus!",
					Date:    "2024-03-10",
				},
			},
		},
	}
}
