package dataset

import "github.com/entrhq/fillforge/pkg/field"

// BuiltinPersonas returns the default persona catalogue seeded into stores
// that have nothing persisted. IDs are fixed strings so a regenerated
// catalogue is byte-identical across processes.
func BuiltinPersonas() []Dataset {
	return []Dataset{
		{
			ID:       "persona-alex-rivera",
			Name:     "Alex Rivera",
			Category: "happy-path",
			Data: map[field.SemanticType]string{
				field.TypeEmail:     "alex.rivera@example.com",
				field.TypePhone:     "+1 415 555 0132",
				field.TypeFirstName: "Alex",
				field.TypeLastName:  "Rivera",
				field.TypeName:      "Alex Rivera",
				field.TypeAddress:   "2201 Mission Street",
				field.TypeCity:      "San Francisco",
				field.TypeState:     "CA",
				field.TypeZip:       "94110",
				field.TypeCountry:   "United States",
				field.TypeCompany:   "Rivera Design Co",
				field.TypeTitle:     "Product Designer",
				field.TypeWebsite:   "https://alexrivera.example.com",
				field.TypeMessage:   "Hi! I'm interested in learning more about your service.",
				field.TypeDate:      "1990-04-12",
				field.TypeNumber:    "42",
			},
		},
		{
			ID:       "persona-morgan-chen",
			Name:     "Morgan Chen",
			Category: "happy-path",
			Data: map[field.SemanticType]string{
				field.TypeEmail:     "morgan.chen@example.org",
				field.TypePhone:     "+1 206 555 0187",
				field.TypeFirstName: "Morgan",
				field.TypeLastName:  "Chen",
				field.TypeName:      "Morgan Chen",
				field.TypeAddress:   "815 Pine Avenue, Apt 4B",
				field.TypeCity:      "Seattle",
				field.TypeState:     "WA",
				field.TypeZip:       "98101",
				field.TypeCountry:   "United States",
				field.TypeCompany:   "Cascade Analytics",
				field.TypeTitle:     "Data Engineer",
				field.TypeWebsite:   "https://morganchen.example.org",
				field.TypeMessage:   "Please send me the onboarding documentation when available.",
				field.TypeDate:      "1987-11-03",
				field.TypeNumber:    "7",
			},
		},
		{
			ID:       "persona-samira-haddad",
			Name:     "Samira Haddad",
			Category: "happy-path",
			Data: map[field.SemanticType]string{
				field.TypeEmail:     "samira.haddad@example.net",
				field.TypePhone:     "+44 20 7946 0958",
				field.TypeFirstName: "Samira",
				field.TypeLastName:  "Haddad",
				field.TypeName:      "Samira Haddad",
				field.TypeAddress:   "44 Riverside Walk",
				field.TypeCity:      "London",
				field.TypeState:     "Greater London",
				field.TypeZip:       "SE1 9PX",
				field.TypeCountry:   "United Kingdom",
				field.TypeCompany:   "Haddad Consulting Ltd",
				field.TypeTitle:     "Managing Consultant",
				field.TypeWebsite:   "https://haddadconsulting.example.net",
				field.TypeMessage:   "Following up on our conversation from last week.",
				field.TypeDate:      "1992-07-28",
				field.TypeNumber:    "3",
			},
		},
		{
			ID:       "persona-jonas-lindqvist",
			Name:     "Jonas Lindqvist",
			Category: "happy-path",
			Data: map[field.SemanticType]string{
				field.TypeEmail:     "jonas.lindqvist@example.se",
				field.TypePhone:     "+46 8 5551 2244",
				field.TypeFirstName: "Jonas",
				field.TypeLastName:  "Lindqvist",
				field.TypeName:      "Jonas Lindqvist",
				field.TypeAddress:   "Storgatan 12",
				field.TypeCity:      "Stockholm",
				field.TypeState:     "Stockholms län",
				field.TypeZip:       "111 51",
				field.TypeCountry:   "Sweden",
				field.TypeCompany:   "Norrsken Labs AB",
				field.TypeTitle:     "Backend Developer",
				field.TypeWebsite:   "https://jonasl.example.se",
				field.TypeMessage:   "Hej! Jag skulle vilja boka en demo.",
				field.TypeDate:      "1985-02-17",
				field.TypeNumber:    "12",
			},
		},
		{
			ID:       "persona-priya-patel",
			Name:     "Priya Patel",
			Category: "happy-path",
			Data: map[field.SemanticType]string{
				field.TypeEmail:     "priya.patel@example.in",
				field.TypePhone:     "+91 98765 43210",
				field.TypeFirstName: "Priya",
				field.TypeLastName:  "Patel",
				field.TypeName:      "Priya Patel",
				field.TypeAddress:   "17 Marine Drive",
				field.TypeCity:      "Mumbai",
				field.TypeState:     "Maharashtra",
				field.TypeZip:       "400020",
				field.TypeCountry:   "India",
				field.TypeCompany:   "Patel Software Pvt Ltd",
				field.TypeTitle:     "Engineering Manager",
				field.TypeWebsite:   "https://priyapatel.example.in",
				field.TypeMessage:   "Could you share pricing for the enterprise plan?",
				field.TypeDate:      "1989-09-09",
				field.TypeNumber:    "99",
			},
		},
	}
}
