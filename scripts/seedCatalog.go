package main

import (
	"encoding/json"
	"log"
	"os"

	"gkb/config"
	"gkb/database"
	"gkb/models"
)

// Catalog file shape: books with nested units, subunits, questions and
// choices. Content is authored out of band and loaded with this tool.
type catalogFile struct {
	Books []struct {
		TitleEn string `json:"title_en"`
		TitleHi string `json:"title_hi"`
		Units   []struct {
			TitleEn    string `json:"title_en"`
			TitleHi    string `json:"title_hi"`
			UnitNumber int    `json:"unit_number"`
			SubUnits   []struct {
				TitleEn       string `json:"title_en"`
				TitleHi       string `json:"title_hi"`
				ContentEn     string `json:"content_en"`
				ContentHi     string `json:"content_hi"`
				SubunitNumber int    `json:"subunit_number"`
				IsPreview     bool   `json:"is_preview"`
				Questions     []struct {
					TextEn  string `json:"text_en"`
					TextHi  string `json:"text_hi"`
					Choices []struct {
						TextEn    string `json:"text_en"`
						TextHi    string `json:"text_hi"`
						IsCorrect bool   `json:"is_correct"`
					} `json:"choices"`
				} `json:"questions"`
			} `json:"subunits"`
		} `json:"units"`
	} `json:"books"`
}

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	// The two plans always exist
	subscriptionTypes := []models.SubscriptionType{
		{Name: "Full Subscription", Code: models.FullSubscription, Cost: 499, Description: "Access to every book"},
		{Name: "Base Subscription", Code: models.BaseSubscription, Cost: 199, Description: "Access to one book"},
	}
	for _, subType := range subscriptionTypes {
		if err := db.Where("code = ?", subType.Code).FirstOrCreate(&subType).Error; err != nil {
			log.Fatalf("Failed to seed subscription type %s: %v", subType.Code, err)
		}
	}
	log.Println("Subscription types seeded.")

	path := "catalog.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to open catalog file: %v", err)
	}

	var catalog catalogFile
	if err := json.Unmarshal(raw, &catalog); err != nil {
		log.Fatalf("Failed to parse catalog file: %v", err)
	}

	books := 0
	questions := 0

	for _, b := range catalog.Books {
		book := models.Book{TitleEn: b.TitleEn, TitleHi: b.TitleHi}
		if err := db.Create(&book).Error; err != nil {
			log.Fatalf("Failed to create book %q: %v", b.TitleEn, err)
		}
		books++

		for _, u := range b.Units {
			unit := models.Unit{
				TitleEn:    u.TitleEn,
				TitleHi:    u.TitleHi,
				UnitNumber: u.UnitNumber,
				BookID:     book.ID,
			}
			if err := db.Create(&unit).Error; err != nil {
				log.Fatalf("Failed to create unit %q: %v", u.TitleEn, err)
			}

			for _, s := range u.SubUnits {
				subUnit := models.SubUnit{
					TitleEn:       s.TitleEn,
					TitleHi:       s.TitleHi,
					ContentEn:     s.ContentEn,
					ContentHi:     s.ContentHi,
					SubunitNumber: s.SubunitNumber,
					UnitID:        unit.ID,
					IsPreview:     s.IsPreview,
				}
				if err := db.Create(&subUnit).Error; err != nil {
					log.Fatalf("Failed to create subunit %q: %v", s.TitleEn, err)
				}

				for _, q := range s.Questions {
					question := models.Question{
						TextEn:    q.TextEn,
						TextHi:    q.TextHi,
						Active:    true,
						SubUnitID: subUnit.ID,
					}
					if err := db.Create(&question).Error; err != nil {
						log.Fatalf("Failed to create question: %v", err)
					}
					questions++

					for _, ch := range q.Choices {
						choice := models.Choice{
							TextEn:     ch.TextEn,
							TextHi:     ch.TextHi,
							IsCorrect:  ch.IsCorrect,
							QuestionID: question.ID,
						}
						if err := db.Create(&choice).Error; err != nil {
							log.Fatalf("Failed to create choice: %v", err)
						}
					}
				}
			}
		}
	}

	log.Printf("Catalog import complete: %d books, %d questions.", books, questions)
}
