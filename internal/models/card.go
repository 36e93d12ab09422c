package models

// Card is a single vocabulary card as loaded from the curriculum files.
// Everything except ID, Unit and Course is opaque display text.
type Card struct {
	ID                 string `json:"id"`
	French             string `json:"french"`
	Turkish            string `json:"turkish"`
	IPA                string `json:"ipa"`
	ExampleSentence    string `json:"example_sentence"`
	ExampleTranslation string `json:"example_translation"`
	Unit               int    `json:"unit"`
	Course             string `json:"course"`
}
