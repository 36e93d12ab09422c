package placement

// confusableTemplate pairs two French words learners commonly mix up
// with a scenario prompt and the word that fits the scenario. Prompts
// and helpers are shown to the learner verbatim.
type confusableTemplate struct {
	Left   string
	Right  string
	Prompt string
	Answer string
	Helper string
}

// The catalog is fixed policy: a pair only produces a question when
// both words exist in the placement pool.
var confusableCatalog = []confusableTemplate{
	{
		Left:   "tu",
		Right:  "vous",
		Prompt: "Resmi bir ortamda yeni tanistigin birine hitap ediyorsun. Hangisi dogru?",
		Answer: "vous",
		Helper: "Samimi degil, resmi hitap gerekiyor.",
	},
	{
		Left:   "bonjour",
		Right:  "salut",
		Prompt: "Yakin arkadasina koridorda selam veriyorsun. Hangisi daha uygun?",
		Answer: "salut",
		Helper: "Arkadas ortaminda samimi ifade tercih edilir.",
	},
	{
		Left:   "merci",
		Right:  "s'il vous plait",
		Prompt: "Bir garsona siparis verirken nazikce bir sey istiyorsun. Hangisi dogru?",
		Answer: "s'il vous plait",
		Helper: "Istekte bulunurken kullanilir.",
	},
	{
		Left:   "bonjour",
		Right:  "au revoir",
		Prompt: "Mekandan ayrilirken veda ediyorsun. Hangisi dogru?",
		Answer: "au revoir",
		Helper: "Ayrilirken veda ifadesi gerekir.",
	},
}
