package domain

// PartOfSpeech is a Universal Dependencies POS tag as produced by the
// linguistic model.
type PartOfSpeech string

const (
	POSNoun         PartOfSpeech = "NOUN"
	POSVerb         PartOfSpeech = "VERB"
	POSAdjective    PartOfSpeech = "ADJ"
	POSAdverb       PartOfSpeech = "ADV"
	POSProperNoun   PartOfSpeech = "PROPN"
	POSPronoun      PartOfSpeech = "PRON"
	POSAdposition   PartOfSpeech = "ADP"
	POSDeterminer   PartOfSpeech = "DET"
	POSAuxiliary    PartOfSpeech = "AUX"
	POSCoordConj    PartOfSpeech = "CCONJ"
	POSSubordConj   PartOfSpeech = "SCONJ"
	POSNumeral      PartOfSpeech = "NUM"
	POSParticle     PartOfSpeech = "PART"
	POSInterjection PartOfSpeech = "INTJ"
	POSSymbol       PartOfSpeech = "SYM"
	POSPunctuation  PartOfSpeech = "PUNCT"
	POSOther        PartOfSpeech = "X"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case POSNoun, POSVerb, POSAdjective, POSAdverb, POSProperNoun, POSPronoun,
		POSAdposition, POSDeterminer, POSAuxiliary, POSCoordConj, POSSubordConj,
		POSNumeral, POSParticle, POSInterjection, POSSymbol, POSPunctuation, POSOther:
		return true
	}
	return false
}

// Language is an ISO 639-1 language code.
type Language string

const (
	LanguageDutch   Language = "nl"
	LanguageEnglish Language = "en"
)

func (l Language) String() string { return string(l) }

func (l Language) IsValid() bool {
	switch l {
	case LanguageDutch, LanguageEnglish:
		return true
	}
	return false
}
