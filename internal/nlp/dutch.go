package nlp

// dutchRunes is the set of letters permitted in a Dutch lemma:
// the Latin alphabet plus the accented characters that occur in Dutch
// orthography and common loanwords.
const dutchRunes = "abcdefghijklmnopqrstuvwxyzàáâãäåæçèéêëìíîïðñòóôõöøùúûüýþÿ"

var validDutchRune = func() map[rune]struct{} {
	set := make(map[rune]struct{}, len(dutchRunes))
	for _, r := range dutchRunes {
		set[r] = struct{}{}
	}
	return set
}()

// IsValidDutchWord reports whether word looks like a real Dutch word:
// entirely alphabetic (accented characters allowed) and at least two
// runes long. The input is expected to be lowercase already.
func IsValidDutchWord(word string) bool {
	runes := []rune(word)
	if len(runes) < 2 {
		return false
	}
	for _, r := range runes {
		if _, ok := validDutchRune[r]; !ok {
			return false
		}
	}
	return true
}
