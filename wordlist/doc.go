// Package wordlist builds the ranked candidate word list that seeds deck
// building. Single words come from a frequency table, compounds from a
// curated category table plus optional model suggestions, and everything
// is filtered, scored, and ranked by zipf frequency.
package wordlist
