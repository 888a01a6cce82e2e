// Package rules holds the pure game rules of the dice companion: which dice
// roll in each phase, what each symbol die face means, how a roll becomes
// display lines, and which image shows a settled die.
//
// Nothing in this package keeps state or reads randomness; callers supply
// faces and get deterministic answers back.
package rules
