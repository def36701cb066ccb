package codemodel

import "strings"

// Mods is a set of Java modifiers.
type Mods uint32

const (
	Public Mods = 1 << iota
	Protected
	Private
	Abstract
	Default
	Static
	Final
	Transient
	Volatile
	Synchronized
	Native
	Strictfp
)

// None is the empty modifier set (package-private).
const None Mods = 0

var modOrder = []struct {
	mod  Mods
	word string
}{
	{Public, "public"},
	{Protected, "protected"},
	{Private, "private"},
	{Abstract, "abstract"},
	{Default, "default"},
	{Static, "static"},
	{Final, "final"},
	{Transient, "transient"},
	{Volatile, "volatile"},
	{Synchronized, "synchronized"},
	{Native, "native"},
	{Strictfp, "strictfp"},
}

func (m Mods) Has(mod Mods) bool { return m&mod == mod }

// Visibility returns the access modifier part of m.
func (m Mods) Visibility() Mods { return m & (Public | Protected | Private) }

// String renders the modifiers in the canonical JLS order, without a
// trailing space.
func (m Mods) String() string {
	var words []string
	for _, o := range modOrder {
		if m&o.mod != 0 {
			words = append(words, o.word)
		}
	}
	return strings.Join(words, " ")
}
