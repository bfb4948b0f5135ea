package shared

import (
	"strings"
)

type Attribute string

var Attributes = []Attribute{AttributeStrength, AttributeDexterity, AttributeConstitution, AttributeIntelligence, AttributeWisdom, AttributeCharisma}

const (
	AttributeNone         Attribute = ""
	AttributeStrength     Attribute = "Str"
	AttributeDexterity    Attribute = "Dex"
	AttributeConstitution Attribute = "Con"
	AttributeIntelligence Attribute = "Int"
	AttributeWisdom       Attribute = "Wis"
	AttributeCharisma     Attribute = "Cha"
)

// ParseAttribute accepts the short form ("dex") or the full name ("dexterity"), any case
func ParseAttribute(s string) (Attribute, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range Attributes {
		if s == strings.ToLower(string(a)) || s == strings.ToLower(a.Name()) {
			return a, true
		}
	}
	return AttributeNone, false
}

// Name returns the full attribute name
func (a Attribute) Name() string {
	switch a {
	case AttributeStrength:
		return "Strength"
	case AttributeDexterity:
		return "Dexterity"
	case AttributeConstitution:
		return "Constitution"
	case AttributeIntelligence:
		return "Intelligence"
	case AttributeWisdom:
		return "Wisdom"
	case AttributeCharisma:
		return "Charisma"
	default:
		return ""
	}
}
