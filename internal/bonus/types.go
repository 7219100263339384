package bonus

import "encoding/json"

// Config is the persisted bonus document. JSON property names are the
// plugin's historical ones so existing files keep loading.
type Config struct {
	ChatMessages bool   `json:"Chat message when item received"`
	Rules        []Rule `json:"Bonus list" validate:"dive"`
}

// Rule grants bonus entries when Resource is gathered by a player holding Permission
type Rule struct {
	Resource   string  `json:"Item gathered to get bonus" validate:"required"`
	Permission string  `json:"Permission" validate:"required"`
	MaxItems   int     `json:"Maximal items that player can get by once" validate:"gte=0"` // 0 = unlimited
	Entries    []Entry `json:"Bonus list" validate:"dive"`
}

// Entry is one possible bonus item with its own independent chance
type Entry struct {
	Shortname   string `json:"Shortname" validate:"required"`
	AmountMin   int    `json:"Amount min"`
	AmountMax   int    `json:"Amount max"`
	Skin        uint64 `json:"Skin"`
	DisplayName string `json:"Display name"`
	Chance      int    `json:"Chance"` // percent, 0..100
}

// UnmarshalJSON applies the default amounts for keys the document omits
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	p := plain{AmountMin: DefaultAmountMin, AmountMax: DefaultAmountMax}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = Entry(p)
	return nil
}

// Clone returns a deep copy of r
func (r Rule) Clone() Rule {
	r.Entries = append([]Entry(nil), r.Entries...)
	return r
}

// Clone returns a deep copy of c
func (c *Config) Clone() *Config {
	out := &Config{ChatMessages: c.ChatMessages, Rules: make([]Rule, len(c.Rules))}
	for i, r := range c.Rules {
		out.Rules[i] = r.Clone()
	}
	return out
}

// Permissions returns every rule permission in declared order
func (c *Config) Permissions() []string {
	out := make([]string, 0, len(c.Rules))
	for _, r := range c.Rules {
		out = append(out, r.Permission)
	}
	return out
}
