package bonus

import "github.com/osse101/GatherBonus_Go/internal/domain"

// DefaultConfig is the built-in table used when the config file is missing or corrupt
func DefaultConfig() *Config {
	return &Config{
		ChatMessages: true,
		Rules: []Rule{
			{
				Resource:   domain.ItemCloth,
				Permission: domain.PermissionDefault,
				MaxItems:   0,
				Entries: []Entry{
					{
						Shortname:   domain.ItemPaper,
						AmountMin:   1,
						AmountMax:   3,
						Skin:        2556285147,
						DisplayName: "Sativa Hemp",
						Chance:      50,
					},
				},
			},
			{
				Resource:   domain.ItemWhiteBerry,
				Permission: domain.PermissionDefault,
				MaxItems:   0,
				Entries: []Entry{
					{
						Shortname:   domain.ItemPaper,
						AmountMin:   1,
						AmountMax:   5,
						Skin:        2783018053,
						DisplayName: "Coca Leaf",
						Chance:      75,
					},
				},
			},
		},
	}
}
