package bonus

import _ "embed"

// configSchema is the JSON schema every bonus config document must satisfy
//
//go:embed schema/gather_bonuses.schema.json
var configSchema []byte
