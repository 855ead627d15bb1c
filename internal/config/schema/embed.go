package schema

import _ "embed"

//go:embed update-deps-config.schema.json
var ConfigSchema []byte
