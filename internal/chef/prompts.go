package chef

import "embed"

//go:embed *_prompt.md
var promptFS embed.FS
