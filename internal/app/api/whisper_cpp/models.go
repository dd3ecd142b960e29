package whisper_cpp

import "strings"

// ModelNames lists the selectable whisper model identifiers: five size tiers
// plus the English-only variants (large ships without an .en variant).
var ModelNames = []string{
	"tiny", "tiny.en",
	"base", "base.en",
	"small", "small.en",
	"medium", "medium.en",
	"large",
}

// DefaultModel is used when no model is selected.
const DefaultModel = "small"

// IsValidModel reports whether name is a known model identifier.
func IsValidModel(name string) bool {
	for _, m := range ModelNames {
		if m == name {
			return true
		}
	}
	return false
}

// ModelFileName returns the ggml weight file name for a model,
// e.g. "ggml-small.bin".
func ModelFileName(name string) string {
	return "ggml-" + name + ".bin"
}

func describeModels() string {
	return strings.Join(ModelNames, ", ")
}
