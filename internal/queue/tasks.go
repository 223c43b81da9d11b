package queue

const (
	TypeWordImport       = "words:import"
	TypeDictionaryReload = "words:reload"
)

// WordImportPayload carries one bulk word list destined for a single
// risk tier.
type WordImportPayload struct {
	Words       []string `json:"words"`
	Tier        string   `json:"tier"`
	RequestedBy string   `json:"requested_by,omitempty"`
}

type DictionaryReloadPayload struct {
	Reason string `json:"reason,omitempty"`
}
