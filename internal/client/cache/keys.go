package cache

// Ключи снимков. Каждым ключом владеет ровно один сервис.
const (
	// BarsKey список баров пользователя (services.Bars, оптимистичные правки - state.BarState)
	BarsKey = "bars"

	// CurrentBarSelection указатель на выбранный бар (state.BarState)
	CurrentBarSelection = "current_bar"

	selectionPrefix = "selection:"
)

// MappingsKey returns the snapshot key for server-name mappings of a bar.
func MappingsKey(barID string) string {
	return "server_mappings:" + barID
}

// TicketsKey returns the snapshot key for tickets of a bar.
func TicketsKey(barID string) string {
	return "tickets:" + barID
}

// SalesKey returns the snapshot key for sales of a bar.
func SalesKey(barID string) string {
	return "sales:" + barID
}

func selectionKey(name string) string {
	return selectionPrefix + name
}
