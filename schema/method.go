package schema

const (
	MethodPing         = "ping"
	MethodCommandsList = "commands/list"
)

// IsReserved reports whether name is a bridge method that commands cannot use.
func IsReserved(name string) bool {
	switch name {
	case MethodPing, MethodCommandsList:
		return true
	}
	return false
}
